package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'manager', 'user')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS manufacturers (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    logo       BLOB,
    logo_mime  TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_manufacturers_name
    ON manufacturers(lower(name));

CREATE TABLE IF NOT EXISTS locations (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    description TEXT,
    address     TEXT,
    manager     TEXT,
    phone       TEXT,
    capacity    INTEGER,
    is_active   INTEGER NOT NULL DEFAULT 1,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS vehicles (
    id               INTEGER PRIMARY KEY,
    manufacturer     TEXT NOT NULL,
    manufacturer_id  INTEGER REFERENCES manufacturers(id) ON DELETE SET NULL,
    category         TEXT NOT NULL,
    engine_capacity  TEXT NOT NULL DEFAULT '',
    year             INTEGER NOT NULL,
    exterior_color   TEXT NOT NULL DEFAULT '',
    interior_color   TEXT NOT NULL DEFAULT '',
    status           TEXT NOT NULL DEFAULT 'available'
        CHECK (status IN ('available', 'in_transit', 'maintenance', 'reserved', 'sold')),
    import_type      TEXT NOT NULL
        CHECK (import_type IN ('personal', 'company', 'used_personal')),
    location         TEXT NOT NULL,
    chassis_number   TEXT NOT NULL UNIQUE,
    price            REAL,
    notes            TEXT,
    images           TEXT NOT NULL DEFAULT '[]',
    entry_date       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    is_sold          INTEGER NOT NULL DEFAULT 0,
    sold_date        DATETIME,
    reservation_date DATETIME,
    reserved_by      TEXT,
    reservation_note TEXT
);

CREATE TABLE IF NOT EXISTS location_transfers (
    id             INTEGER PRIMARY KEY,
    vehicle_id     INTEGER NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
    from_location  TEXT NOT NULL,
    to_location    TEXT NOT NULL,
    reason         TEXT,
    transferred_by TEXT,
    notes          TEXT,
    transferred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS stock_settings (
    id                       INTEGER PRIMARY KEY,
    manufacturer             TEXT NOT NULL,
    category                 TEXT NOT NULL,
    min_stock_level          INTEGER NOT NULL DEFAULT 1,
    low_stock_threshold      INTEGER NOT NULL DEFAULT 2,
    critical_stock_threshold INTEGER NOT NULL DEFAULT 1,
    created_at               DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at               DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (manufacturer, category)
);

CREATE TABLE IF NOT EXISTS low_stock_alerts (
    id              INTEGER PRIMARY KEY,
    manufacturer    TEXT NOT NULL,
    category        TEXT NOT NULL,
    current_stock   INTEGER NOT NULL,
    min_stock_level INTEGER NOT NULL,
    alert_level     TEXT NOT NULL CHECK (alert_level IN ('low', 'critical', 'out_of_stock')),
    is_read         INTEGER NOT NULL DEFAULT 0,
    created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
