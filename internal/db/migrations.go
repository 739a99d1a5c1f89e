package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at
// the end.
var migrations = []string{
	// Migration 1: index the columns the roll-up queries group by.
	`CREATE INDEX IF NOT EXISTS idx_vehicles_manufacturer ON vehicles(manufacturer)`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_location ON vehicles(location)`,
	// Migration 2: transfer history is always read newest-first per vehicle.
	`CREATE INDEX IF NOT EXISTS idx_transfers_vehicle
	     ON location_transfers(vehicle_id, transferred_at)`,
}

// Migrate runs the database schema migrations.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
