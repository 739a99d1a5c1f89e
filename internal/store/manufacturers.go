package store

import (
	"context"
	"database/sql"
	"fmt"

	"carstock/internal/model"
)

// CreateManufacturer adds a directory entry. Names are unique
// case-insensitively.
func CreateManufacturer(ctx context.Context, db *sql.DB, name string) (*model.Manufacturer, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO manufacturers (name) VALUES (?)`, name)
	if err != nil {
		if isUniqueViolation(err, "idx_manufacturers_name") {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("creating manufacturer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting manufacturer id: %w", err)
	}

	// Vehicles entered before the directory knew this make now resolve.
	_, err = db.ExecContext(ctx,
		`UPDATE vehicles SET manufacturer_id = ? WHERE lower(manufacturer) = lower(?)`,
		id, name)
	if err != nil {
		return nil, fmt.Errorf("linking vehicles to manufacturer: %w", err)
	}

	return GetManufacturer(ctx, db, id)
}

// GetManufacturer returns a directory entry by ID.
func GetManufacturer(ctx context.Context, db *sql.DB, id int64) (*model.Manufacturer, error) {
	m := &model.Manufacturer{}
	var hasLogo bool
	err := db.QueryRowContext(ctx,
		`SELECT id, name, logo IS NOT NULL, created_at FROM manufacturers WHERE id = ?`, id,
	).Scan(&m.ID, &m.Name, &hasLogo, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting manufacturer: %w", err)
	}
	if hasLogo {
		m.LogoURL = fmt.Sprintf("/api/manufacturers/%d/logo", m.ID)
	}
	return m, nil
}

// ListManufacturers returns the whole directory.
func ListManufacturers(ctx context.Context, db *sql.DB) ([]model.Manufacturer, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, logo IS NOT NULL, created_at FROM manufacturers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing manufacturers: %w", err)
	}
	defer rows.Close()

	var manufacturers []model.Manufacturer
	for rows.Next() {
		var m model.Manufacturer
		var hasLogo bool
		if err := rows.Scan(&m.ID, &m.Name, &hasLogo, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning manufacturer: %w", err)
		}
		if hasLogo {
			m.LogoURL = fmt.Sprintf("/api/manufacturers/%d/logo", m.ID)
		}
		manufacturers = append(manufacturers, m)
	}
	return manufacturers, rows.Err()
}

// UpdateManufacturer renames a directory entry and re-links vehicles that
// referenced either the old or the new name.
func UpdateManufacturer(ctx context.Context, db *sql.DB, id int64, name string) (*model.Manufacturer, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE manufacturers SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		if isUniqueViolation(err, "idx_manufacturers_name") {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("updating manufacturer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	// Detach vehicles pointing here under the old name, then re-resolve
	// anything matching the new name.
	if _, err := tx.ExecContext(ctx,
		`UPDATE vehicles SET manufacturer_id = NULL
		 WHERE manufacturer_id = ? AND lower(manufacturer) != lower(?)`, id, name); err != nil {
		return nil, fmt.Errorf("unlinking vehicles: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE vehicles SET manufacturer_id = ? WHERE lower(manufacturer) = lower(?)`,
		id, name); err != nil {
		return nil, fmt.Errorf("linking vehicles: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing manufacturer update: %w", err)
	}

	return GetManufacturer(ctx, db, id)
}

// DeleteManufacturer removes a directory entry. Vehicles keep the name
// they were entered with; their directory reference becomes NULL via the
// foreign key.
func DeleteManufacturer(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM manufacturers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting manufacturer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetManufacturerLogo stores processed logo data.
func SetManufacturerLogo(ctx context.Context, db *sql.DB, id int64, logo []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE manufacturers SET logo = ?, logo_mime = ? WHERE id = ?`,
		logo, mime, id)
	if err != nil {
		return fmt.Errorf("setting manufacturer logo: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking logo update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetManufacturerLogo returns the stored logo bytes and MIME type, or
// nil data when no logo is set.
func GetManufacturerLogo(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var logo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT logo, logo_mime FROM manufacturers WHERE id = ?`, id,
	).Scan(&logo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting manufacturer logo: %w", err)
	}
	return logo, mime.String, nil
}
