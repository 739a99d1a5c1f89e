package store

import (
	"context"
	"database/sql"
	"fmt"

	"carstock/internal/model"
)

// LocationDraft holds the caller-supplied fields for creating or
// updating a location.
type LocationDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Manager     string `json:"manager"`
	Phone       string `json:"phone"`
	Capacity    *int   `json:"capacity"`
}

// CreateLocation adds a named storage place.
func CreateLocation(ctx context.Context, db *sql.DB, draft LocationDraft) (*model.Location, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO locations (name, description, address, manager, phone, capacity)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		draft.Name, nullString(draft.Description), nullString(draft.Address),
		nullString(draft.Manager), nullString(draft.Phone), draft.Capacity,
	)
	if err != nil {
		if isUniqueViolation(err, "locations.name") {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("creating location: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting location id: %w", err)
	}

	return GetLocation(ctx, db, id)
}

// GetLocation returns a location by ID, active or not.
func GetLocation(ctx context.Context, db *sql.DB, id int64) (*model.Location, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id, name, description, address, manager, phone, capacity, is_active, created_at
		 FROM locations WHERE id = ?`, id)
	loc, err := scanLocation(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting location: %w", err)
	}
	return loc, nil
}

// ListLocations returns all active locations.
func ListLocations(ctx context.Context, db *sql.DB) ([]model.Location, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, description, address, manager, phone, capacity, is_active, created_at
		 FROM locations WHERE is_active = 1 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	var locations []model.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		locations = append(locations, *loc)
	}
	return locations, rows.Err()
}

// UpdateLocation replaces a location's details. Renaming also rewrites
// the location name on vehicles currently stored there, so the
// name-keyed references stay consistent.
func UpdateLocation(ctx context.Context, db *sql.DB, id int64, draft LocationDraft) (*model.Location, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var oldName string
	err = tx.QueryRowContext(ctx,
		`SELECT name FROM locations WHERE id = ?`, id).Scan(&oldName)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting location: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE locations SET name = ?, description = ?, address = ?, manager = ?,
		     phone = ?, capacity = ?
		 WHERE id = ?`,
		draft.Name, nullString(draft.Description), nullString(draft.Address),
		nullString(draft.Manager), nullString(draft.Phone), draft.Capacity, id,
	)
	if err != nil {
		if isUniqueViolation(err, "locations.name") {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("updating location: %w", err)
	}

	if oldName != draft.Name {
		if _, err := tx.ExecContext(ctx,
			`UPDATE vehicles SET location = ? WHERE location = ?`,
			draft.Name, oldName); err != nil {
			return nil, fmt.Errorf("renaming location on vehicles: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing location update: %w", err)
	}

	return GetLocation(ctx, db, id)
}

// DeleteLocation deactivates a location. Fails while vehicles are still
// stored there; historic transfer records are unaffected either way.
func DeleteLocation(ctx context.Context, db *sql.DB, id int64) error {
	loc, err := GetLocation(ctx, db, id)
	if err != nil {
		return err
	}

	var count int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM vehicles WHERE location = ?`, loc.Name).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking location usage: %w", err)
	}
	if count > 0 {
		return ErrLocationInUse
	}

	_, err = db.ExecContext(ctx,
		`UPDATE locations SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivating location: %w", err)
	}
	return nil
}

func scanLocation(row rowScanner) (*model.Location, error) {
	loc := &model.Location{}
	var description, address, manager, phone sql.NullString
	var capacity sql.NullInt64

	err := row.Scan(&loc.ID, &loc.Name, &description, &address, &manager,
		&phone, &capacity, &loc.IsActive, &loc.CreatedAt)
	if err != nil {
		return nil, err
	}

	loc.Description = description.String
	loc.Address = address.String
	loc.Manager = manager.String
	loc.Phone = phone.String
	if capacity.Valid {
		c := int(capacity.Int64)
		loc.Capacity = &c
	}
	return loc, nil
}
