package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"carstock/internal/model"
)

const vehicleColumns = `id, manufacturer, manufacturer_id, category, engine_capacity, year,
	exterior_color, interior_color, status, import_type, location, chassis_number,
	price, notes, images, entry_date, is_sold, sold_date,
	reservation_date, reserved_by, reservation_note`

// CreateVehicle inserts a new vehicle. The entry date is stamped by the
// database, the sold flag starts cleared, and the manufacturer reference
// is resolved against the directory (NULL when the make is unknown).
func CreateVehicle(ctx context.Context, db *sql.DB, draft model.VehicleDraft) (*model.Vehicle, error) {
	if draft.Status == "" {
		draft.Status = model.StatusAvailable
	}
	if model.LifecycleStatus(draft.Status) {
		return nil, ErrStatusNotSettable
	}

	if err := locationExists(ctx, db, draft.Location); err != nil {
		return nil, err
	}

	manufacturerID, err := resolveManufacturer(ctx, db, draft.Manufacturer)
	if err != nil {
		return nil, err
	}

	images := draft.Images
	if images == nil {
		images = []string{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("encoding images: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO vehicles (manufacturer, manufacturer_id, category, engine_capacity, year,
		     exterior_color, interior_color, status, import_type, location, chassis_number,
		     price, notes, images)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		draft.Manufacturer, manufacturerID, draft.Category, draft.EngineCapacity, draft.Year,
		draft.ExteriorColor, draft.InteriorColor, draft.Status, draft.ImportType,
		draft.Location, draft.ChassisNumber, draft.Price, nullString(draft.Notes), string(imagesJSON),
	)
	if err != nil {
		if isUniqueViolation(err, "vehicles.chassis_number") {
			return nil, ErrDuplicateChassisNumber
		}
		return nil, fmt.Errorf("creating vehicle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting vehicle id: %w", err)
	}

	return GetVehicle(ctx, db, id)
}

// GetVehicle returns a vehicle by ID.
func GetVehicle(ctx context.Context, db *sql.DB, id int64) (*model.Vehicle, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = ?`, id)
	v, err := scanVehicle(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting vehicle: %w", err)
	}
	return v, nil
}

// ListVehicles returns every vehicle, sold ones included. Hiding sold
// stock is a presentation choice left to the caller.
func ListVehicles(ctx context.Context, db *sql.DB) ([]model.Vehicle, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	defer rows.Close()

	return scanVehicles(rows)
}

// UpdateVehicle merges the set fields of upd into the vehicle. The ID,
// entry date, and sold/reservation bookkeeping are not touchable here;
// the sold and reserved statuses are only reachable through the
// lifecycle operations. A sold vehicle refuses status changes entirely.
func UpdateVehicle(ctx context.Context, db *sql.DB, id int64, upd model.VehicleUpdate) (*model.Vehicle, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = ?`, id)
	v, err := scanVehicle(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting vehicle: %w", err)
	}

	if upd.Status != nil {
		if v.IsSold {
			return nil, ErrVehicleSold
		}
		if model.LifecycleStatus(*upd.Status) {
			return nil, ErrStatusNotSettable
		}
	}

	if upd.Manufacturer != nil {
		v.Manufacturer = *upd.Manufacturer
	}
	if upd.Category != nil {
		v.Category = *upd.Category
	}
	if upd.EngineCapacity != nil {
		v.EngineCapacity = *upd.EngineCapacity
	}
	if upd.Year != nil {
		v.Year = *upd.Year
	}
	if upd.ExteriorColor != nil {
		v.ExteriorColor = *upd.ExteriorColor
	}
	if upd.InteriorColor != nil {
		v.InteriorColor = *upd.InteriorColor
	}
	if upd.Status != nil {
		v.Status = *upd.Status
	}
	if upd.ImportType != nil {
		v.ImportType = *upd.ImportType
	}
	if upd.Location != nil {
		if err := locationExistsTx(ctx, tx, *upd.Location); err != nil {
			return nil, err
		}
		v.Location = *upd.Location
	}
	if upd.ChassisNumber != nil {
		v.ChassisNumber = *upd.ChassisNumber
	}
	if upd.Price != nil {
		v.Price = upd.Price
	}
	if upd.Notes != nil {
		v.Notes = *upd.Notes
	}
	if upd.Images != nil {
		v.Images = *upd.Images
	}

	manufacturerID := v.ManufacturerID
	if upd.Manufacturer != nil {
		manufacturerID, err = resolveManufacturerTx(ctx, tx, v.Manufacturer)
		if err != nil {
			return nil, err
		}
	}

	imagesJSON, err := json.Marshal(v.Images)
	if err != nil {
		return nil, fmt.Errorf("encoding images: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE vehicles SET manufacturer = ?, manufacturer_id = ?, category = ?,
		     engine_capacity = ?, year = ?, exterior_color = ?, interior_color = ?,
		     status = ?, import_type = ?, location = ?, chassis_number = ?,
		     price = ?, notes = ?, images = ?
		 WHERE id = ?`,
		v.Manufacturer, manufacturerID, v.Category, v.EngineCapacity, v.Year,
		v.ExteriorColor, v.InteriorColor, v.Status, v.ImportType, v.Location,
		v.ChassisNumber, v.Price, nullString(v.Notes), string(imagesJSON), id,
	)
	if err != nil {
		if isUniqueViolation(err, "vehicles.chassis_number") {
			return nil, ErrDuplicateChassisNumber
		}
		return nil, fmt.Errorf("updating vehicle: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing vehicle update: %w", err)
	}

	return GetVehicle(ctx, db, id)
}

// DeleteVehicle hard-removes a vehicle and (via cascade) its transfer
// history.
func DeleteVehicle(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting vehicle: %w", err)
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

// SearchVehicles returns vehicles with a case-insensitive substring match
// in any descriptive field, including the year rendered as text. Sold
// vehicles are included.
func SearchVehicles(ctx context.Context, db *sql.DB, query string) ([]model.Vehicle, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	rows, err := db.QueryContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles
		 WHERE lower(manufacturer) LIKE ?
		    OR lower(category) LIKE ?
		    OR lower(engine_capacity) LIKE ?
		    OR lower(exterior_color) LIKE ?
		    OR lower(interior_color) LIKE ?
		    OR lower(status) LIKE ?
		    OR lower(import_type) LIKE ?
		    OR lower(chassis_number) LIKE ?
		    OR lower(location) LIKE ?
		    OR lower(COALESCE(notes, '')) LIKE ?
		    OR CAST(year AS TEXT) LIKE ?
		 ORDER BY id`,
		pattern, pattern, pattern, pattern, pattern, pattern,
		pattern, pattern, pattern, pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("searching vehicles: %w", err)
	}
	defer rows.Close()

	return scanVehicles(rows)
}

// FilterVehicles returns vehicles matching every set field of f exactly.
// Unset fields impose no constraint.
func FilterVehicles(ctx context.Context, db *sql.DB, f model.VehicleFilter) ([]model.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE 1=1`
	var args []any

	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.Year != 0 {
		query += ` AND year = ?`
		args = append(args, f.Year)
	}
	if f.Manufacturer != "" {
		query += ` AND manufacturer = ?`
		args = append(args, f.Manufacturer)
	}
	if f.ImportType != "" {
		query += ` AND import_type = ?`
		args = append(args, f.ImportType)
	}
	if f.Location != "" {
		query += ` AND location = ?`
		args = append(args, f.Location)
	}

	query += ` ORDER BY id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filtering vehicles: %w", err)
	}
	defer rows.Close()

	return scanVehicles(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (*model.Vehicle, error) {
	v := &model.Vehicle{}
	var (
		manufacturerID sql.NullInt64
		price          sql.NullFloat64
		notes          sql.NullString
		imagesJSON     string
		soldDate       sql.NullTime
		resDate        sql.NullTime
		reservedBy     sql.NullString
		resNote        sql.NullString
	)

	err := row.Scan(&v.ID, &v.Manufacturer, &manufacturerID, &v.Category, &v.EngineCapacity,
		&v.Year, &v.ExteriorColor, &v.InteriorColor, &v.Status, &v.ImportType,
		&v.Location, &v.ChassisNumber, &price, &notes, &imagesJSON, &v.EntryDate,
		&v.IsSold, &soldDate, &resDate, &reservedBy, &resNote)
	if err != nil {
		return nil, err
	}

	if manufacturerID.Valid {
		v.ManufacturerID = &manufacturerID.Int64
	}
	if price.Valid {
		v.Price = &price.Float64
	}
	v.Notes = notes.String
	if soldDate.Valid {
		v.SoldDate = &soldDate.Time
	}
	if resDate.Valid {
		v.ReservationDate = &resDate.Time
	}
	v.ReservedBy = reservedBy.String
	v.ReservationNote = resNote.String

	if err := json.Unmarshal([]byte(imagesJSON), &v.Images); err != nil {
		return nil, fmt.Errorf("decoding images: %w", err)
	}
	if v.Images == nil {
		v.Images = []string{}
	}

	return v, nil
}

func scanVehicles(rows *sql.Rows) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// resolveManufacturer maps a manufacturer name to its directory ID, or
// nil when no directory entry matches (the explicit "unknown make"
// representation).
func resolveManufacturer(ctx context.Context, db *sql.DB, name string) (*int64, error) {
	return resolveManufacturerQ(ctx, db, name)
}

func resolveManufacturerTx(ctx context.Context, tx *sql.Tx, name string) (*int64, error) {
	return resolveManufacturerQ(ctx, tx, name)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func resolveManufacturerQ(ctx context.Context, q querier, name string) (*int64, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		`SELECT id FROM manufacturers WHERE lower(name) = lower(?)`, name,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolving manufacturer: %w", err)
	}
	return &id, nil
}

// locationExists checks that name refers to an active location.
func locationExists(ctx context.Context, db *sql.DB, name string) error {
	return locationExistsQ(ctx, db, name)
}

func locationExistsTx(ctx context.Context, tx *sql.Tx, name string) error {
	return locationExistsQ(ctx, tx, name)
}

func locationExistsQ(ctx context.Context, q querier, name string) error {
	var id int64
	err := q.QueryRowContext(ctx,
		`SELECT id FROM locations WHERE name = ? AND is_active = 1`, name,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrUnknownLocation
	}
	if err != nil {
		return fmt.Errorf("checking location: %w", err)
	}
	return nil
}
