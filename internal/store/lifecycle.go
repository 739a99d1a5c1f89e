package store

import (
	"context"
	"database/sql"
	"fmt"

	"carstock/internal/model"
)

// SellVehicle marks a vehicle as sold and stamps the sold date. Sold is
// terminal: selling an already-sold vehicle fails; correcting a mis-sale
// goes through RestockVehicle.
func SellVehicle(ctx context.Context, db *sql.DB, id int64) (*model.Vehicle, error) {
	v, err := GetVehicle(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if v.IsSold {
		return nil, ErrVehicleSold
	}

	_, err = db.ExecContext(ctx,
		`UPDATE vehicles SET status = ?, is_sold = 1, sold_date = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		model.StatusSold, id,
	)
	if err != nil {
		return nil, fmt.Errorf("selling vehicle: %w", err)
	}

	return GetVehicle(ctx, db, id)
}

// RestockVehicle reverses a sale: the vehicle returns to "available" and
// the sold bookkeeping is cleared. A no-op for vehicles that are not
// sold.
func RestockVehicle(ctx context.Context, db *sql.DB, id int64) (*model.Vehicle, error) {
	v, err := GetVehicle(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if !v.IsSold {
		return v, nil
	}

	_, err = db.ExecContext(ctx,
		`UPDATE vehicles SET status = ?, is_sold = 0, sold_date = NULL
		 WHERE id = ?`,
		model.StatusAvailable, id,
	)
	if err != nil {
		return nil, fmt.Errorf("restocking vehicle: %w", err)
	}

	return GetVehicle(ctx, db, id)
}

// ReserveVehicle places a named hold on a vehicle. Sold vehicles cannot
// be reserved.
func ReserveVehicle(ctx context.Context, db *sql.DB, id int64, reservedBy, note string) (*model.Vehicle, error) {
	v, err := GetVehicle(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if v.IsSold {
		return nil, ErrVehicleSold
	}

	_, err = db.ExecContext(ctx,
		`UPDATE vehicles SET status = ?, reservation_date = CURRENT_TIMESTAMP,
		     reserved_by = ?, reservation_note = ?
		 WHERE id = ?`,
		model.StatusReserved, reservedBy, nullString(note), id,
	)
	if err != nil {
		return nil, fmt.Errorf("reserving vehicle: %w", err)
	}

	return GetVehicle(ctx, db, id)
}

// CancelReservation releases a hold, returning the vehicle to
// "available" and clearing the reservation fields. Idempotent: calling
// it on a vehicle that is not reserved changes nothing.
func CancelReservation(ctx context.Context, db *sql.DB, id int64) (*model.Vehicle, error) {
	v, err := GetVehicle(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if v.Status != model.StatusReserved {
		return v, nil
	}

	_, err = db.ExecContext(ctx,
		`UPDATE vehicles SET status = ?, reservation_date = NULL,
		     reserved_by = NULL, reservation_note = NULL
		 WHERE id = ?`,
		model.StatusAvailable, id,
	)
	if err != nil {
		return nil, fmt.Errorf("cancelling reservation: %w", err)
	}

	return GetVehicle(ctx, db, id)
}

// TransferVehicle moves a vehicle to newLocation, appending exactly one
// audit record per effective move. Transferring to the current location
// is a no-op and leaves the transfer log untouched.
func TransferVehicle(ctx context.Context, db *sql.DB, id int64, newLocation, reason, transferredBy string) (*model.Vehicle, error) {
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

	if v.Location == newLocation {
		return v, nil
	}

	if err := locationExistsTx(ctx, tx, newLocation); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO location_transfers (vehicle_id, from_location, to_location, reason, transferred_by)
		 VALUES (?, ?, ?, ?, ?)`,
		id, v.Location, newLocation, nullString(reason), nullString(transferredBy),
	)
	if err != nil {
		return nil, fmt.Errorf("recording transfer: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE vehicles SET location = ? WHERE id = ?`, newLocation, id)
	if err != nil {
		return nil, fmt.Errorf("updating vehicle location: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transfer: %w", err)
	}

	return GetVehicle(ctx, db, id)
}
