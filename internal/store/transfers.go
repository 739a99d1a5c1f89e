package store

import (
	"context"
	"database/sql"
	"fmt"

	"carstock/internal/model"
)

// ListTransfers returns the transfer log newest-first, optionally
// narrowed to one vehicle.
func ListTransfers(ctx context.Context, db *sql.DB, vehicleID int64) ([]model.LocationTransfer, error) {
	query := `SELECT t.id, t.vehicle_id, t.from_location, t.to_location,
	                 t.reason, t.transferred_by, t.notes, t.transferred_at,
	                 v.chassis_number
	          FROM location_transfers t
	          JOIN vehicles v ON v.id = t.vehicle_id`
	var args []any

	if vehicleID > 0 {
		query += ` WHERE t.vehicle_id = ?`
		args = append(args, vehicleID)
	}

	query += ` ORDER BY t.transferred_at DESC, t.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transfers: %w", err)
	}
	defer rows.Close()

	return scanTransfers(rows)
}

// VehicleTransferHistory returns the transfer records for one vehicle,
// newest-first.
func VehicleTransferHistory(ctx context.Context, db *sql.DB, vehicleID int64) ([]model.LocationTransfer, error) {
	if _, err := GetVehicle(ctx, db, vehicleID); err != nil {
		return nil, err
	}
	return ListTransfers(ctx, db, vehicleID)
}

func scanTransfers(rows *sql.Rows) ([]model.LocationTransfer, error) {
	var transfers []model.LocationTransfer
	for rows.Next() {
		var t model.LocationTransfer
		var reason, transferredBy, notes sql.NullString
		if err := rows.Scan(&t.ID, &t.VehicleID, &t.FromLocation, &t.ToLocation,
			&reason, &transferredBy, &notes, &t.TransferredAt, &t.ChassisNumber); err != nil {
			return nil, fmt.Errorf("scanning transfer: %w", err)
		}
		t.Reason = reason.String
		t.TransferredBy = transferredBy.String
		t.Notes = notes.String
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}
