package store

import (
	"context"
	"database/sql"
	"fmt"

	"carstock/internal/model"
)

// InventoryStats computes the dashboard counters with a fresh scan.
// Total and the status/import-type sub-counts cover active stock only;
// sold vehicles are counted separately.
func InventoryStats(ctx context.Context, db *sql.DB) (*model.InventoryStats, error) {
	s := &model.InventoryStats{}
	err := db.QueryRowContext(ctx,
		`SELECT
		     COALESCE(SUM(CASE WHEN is_sold = 0 THEN 1 ELSE 0 END), 0),
		     COALESCE(SUM(CASE WHEN is_sold = 0 AND status = 'available' THEN 1 ELSE 0 END), 0),
		     COALESCE(SUM(CASE WHEN is_sold = 0 AND status = 'in_transit' THEN 1 ELSE 0 END), 0),
		     COALESCE(SUM(CASE WHEN is_sold = 0 AND status = 'maintenance' THEN 1 ELSE 0 END), 0),
		     COALESCE(SUM(CASE WHEN is_sold = 0 AND status = 'reserved' THEN 1 ELSE 0 END), 0),
		     COALESCE(SUM(CASE WHEN is_sold = 1 THEN 1 ELSE 0 END), 0),
		     COALESCE(SUM(CASE WHEN is_sold = 0 AND import_type = 'personal' THEN 1 ELSE 0 END), 0),
		     COALESCE(SUM(CASE WHEN is_sold = 0 AND import_type = 'company' THEN 1 ELSE 0 END), 0),
		     COALESCE(SUM(CASE WHEN is_sold = 0 AND import_type = 'used_personal' THEN 1 ELSE 0 END), 0)
		 FROM vehicles`,
	).Scan(&s.Total, &s.Available, &s.InTransit, &s.Maintenance, &s.Reserved,
		&s.Sold, &s.Personal, &s.Company, &s.UsedPersonal)
	if err != nil {
		return nil, fmt.Errorf("computing inventory stats: %w", err)
	}
	return s, nil
}

// ManufacturerStats groups vehicles by the manufacturer name as entered,
// joining the directory for the logo. Same counting convention as
// InventoryStats: total and import-type counts cover active stock, sold
// is its own counter.
func ManufacturerStats(ctx context.Context, db *sql.DB) ([]model.ManufacturerStats, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT v.manufacturer,
		     SUM(CASE WHEN v.is_sold = 0 THEN 1 ELSE 0 END),
		     SUM(CASE WHEN v.is_sold = 0 AND v.import_type = 'personal' THEN 1 ELSE 0 END),
		     SUM(CASE WHEN v.is_sold = 0 AND v.import_type = 'company' THEN 1 ELSE 0 END),
		     SUM(CASE WHEN v.is_sold = 0 AND v.import_type = 'used_personal' THEN 1 ELSE 0 END),
		     SUM(CASE WHEN v.is_sold = 1 THEN 1 ELSE 0 END),
		     m.id, m.logo IS NOT NULL
		 FROM vehicles v
		 LEFT JOIN manufacturers m ON m.id = v.manufacturer_id
		 GROUP BY v.manufacturer
		 ORDER BY v.manufacturer`,
	)
	if err != nil {
		return nil, fmt.Errorf("computing manufacturer stats: %w", err)
	}
	defer rows.Close()

	var stats []model.ManufacturerStats
	for rows.Next() {
		var s model.ManufacturerStats
		var manufacturerID sql.NullInt64
		var hasLogo sql.NullBool
		if err := rows.Scan(&s.Manufacturer, &s.Total, &s.Personal, &s.Company,
			&s.UsedPersonal, &s.Sold, &manufacturerID, &hasLogo); err != nil {
			return nil, fmt.Errorf("scanning manufacturer stats: %w", err)
		}
		if manufacturerID.Valid && hasLogo.Valid && hasLogo.Bool {
			s.LogoURL = fmt.Sprintf("/api/manufacturers/%d/logo", manufacturerID.Int64)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// LocationStats groups vehicles by location name, counting active stock
// per status with sold reported separately.
func LocationStats(ctx context.Context, db *sql.DB) ([]model.LocationStats, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT location,
		     SUM(CASE WHEN is_sold = 0 THEN 1 ELSE 0 END),
		     SUM(CASE WHEN is_sold = 0 AND status = 'available' THEN 1 ELSE 0 END),
		     SUM(CASE WHEN is_sold = 0 AND status = 'in_transit' THEN 1 ELSE 0 END),
		     SUM(CASE WHEN is_sold = 0 AND status = 'maintenance' THEN 1 ELSE 0 END),
		     SUM(CASE WHEN is_sold = 0 AND status = 'reserved' THEN 1 ELSE 0 END),
		     SUM(CASE WHEN is_sold = 1 THEN 1 ELSE 0 END)
		 FROM vehicles
		 GROUP BY location
		 ORDER BY location`,
	)
	if err != nil {
		return nil, fmt.Errorf("computing location stats: %w", err)
	}
	defer rows.Close()

	var stats []model.LocationStats
	for rows.Next() {
		var s model.LocationStats
		if err := rows.Scan(&s.Location, &s.Total, &s.Available, &s.InTransit,
			&s.Maintenance, &s.Reserved, &s.Sold); err != nil {
			return nil, fmt.Errorf("scanning location stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
