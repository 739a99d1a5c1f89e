package store

import (
	"context"
	"database/sql"
	"fmt"

	"carstock/internal/model"
)

// StockSettingDraft holds the caller-supplied threshold fields.
type StockSettingDraft struct {
	Manufacturer           string `json:"manufacturer"`
	Category               string `json:"category"`
	MinStockLevel          int    `json:"min_stock_level"`
	LowStockThreshold      int    `json:"low_stock_threshold"`
	CriticalStockThreshold int    `json:"critical_stock_threshold"`
}

// CreateStockSetting adds thresholds for a manufacturer+category pair.
func CreateStockSetting(ctx context.Context, db *sql.DB, draft StockSettingDraft) (*model.StockSetting, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO stock_settings (manufacturer, category, min_stock_level,
		     low_stock_threshold, critical_stock_threshold)
		 VALUES (?, ?, ?, ?, ?)`,
		draft.Manufacturer, draft.Category, draft.MinStockLevel,
		draft.LowStockThreshold, draft.CriticalStockThreshold,
	)
	if err != nil {
		if isUniqueViolation(err, "stock_settings") {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("creating stock setting: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting stock setting id: %w", err)
	}

	return getStockSetting(ctx, db, id)
}

// ListStockSettings returns all threshold configurations.
func ListStockSettings(ctx context.Context, db *sql.DB) ([]model.StockSetting, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, manufacturer, category, min_stock_level, low_stock_threshold,
		        critical_stock_threshold, created_at, updated_at
		 FROM stock_settings ORDER BY manufacturer, category`)
	if err != nil {
		return nil, fmt.Errorf("listing stock settings: %w", err)
	}
	defer rows.Close()

	var settings []model.StockSetting
	for rows.Next() {
		var s model.StockSetting
		if err := rows.Scan(&s.ID, &s.Manufacturer, &s.Category, &s.MinStockLevel,
			&s.LowStockThreshold, &s.CriticalStockThreshold, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning stock setting: %w", err)
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// UpdateStockSetting replaces the thresholds of an existing setting.
func UpdateStockSetting(ctx context.Context, db *sql.DB, id int64, draft StockSettingDraft) (*model.StockSetting, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE stock_settings SET manufacturer = ?, category = ?, min_stock_level = ?,
		     low_stock_threshold = ?, critical_stock_threshold = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		draft.Manufacturer, draft.Category, draft.MinStockLevel,
		draft.LowStockThreshold, draft.CriticalStockThreshold, id,
	)
	if err != nil {
		if isUniqueViolation(err, "stock_settings") {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("updating stock setting: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return getStockSetting(ctx, db, id)
}

// DeleteStockSetting removes a threshold configuration.
func DeleteStockSetting(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM stock_settings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting stock setting: %w", err)
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

func getStockSetting(ctx context.Context, db *sql.DB, id int64) (*model.StockSetting, error) {
	var s model.StockSetting
	err := db.QueryRowContext(ctx,
		`SELECT id, manufacturer, category, min_stock_level, low_stock_threshold,
		        critical_stock_threshold, created_at, updated_at
		 FROM stock_settings WHERE id = ?`, id,
	).Scan(&s.ID, &s.Manufacturer, &s.Category, &s.MinStockLevel,
		&s.LowStockThreshold, &s.CriticalStockThreshold, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting stock setting: %w", err)
	}
	return &s, nil
}

// ListAlerts returns low-stock alerts, optionally only unread ones.
func ListAlerts(ctx context.Context, db *sql.DB, unreadOnly bool) ([]model.LowStockAlert, error) {
	query := `SELECT id, manufacturer, category, current_stock, min_stock_level,
	                 alert_level, is_read, created_at, updated_at
	          FROM low_stock_alerts`
	if unreadOnly {
		query += ` WHERE is_read = 0`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	defer rows.Close()

	var alerts []model.LowStockAlert
	for rows.Next() {
		var a model.LowStockAlert
		if err := rows.Scan(&a.ID, &a.Manufacturer, &a.Category, &a.CurrentStock,
			&a.MinStockLevel, &a.AlertLevel, &a.IsRead, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// MarkAlertRead flags an alert as seen.
func MarkAlertRead(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE low_stock_alerts SET is_read = 1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("marking alert read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking alert update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAlert removes an alert.
func DeleteAlert(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM low_stock_alerts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting alert: %w", err)
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

// CheckStockLevels sweeps the configured thresholds against the current
// active (non-sold) stock and raises alerts. While an unread alert
// exists for a manufacturer+category pair, no duplicate is raised.
func CheckStockLevels(ctx context.Context, db *sql.DB) error {
	settings, err := ListStockSettings(ctx, db)
	if err != nil {
		return err
	}

	for _, setting := range settings {
		var current int
		err := db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM vehicles
			 WHERE is_sold = 0 AND manufacturer = ? AND category = ?`,
			setting.Manufacturer, setting.Category,
		).Scan(&current)
		if err != nil {
			return fmt.Errorf("counting stock for %s/%s: %w", setting.Manufacturer, setting.Category, err)
		}

		var level string
		switch {
		case current == 0:
			level = model.AlertLevelOutOfStock
		case current <= setting.CriticalStockThreshold:
			level = model.AlertLevelCritical
		case current <= setting.LowStockThreshold:
			level = model.AlertLevelLow
		default:
			continue
		}

		var unread int
		err = db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM low_stock_alerts
			 WHERE manufacturer = ? AND category = ? AND is_read = 0`,
			setting.Manufacturer, setting.Category,
		).Scan(&unread)
		if err != nil {
			return fmt.Errorf("checking existing alerts: %w", err)
		}
		if unread > 0 {
			continue
		}

		_, err = db.ExecContext(ctx,
			`INSERT INTO low_stock_alerts (manufacturer, category, current_stock,
			     min_stock_level, alert_level)
			 VALUES (?, ?, ?, ?, ?)`,
			setting.Manufacturer, setting.Category, current, setting.MinStockLevel, level,
		)
		if err != nil {
			return fmt.Errorf("creating alert: %w", err)
		}
	}

	return nil
}
