package model

import "time"

// StockSetting defines the alerting thresholds for one
// manufacturer+category combination.
type StockSetting struct {
	ID                     int64     `json:"id"`
	Manufacturer           string    `json:"manufacturer"`
	Category               string    `json:"category"`
	MinStockLevel          int       `json:"min_stock_level"`
	LowStockThreshold      int       `json:"low_stock_threshold"`
	CriticalStockThreshold int       `json:"critical_stock_threshold"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// LowStockAlert is raised by the stock sweep when an active stock count
// drops to or below a configured threshold.
type LowStockAlert struct {
	ID            int64     `json:"id"`
	Manufacturer  string    `json:"manufacturer"`
	Category      string    `json:"category"`
	CurrentStock  int       `json:"current_stock"`
	MinStockLevel int       `json:"min_stock_level"`
	AlertLevel    string    `json:"alert_level"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Alert levels, from least to most severe.
const (
	AlertLevelLow        = "low"
	AlertLevelCritical   = "critical"
	AlertLevelOutOfStock = "out_of_stock"
)
