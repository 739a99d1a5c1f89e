package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Settings keys.
const (
	settingJWTSecret  = "jwt_secret"
	settingAppearance = "appearance"
)

// AppearanceSettings is the UI customization document stored as one
// settings row.
type AppearanceSettings struct {
	AppName        string `json:"app_name,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
	Language       string `json:"language,omitempty"`
}

// GetJWTSecret retrieves the JWT secret from the database, generating
// and storing one on first use. INSERT OR IGNORE + re-SELECT avoids a
// race on concurrent startup.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
		settingJWTSecret, candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing jwt secret: %w", err)
	}

	var secret string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, settingJWTSecret,
	).Scan(&secret)
	if err != nil {
		return "", fmt.Errorf("querying jwt secret: %w", err)
	}

	return secret, nil
}

// GetAppearanceSettings returns the stored appearance document, or the
// zero value when none has been saved yet.
func GetAppearanceSettings(ctx context.Context, db *sql.DB) (*AppearanceSettings, error) {
	var raw string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, settingAppearance,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return &AppearanceSettings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying appearance settings: %w", err)
	}

	settings := &AppearanceSettings{}
	if err := json.Unmarshal([]byte(raw), settings); err != nil {
		return nil, fmt.Errorf("decoding appearance settings: %w", err)
	}
	return settings, nil
}

// UpdateAppearanceSettings merges the set fields of upd into the stored
// document and returns the result.
func UpdateAppearanceSettings(ctx context.Context, db *sql.DB, upd AppearanceSettings) (*AppearanceSettings, error) {
	current, err := GetAppearanceSettings(ctx, db)
	if err != nil {
		return nil, err
	}

	if upd.AppName != "" {
		current.AppName = upd.AppName
	}
	if upd.PrimaryColor != "" {
		current.PrimaryColor = upd.PrimaryColor
	}
	if upd.SecondaryColor != "" {
		current.SecondaryColor = upd.SecondaryColor
	}
	if upd.LogoURL != "" {
		current.LogoURL = upd.LogoURL
	}
	if upd.Language != "" {
		current.Language = upd.Language
	}

	raw, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("encoding appearance settings: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		settingAppearance, string(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("storing appearance settings: %w", err)
	}

	return current, nil
}
