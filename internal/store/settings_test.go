package store

import (
	"context"
	"testing"
	"time"

	"carstock/internal/db"
)

func TestJWTSecretStable(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}

	second, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret: %v", err)
	}
	if first != second {
		t.Error("secret changed between calls")
	}
}

func TestAppearanceSettingsMerge(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// Zero value before anything is saved.
	initial, err := GetAppearanceSettings(ctx, database)
	if err != nil {
		t.Fatalf("GetAppearanceSettings: %v", err)
	}
	if initial.AppName != "" {
		t.Errorf("expected empty settings, got %+v", initial)
	}

	_, err = UpdateAppearanceSettings(ctx, database, AppearanceSettings{
		AppName:      "AutoHiša",
		PrimaryColor: "#1a1a2e",
	})
	if err != nil {
		t.Fatalf("UpdateAppearanceSettings: %v", err)
	}

	// A later partial update keeps earlier fields.
	merged, err := UpdateAppearanceSettings(ctx, database, AppearanceSettings{Language: "sl"})
	if err != nil {
		t.Fatalf("UpdateAppearanceSettings: %v", err)
	}
	if merged.AppName != "AutoHiša" || merged.PrimaryColor != "#1a1a2e" || merged.Language != "sl" {
		t.Errorf("merge lost fields: %+v", merged)
	}

	got, _ := GetAppearanceSettings(ctx, database)
	if got.AppName != "AutoHiša" || got.Language != "sl" {
		t.Errorf("persisted settings mismatch: %+v", got)
	}
}

func TestTokenRevocation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("unknown JTI reported revoked")
	}

	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, _ = IsTokenRevoked(ctx, database, "jti-1")
	if !revoked {
		t.Error("revoked JTI not reported")
	}

	// Revoking twice is fine.
	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("double revoke: %v", err)
	}
}
