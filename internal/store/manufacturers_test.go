package store

import (
	"context"
	"errors"
	"testing"

	"carstock/internal/db"
)

func TestCreateManufacturerUniqueName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateManufacturer(ctx, database, "Mercedes"); err != nil {
		t.Fatalf("CreateManufacturer: %v", err)
	}

	// Uniqueness is case-insensitive.
	if _, err := CreateManufacturer(ctx, database, "MERCEDES"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestCreateManufacturerLinksExistingVehicles(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	testLocation(t, database, "Main Lot")

	// Vehicle entered before the directory knows the make.
	draft := testDraft("CH1")
	draft.Manufacturer = "Toyota"
	v, _ := CreateVehicle(ctx, database, draft)
	if v.ManufacturerID != nil {
		t.Fatalf("expected unlinked vehicle, got id %v", *v.ManufacturerID)
	}

	m, err := CreateManufacturer(ctx, database, "toyota")
	if err != nil {
		t.Fatalf("CreateManufacturer: %v", err)
	}

	got, _ := GetVehicle(ctx, database, v.ID)
	if got.ManufacturerID == nil || *got.ManufacturerID != m.ID {
		t.Errorf("expected vehicle linked to %d, got %v", m.ID, got.ManufacturerID)
	}
}

func TestUpdateManufacturerRelinksVehicles(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	testLocation(t, database, "Main Lot")

	m, _ := CreateManufacturer(ctx, database, "Mercedes")
	v, _ := CreateVehicle(ctx, database, testDraft("CH1"))
	if v.ManufacturerID == nil {
		t.Fatal("expected linked vehicle")
	}

	draft := testDraft("CH2")
	draft.Manufacturer = "Daimler"
	v2, _ := CreateVehicle(ctx, database, draft)
	if v2.ManufacturerID != nil {
		t.Fatal("expected unlinked vehicle")
	}

	if _, err := UpdateManufacturer(ctx, database, m.ID, "Daimler"); err != nil {
		t.Fatalf("UpdateManufacturer: %v", err)
	}

	// Old-name vehicle detached, new-name vehicle attached.
	got1, _ := GetVehicle(ctx, database, v.ID)
	if got1.ManufacturerID != nil {
		t.Errorf("expected CH1 unlinked after rename, got %v", *got1.ManufacturerID)
	}
	got2, _ := GetVehicle(ctx, database, v2.ID)
	if got2.ManufacturerID == nil || *got2.ManufacturerID != m.ID {
		t.Errorf("expected CH2 linked to %d, got %v", m.ID, got2.ManufacturerID)
	}
}

func TestDeleteManufacturerKeepsVehicleName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	testLocation(t, database, "Main Lot")

	m, _ := CreateManufacturer(ctx, database, "Mercedes")
	v, _ := CreateVehicle(ctx, database, testDraft("CH1"))

	if err := DeleteManufacturer(ctx, database, m.ID); err != nil {
		t.Fatalf("DeleteManufacturer: %v", err)
	}

	got, _ := GetVehicle(ctx, database, v.ID)
	if got.Manufacturer != "Mercedes" {
		t.Errorf("vehicle lost its manufacturer name: %q", got.Manufacturer)
	}
	if got.ManufacturerID != nil {
		t.Errorf("expected NULL manufacturer reference, got %v", *got.ManufacturerID)
	}
}

func TestManufacturerLogo(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	m, _ := CreateManufacturer(ctx, database, "Mercedes")

	// No logo yet.
	data, _, err := GetManufacturerLogo(ctx, database, m.ID)
	if err != nil {
		t.Fatalf("GetManufacturerLogo: %v", err)
	}
	if data != nil {
		t.Error("expected nil logo data before upload")
	}
	if m.LogoURL != "" {
		t.Errorf("expected empty logo URL before upload, got %q", m.LogoURL)
	}

	if err := SetManufacturerLogo(ctx, database, m.ID, []byte("fake logo"), "image/png"); err != nil {
		t.Fatalf("SetManufacturerLogo: %v", err)
	}

	data, mime, err := GetManufacturerLogo(ctx, database, m.ID)
	if err != nil {
		t.Fatalf("GetManufacturerLogo: %v", err)
	}
	if string(data) != "fake logo" || mime != "image/png" {
		t.Errorf("unexpected logo data %q mime %q", data, mime)
	}

	got, _ := GetManufacturer(ctx, database, m.ID)
	if got.LogoURL == "" {
		t.Error("expected logo URL after upload")
	}

	if err := SetManufacturerLogo(ctx, database, 999, []byte("x"), "image/png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
