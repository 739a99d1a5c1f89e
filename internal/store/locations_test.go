package store

import (
	"context"
	"errors"
	"testing"

	"carstock/internal/db"
)

func TestCreateAndListLocations(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	capacity := 40
	loc, err := CreateLocation(ctx, database, LocationDraft{
		Name:     "Main Lot",
		Address:  "Industrijska cesta 5",
		Manager:  "M. Kovac",
		Capacity: &capacity,
	})
	if err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	if !loc.IsActive {
		t.Error("new location must be active")
	}
	if loc.Capacity == nil || *loc.Capacity != 40 {
		t.Errorf("expected capacity 40, got %v", loc.Capacity)
	}

	if _, err := CreateLocation(ctx, database, LocationDraft{Name: "Main Lot"}); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}

	locations, err := ListLocations(ctx, database)
	if err != nil {
		t.Fatalf("ListLocations: %v", err)
	}
	if len(locations) != 1 {
		t.Errorf("expected 1 location, got %d", len(locations))
	}
}

func TestUpdateLocationRenamesVehicles(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	loc, _ := CreateLocation(ctx, database, LocationDraft{Name: "Main Lot"})
	v, err := CreateVehicle(ctx, database, testDraft("CH1"))
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}

	updated, err := UpdateLocation(ctx, database, loc.ID, LocationDraft{Name: "Central Lot"})
	if err != nil {
		t.Fatalf("UpdateLocation: %v", err)
	}
	if updated.Name != "Central Lot" {
		t.Errorf("expected renamed location, got %q", updated.Name)
	}

	got, _ := GetVehicle(ctx, database, v.ID)
	if got.Location != "Central Lot" {
		t.Errorf("vehicle location not rewritten: %q", got.Location)
	}
}

func TestDeleteLocationInUse(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	loc, _ := CreateLocation(ctx, database, LocationDraft{Name: "Main Lot"})
	v, _ := CreateVehicle(ctx, database, testDraft("CH1"))

	if err := DeleteLocation(ctx, database, loc.ID); !errors.Is(err, ErrLocationInUse) {
		t.Errorf("expected ErrLocationInUse, got %v", err)
	}

	// After the vehicle leaves, deactivation works.
	DeleteVehicle(ctx, database, v.ID)
	if err := DeleteLocation(ctx, database, loc.ID); err != nil {
		t.Fatalf("DeleteLocation: %v", err)
	}

	// Deactivated, not gone.
	got, err := GetLocation(ctx, database, loc.ID)
	if err != nil {
		t.Fatalf("GetLocation: %v", err)
	}
	if got.IsActive {
		t.Error("expected deactivated location")
	}

	locations, _ := ListLocations(ctx, database)
	if len(locations) != 0 {
		t.Errorf("deactivated location still listed: %v", locations)
	}

	// Inactive locations no longer accept vehicles.
	if _, err := CreateVehicle(ctx, database, testDraft("CH2")); !errors.Is(err, ErrUnknownLocation) {
		t.Errorf("expected ErrUnknownLocation for inactive location, got %v", err)
	}
}

func TestListTransfersAcrossVehicles(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateLocation(ctx, database, LocationDraft{Name: "Main Lot"})
	CreateLocation(ctx, database, LocationDraft{Name: "Annex"})

	v1, _ := CreateVehicle(ctx, database, testDraft("CH1"))
	v2, _ := CreateVehicle(ctx, database, testDraft("CH2"))

	TransferVehicle(ctx, database, v1.ID, "Annex", "", "admin")
	TransferVehicle(ctx, database, v2.ID, "Annex", "", "admin")
	TransferVehicle(ctx, database, v1.ID, "Main Lot", "", "admin")

	all, err := ListTransfers(ctx, database, 0)
	if err != nil {
		t.Fatalf("ListTransfers: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 transfers, got %d", len(all))
	}
	// Newest first.
	if all[0].VehicleID != v1.ID || all[0].ToLocation != "Main Lot" {
		t.Errorf("unexpected newest transfer: %+v", all[0])
	}
	if all[0].ChassisNumber != "CH1" {
		t.Errorf("expected joined chassis number CH1, got %q", all[0].ChassisNumber)
	}

	one, _ := ListTransfers(ctx, database, v2.ID)
	if len(one) != 1 || one[0].VehicleID != v2.ID {
		t.Errorf("expected only CH2 transfers, got %v", one)
	}
}

func TestVehicleTransferHistoryNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	if _, err := VehicleTransferHistory(context.Background(), database, 77); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
