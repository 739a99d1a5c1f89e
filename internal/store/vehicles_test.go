package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"carstock/internal/db"
	"carstock/internal/model"
)

// testLocation creates an active location so vehicle writes pass the
// directory check.
func testLocation(t *testing.T, database *sql.DB, name string) {
	t.Helper()
	if _, err := CreateLocation(context.Background(), database, LocationDraft{Name: name}); err != nil {
		t.Fatalf("CreateLocation(%q): %v", name, err)
	}
}

func testDraft(chassis string) model.VehicleDraft {
	return model.VehicleDraft{
		Manufacturer:  "Mercedes",
		Category:      "sedan",
		Year:          2023,
		ImportType:    model.ImportPersonal,
		Location:      "Main Lot",
		ChassisNumber: chassis,
	}
}

func TestCreateAndGetVehicle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	testLocation(t, database, "Main Lot")

	draft := testDraft("CH1")
	draft.ExteriorColor = "black"
	draft.Notes = "first arrival"

	v, err := CreateVehicle(ctx, database, draft)
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}
	if v.Status != model.StatusAvailable {
		t.Errorf("expected default status 'available', got %q", v.Status)
	}
	if v.IsSold {
		t.Error("new vehicle must not be sold")
	}
	if v.EntryDate.IsZero() {
		t.Error("entry date not stamped")
	}
	if v.Images == nil || len(v.Images) != 0 {
		t.Errorf("expected empty images slice, got %v", v.Images)
	}

	got, err := GetVehicle(ctx, database, v.ID)
	if err != nil {
		t.Fatalf("GetVehicle: %v", err)
	}
	if got.ChassisNumber != "CH1" || got.Notes != "first arrival" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestCreateVehicleDuplicateChassis(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	testLocation(t, database, "Main Lot")

	if _, err := CreateVehicle(ctx, database, testDraft("CH1")); err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}
	_, err := CreateVehicle(ctx, database, testDraft("CH1"))
	if !errors.Is(err, ErrDuplicateChassisNumber) {
		t.Errorf("expected ErrDuplicateChassisNumber, got %v", err)
	}
}

func TestCreateVehicleUnknownLocation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	draft := testDraft("CH1")
	draft.Location = "Nowhere"
	_, err := CreateVehicle(ctx, database, draft)
	if !errors.Is(err, ErrUnknownLocation) {
		t.Errorf("expected ErrUnknownLocation, got %v", err)
	}
}

func TestCreateVehicleResolvesManufacturer(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	testLocation(t, database, "Main Lot")

	m, err := CreateManufacturer(ctx, database, "Mercedes")
	if err != nil {
		t.Fatalf("CreateManufacturer: %v", err)
	}

	// Name match is case-insensitive.
	draft := testDraft("CH1")
	draft.Manufacturer = "mercedes"
	v, err := CreateVehicle(ctx, database, draft)
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}
	if v.ManufacturerID == nil || *v.ManufacturerID != m.ID {
		t.Errorf("expected manufacturer_id %d, got %v", m.ID, v.ManufacturerID)
	}

	// Unknown make stays unlinked.
	draft = testDraft("CH2")
	draft.Manufacturer = "Zastava"
	v, err = CreateVehicle(ctx, database, draft)
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}
	if v.ManufacturerID != nil {
		t.Errorf("expected nil manufacturer_id for unknown make, got %v", *v.ManufacturerID)
	}
}

func TestGetVehicleNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := GetVehicle(context.Background(), database, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateVehiclePartial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	testLocation(t, database, "Main Lot")

	v, err := CreateVehicle(ctx, database, testDraft("CH1"))
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}

	notes := "inspected"
	got, err := UpdateVehicle(ctx, database, v.ID, model.VehicleUpdate{Notes: &notes})
	if err != nil {
		t.Fatalf("UpdateVehicle: %v", err)
	}
	if got.Notes != "inspected" {
		t.Errorf("expected notes 'inspected', got %q", got.Notes)
	}

	// Everything else untouched.
	if got.Manufacturer != v.Manufacturer || got.Year != v.Year ||
		got.ChassisNumber != v.ChassisNumber || got.Status != v.Status {
		t.Errorf("unrelated fields changed: before %+v after %+v", v, got)
	}
}

func TestUpdateVehicleDuplicateChassis(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	testLocation(t, database, "Main Lot")

	CreateVehicle(ctx, database, testDraft("CH1"))
	v2, _ := CreateVehicle(ctx, database, testDraft("CH2"))

	chassis := "CH1"
	_, err := UpdateVehicle(ctx, database, v2.ID, model.VehicleUpdate{ChassisNumber: &chassis})
	if !errors.Is(err, ErrDuplicateChassisNumber) {
		t.Errorf("expected ErrDuplicateChassisNumber, got %v", err)
	}
}

func TestUpdateSoldVehicleStatusRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	testLocation(t, database, "Main Lot")

	v, _ := CreateVehicle(ctx, database, testDraft("CH1"))
	if _, err := SellVehicle(ctx, database, v.ID); err != nil {
		t.Fatalf("SellVehicle: %v", err)
	}

	status := model.StatusAvailable
	_, err := UpdateVehicle(ctx, database, v.ID, model.VehicleUpdate{Status: &status})
	if !errors.Is(err, ErrVehicleSold) {
		t.Errorf("expected ErrVehicleSold, got %v", err)
	}

	// Non-status fields still editable on a sold vehicle.
	notes := "archived"
	got, err := UpdateVehicle(ctx, database, v.ID, model.VehicleUpdate{Notes: &notes})
	if err != nil {
		t.Fatalf("UpdateVehicle notes on sold vehicle: %v", err)
	}
	if got.Notes != "archived" {
		t.Errorf("expected notes 'archived', got %q", got.Notes)
	}
}

func TestCreateVehicleRejectsLifecycleStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	testLocation(t, database, "Main Lot")

	for _, status := range []string{model.StatusSold, model.StatusReserved} {
		draft := testDraft("CH-" + status)
		draft.Status = status
		_, err := CreateVehicle(ctx, database, draft)
		if !errors.Is(err, ErrStatusNotSettable) {
			t.Errorf("CreateVehicle with status %q: expected ErrStatusNotSettable, got %v", status, err)
		}
	}
}

func TestUpdateVehicleRejectsLifecycleStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	testLocation(t, database, "Main Lot")

	v, _ := CreateVehicle(ctx, database, testDraft("CH1"))

	for _, status := range []string{model.StatusSold, model.StatusReserved} {
		s := status
		_, err := UpdateVehicle(ctx, database, v.ID, model.VehicleUpdate{Status: &s})
		if !errors.Is(err, ErrStatusNotSettable) {
			t.Errorf("UpdateVehicle with status %q: expected ErrStatusNotSettable, got %v", status, err)
		}
	}

	// The row is untouched and the sold bookkeeping stays coherent.
	got, err := GetVehicle(ctx, database, v.ID)
	if err != nil {
		t.Fatalf("GetVehicle: %v", err)
	}
	if got.Status != model.StatusAvailable || got.IsSold || got.SoldDate != nil {
		t.Errorf("expected untouched available vehicle, got status=%q isSold=%v soldDate=%v",
			got.Status, got.IsSold, got.SoldDate)
	}

	stats, err := InventoryStats(ctx, database)
	if err != nil {
		t.Fatalf("InventoryStats: %v", err)
	}
	if stats.Total != 1 || stats.Sold != 0 {
		t.Errorf("expected total=1 sold=0, got total=%d sold=%d", stats.Total, stats.Sold)
	}
}

func TestDeleteVehicle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	testLocation(t, database, "Main Lot")

	v, _ := CreateVehicle(ctx, database, testDraft("CH1"))
	if err := DeleteVehicle(ctx, database, v.ID); err != nil {
		t.Fatalf("DeleteVehicle: %v", err)
	}

	if _, err := GetVehicle(ctx, database, v.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := DeleteVehicle(ctx, database, v.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestSearchVehicles(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	testLocation(t, database, "Main Lot")

	d1 := testDraft("WDB12345")
	d1.ExteriorColor = "Obsidian Black"
	CreateVehicle(ctx, database, d1)

	d2 := testDraft("VF1999")
	d2.Manufacturer = "Renault"
	d2.Year = 2019
	CreateVehicle(ctx, database, d2)

	// Case-insensitive substring on a color.
	found, err := SearchVehicles(ctx, database, "obsidian")
	if err != nil {
		t.Fatalf("SearchVehicles: %v", err)
	}
	if len(found) != 1 || found[0].ChassisNumber != "WDB12345" {
		t.Errorf("expected WDB12345 for 'obsidian', got %v", found)
	}

	// Year matches as text.
	found, _ = SearchVehicles(ctx, database, "2019")
	if len(found) != 1 || found[0].Manufacturer != "Renault" {
		t.Errorf("expected Renault for '2019', got %v", found)
	}

	// Chassis substring.
	found, _ = SearchVehicles(ctx, database, "wdb")
	if len(found) != 1 {
		t.Errorf("expected 1 match for 'wdb', got %d", len(found))
	}

	found, _ = SearchVehicles(ctx, database, "no-such-thing")
	if len(found) != 0 {
		t.Errorf("expected no matches, got %d", len(found))
	}
}

func TestFilterVehicles(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	testLocation(t, database, "Main Lot")
	testLocation(t, database, "Annex")

	d1 := testDraft("CH1")
	CreateVehicle(ctx, database, d1)

	d2 := testDraft("CH2")
	d2.Category = "suv"
	d2.Location = "Annex"
	CreateVehicle(ctx, database, d2)

	d3 := testDraft("CH3")
	d3.Year = 2020
	d3.ImportType = model.ImportCompany
	CreateVehicle(ctx, database, d3)

	// Empty filter returns everything.
	all, err := FilterVehicles(ctx, database, model.VehicleFilter{})
	if err != nil {
		t.Fatalf("FilterVehicles: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 vehicles, got %d", len(all))
	}

	// Single predicate.
	suvs, _ := FilterVehicles(ctx, database, model.VehicleFilter{Category: "suv"})
	if len(suvs) != 1 || suvs[0].ChassisNumber != "CH2" {
		t.Errorf("expected CH2 for category=suv, got %v", suvs)
	}

	// Conjunction.
	got, _ := FilterVehicles(ctx, database, model.VehicleFilter{
		Manufacturer: "Mercedes",
		Year:         2020,
		ImportType:   model.ImportCompany,
	})
	if len(got) != 1 || got[0].ChassisNumber != "CH3" {
		t.Errorf("expected CH3, got %v", got)
	}

	// Contradiction.
	none, _ := FilterVehicles(ctx, database, model.VehicleFilter{Category: "suv", Year: 2020})
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}

func TestListVehiclesIncludesSold(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	testLocation(t, database, "Main Lot")

	v, _ := CreateVehicle(ctx, database, testDraft("CH1"))
	CreateVehicle(ctx, database, testDraft("CH2"))
	SellVehicle(ctx, database, v.ID)

	all, err := ListVehicles(ctx, database)
	if err != nil {
		t.Fatalf("ListVehicles: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 vehicles including the sold one, got %d", len(all))
	}
}
