package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"carstock/internal/model"
	"carstock/internal/store"
)

// InventoryHandler handles vehicle CRUD, search, filter, and stats.
type InventoryHandler struct {
	DB *sql.DB
}

// List handles GET /api/inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := store.ListVehicles(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list vehicles", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list vehicles")
		return
	}
	if vehicles == nil {
		vehicles = []model.Vehicle{}
	}
	jsonResponse(w, http.StatusOK, vehicles)
}

// Create handles POST /api/inventory.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.VehicleDraft
	if err := decodeJSON(r, &draft); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if draft.Manufacturer == "" || draft.Category == "" || draft.ChassisNumber == "" || draft.Location == "" {
		jsonError(w, http.StatusBadRequest, "manufacturer, category, chassis_number, and location required")
		return
	}
	if draft.Year <= 0 {
		jsonError(w, http.StatusBadRequest, "year required")
		return
	}
	if draft.Status != "" && !model.ValidStatus(draft.Status) {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if model.LifecycleStatus(draft.Status) {
		jsonError(w, http.StatusBadRequest, "sold and reserved are set via the lifecycle endpoints")
		return
	}
	if draft.ImportType == "" || !model.ValidImportType(draft.ImportType) {
		jsonError(w, http.StatusBadRequest, "invalid import type")
		return
	}

	vehicle, err := store.CreateVehicle(r.Context(), h.DB, draft)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateChassisNumber):
			jsonError(w, http.StatusConflict, "chassis number already exists")
		case errors.Is(err, store.ErrStatusNotSettable):
			jsonError(w, http.StatusBadRequest, "sold and reserved are set via the lifecycle endpoints")
		case errors.Is(err, store.ErrUnknownLocation):
			jsonError(w, http.StatusBadRequest, "unknown or inactive location")
		default:
			slog.Error("failed to create vehicle", "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to create vehicle")
		}
		return
	}

	h.sweepStock(r)
	jsonResponse(w, http.StatusCreated, vehicle)
}

// Get handles GET /api/inventory/{id}.
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}

	vehicle, err := store.GetVehicle(r.Context(), h.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "vehicle not found")
		return
	}
	if err != nil {
		slog.Error("failed to get vehicle", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get vehicle")
		return
	}

	jsonResponse(w, http.StatusOK, vehicle)
}

// Update handles PUT and PATCH /api/inventory/{id}.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}

	var upd model.VehicleUpdate
	if err := decodeJSON(r, &upd); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if upd.Status != nil && !model.ValidStatus(*upd.Status) {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if upd.Status != nil && model.LifecycleStatus(*upd.Status) {
		jsonError(w, http.StatusBadRequest, "sold and reserved are set via the lifecycle endpoints")
		return
	}
	if upd.ImportType != nil && !model.ValidImportType(*upd.ImportType) {
		jsonError(w, http.StatusBadRequest, "invalid import type")
		return
	}

	vehicle, err := store.UpdateVehicle(r.Context(), h.DB, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			jsonError(w, http.StatusNotFound, "vehicle not found")
		case errors.Is(err, store.ErrDuplicateChassisNumber):
			jsonError(w, http.StatusConflict, "chassis number already exists")
		case errors.Is(err, store.ErrVehicleSold):
			jsonError(w, http.StatusConflict, "vehicle is sold; restock it first")
		case errors.Is(err, store.ErrStatusNotSettable):
			jsonError(w, http.StatusBadRequest, "sold and reserved are set via the lifecycle endpoints")
		case errors.Is(err, store.ErrUnknownLocation):
			jsonError(w, http.StatusBadRequest, "unknown or inactive location")
		default:
			slog.Error("failed to update vehicle", "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to update vehicle")
		}
		return
	}

	jsonResponse(w, http.StatusOK, vehicle)
}

// Delete handles DELETE /api/inventory/{id}.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}

	if err := store.DeleteVehicle(r.Context(), h.DB, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "vehicle not found")
			return
		}
		slog.Error("failed to delete vehicle", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete vehicle")
		return
	}

	h.sweepStock(r)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "vehicle deleted"})
}

// Search handles GET /api/inventory/search?q=.
func (h *InventoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		jsonError(w, http.StatusBadRequest, "query parameter q required")
		return
	}

	vehicles, err := store.SearchVehicles(r.Context(), h.DB, query)
	if err != nil {
		slog.Error("failed to search vehicles", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to search vehicles")
		return
	}
	if vehicles == nil {
		vehicles = []model.Vehicle{}
	}
	jsonResponse(w, http.StatusOK, vehicles)
}

// Filter handles GET /api/inventory/filter.
func (h *InventoryHandler) Filter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := model.VehicleFilter{
		Category:     q.Get("category"),
		Status:       q.Get("status"),
		Manufacturer: q.Get("manufacturer"),
		ImportType:   q.Get("import_type"),
		Location:     q.Get("location"),
	}
	if yearStr := q.Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid year")
			return
		}
		f.Year = year
	}

	vehicles, err := store.FilterVehicles(r.Context(), h.DB, f)
	if err != nil {
		slog.Error("failed to filter vehicles", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to filter vehicles")
		return
	}
	if vehicles == nil {
		vehicles = []model.Vehicle{}
	}
	jsonResponse(w, http.StatusOK, vehicles)
}

// Stats handles GET /api/inventory/stats.
func (h *InventoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.InventoryStats(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to compute stats", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}

// ManufacturerStats handles GET /api/inventory/manufacturer-stats.
func (h *InventoryHandler) ManufacturerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.ManufacturerStats(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to compute manufacturer stats", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to compute manufacturer stats")
		return
	}
	if stats == nil {
		stats = []model.ManufacturerStats{}
	}
	jsonResponse(w, http.StatusOK, stats)
}

// LocationStats handles GET /api/inventory/location-stats.
func (h *InventoryHandler) LocationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.LocationStats(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to compute location stats", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to compute location stats")
		return
	}
	if stats == nil {
		stats = []model.LocationStats{}
	}
	jsonResponse(w, http.StatusOK, stats)
}

// History handles GET /api/inventory/{id}/history.
func (h *InventoryHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}

	transfers, err := store.VehicleTransferHistory(r.Context(), h.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "vehicle not found")
		return
	}
	if err != nil {
		slog.Error("failed to get transfer history", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get transfer history")
		return
	}
	if transfers == nil {
		transfers = []model.LocationTransfer{}
	}
	jsonResponse(w, http.StatusOK, transfers)
}

// sweepStock recomputes low-stock alerts after a mutation that changed
// active stock. Failures are logged, never surfaced to the caller.
func (h *InventoryHandler) sweepStock(r *http.Request) {
	if err := store.CheckStockLevels(r.Context(), h.DB); err != nil {
		slog.Error("stock level sweep failed", "error", err)
	}
}

// vehicleID parses the {id} path value, writing a 400 on failure.
func vehicleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	return pathID(w, r, "invalid vehicle id")
}
