package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"carstock/internal/store"
)

// LifecycleHandler handles the sell/reserve/transfer state transitions.
type LifecycleHandler struct {
	DB *sql.DB
}

type reserveRequest struct {
	ReservedBy string `json:"reserved_by"`
	Note       string `json:"note"`
}

type transferRequest struct {
	Location      string `json:"location"`
	Reason        string `json:"reason"`
	TransferredBy string `json:"transferred_by"`
}

// Sell handles PUT /api/inventory/{id}/sell.
func (h *LifecycleHandler) Sell(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}

	vehicle, err := store.SellVehicle(r.Context(), h.DB, id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			jsonError(w, http.StatusNotFound, "vehicle not found")
		case errors.Is(err, store.ErrVehicleSold):
			jsonError(w, http.StatusConflict, "vehicle already sold")
		default:
			slog.Error("failed to sell vehicle", "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to sell vehicle")
		}
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("vehicle sold", "vehicle", vehicle.ChassisNumber, "user", claims.Username)

	if err := store.CheckStockLevels(r.Context(), h.DB); err != nil {
		slog.Error("stock level sweep failed", "error", err)
	}
	jsonResponse(w, http.StatusOK, vehicle)
}

// Restock handles PUT /api/inventory/{id}/restock. Selling is terminal
// otherwise; this is the one way back.
func (h *LifecycleHandler) Restock(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}

	vehicle, err := store.RestockVehicle(r.Context(), h.DB, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "vehicle not found")
			return
		}
		slog.Error("failed to restock vehicle", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to restock vehicle")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("vehicle restocked", "vehicle", vehicle.ChassisNumber, "user", claims.Username)

	if err := store.CheckStockLevels(r.Context(), h.DB); err != nil {
		slog.Error("stock level sweep failed", "error", err)
	}
	jsonResponse(w, http.StatusOK, vehicle)
}

// Reserve handles POST /api/inventory/{id}/reserve.
func (h *LifecycleHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}

	var req reserveRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ReservedBy == "" {
		jsonError(w, http.StatusBadRequest, "reserved_by required")
		return
	}

	vehicle, err := store.ReserveVehicle(r.Context(), h.DB, id, req.ReservedBy, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			jsonError(w, http.StatusNotFound, "vehicle not found")
		case errors.Is(err, store.ErrVehicleSold):
			jsonError(w, http.StatusConflict, "vehicle is sold")
		default:
			slog.Error("failed to reserve vehicle", "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to reserve vehicle")
		}
		return
	}

	jsonResponse(w, http.StatusOK, vehicle)
}

// CancelReservation handles POST /api/inventory/{id}/cancel-reservation.
// Cancelling a vehicle that is not reserved is a no-op.
func (h *LifecycleHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}

	vehicle, err := store.CancelReservation(r.Context(), h.DB, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "vehicle not found")
			return
		}
		slog.Error("failed to cancel reservation", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to cancel reservation")
		return
	}

	jsonResponse(w, http.StatusOK, vehicle)
}

// Transfer handles POST /api/inventory/{id}/transfer.
func (h *LifecycleHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}

	var req transferRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Location == "" {
		jsonError(w, http.StatusBadRequest, "location required")
		return
	}

	claims := GetClaims(r.Context())
	transferredBy := req.TransferredBy
	if transferredBy == "" && claims != nil {
		transferredBy = claims.Username
	}

	vehicle, err := store.TransferVehicle(r.Context(), h.DB, id, req.Location, req.Reason, transferredBy)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			jsonError(w, http.StatusNotFound, "vehicle not found")
		case errors.Is(err, store.ErrUnknownLocation):
			jsonError(w, http.StatusBadRequest, "unknown or inactive location")
		default:
			slog.Error("failed to transfer vehicle", "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to transfer vehicle")
		}
		return
	}

	slog.Info("vehicle transferred", "vehicle", vehicle.ChassisNumber, "to", req.Location)
	jsonResponse(w, http.StatusOK, vehicle)
}
