package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"carstock/internal/model"
	"carstock/internal/store"
)

// TransfersHandler serves the append-only location transfer log.
type TransfersHandler struct {
	DB *sql.DB
}

// List handles GET /api/location-transfers, optionally narrowed to one
// vehicle with ?vehicle_id=.
func (h *TransfersHandler) List(w http.ResponseWriter, r *http.Request) {
	var vehicleID int64
	if idStr := r.URL.Query().Get("vehicle_id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid vehicle_id")
			return
		}
		vehicleID = id
	}

	transfers, err := store.ListTransfers(r.Context(), h.DB, vehicleID)
	if err != nil {
		slog.Error("failed to list transfers", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list transfers")
		return
	}
	if transfers == nil {
		transfers = []model.LocationTransfer{}
	}
	jsonResponse(w, http.StatusOK, transfers)
}
