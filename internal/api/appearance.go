package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"carstock/internal/store"
)

// AppearanceHandler serves the UI customization document.
type AppearanceHandler struct {
	DB *sql.DB
}

// Get handles GET /api/appearance.
func (h *AppearanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := store.GetAppearanceSettings(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to get appearance settings", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get appearance settings")
		return
	}
	jsonResponse(w, http.StatusOK, settings)
}

// Update handles PUT /api/appearance.
func (h *AppearanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd store.AppearanceSettings
	if err := decodeJSON(r, &upd); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := store.UpdateAppearanceSettings(r.Context(), h.DB, upd)
	if err != nil {
		slog.Error("failed to update appearance settings", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update appearance settings")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("appearance settings updated", "user", claims.Username)
	jsonResponse(w, http.StatusOK, settings)
}
