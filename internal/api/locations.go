package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"carstock/internal/model"
	"carstock/internal/store"
)

// LocationsHandler handles the location directory endpoints.
type LocationsHandler struct {
	DB *sql.DB
}

// List handles GET /api/locations.
func (h *LocationsHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := store.ListLocations(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list locations", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list locations")
		return
	}
	if locations == nil {
		locations = []model.Location{}
	}
	jsonResponse(w, http.StatusOK, locations)
}

// Create handles POST /api/locations.
func (h *LocationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft store.LocationDraft
	if err := decodeJSON(r, &draft); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if draft.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	location, err := store.CreateLocation(r.Context(), h.DB, draft)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			jsonError(w, http.StatusConflict, "location name already exists")
			return
		}
		slog.Error("failed to create location", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create location")
		return
	}

	jsonResponse(w, http.StatusCreated, location)
}

// Get handles GET /api/locations/{id}.
func (h *LocationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid location id")
	if !ok {
		return
	}

	location, err := store.GetLocation(r.Context(), h.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "location not found")
		return
	}
	if err != nil {
		slog.Error("failed to get location", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get location")
		return
	}

	jsonResponse(w, http.StatusOK, location)
}

// Update handles PUT /api/locations/{id}. Renames rewrite the location
// name carried by vehicles.
func (h *LocationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid location id")
	if !ok {
		return
	}

	var draft store.LocationDraft
	if err := decodeJSON(r, &draft); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if draft.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	location, err := store.UpdateLocation(r.Context(), h.DB, id, draft)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			jsonError(w, http.StatusNotFound, "location not found")
		case errors.Is(err, store.ErrDuplicateName):
			jsonError(w, http.StatusConflict, "location name already exists")
		default:
			slog.Error("failed to update location", "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to update location")
		}
		return
	}

	jsonResponse(w, http.StatusOK, location)
}

// Delete handles DELETE /api/locations/{id}. Locations deactivate
// rather than disappear, and never while vehicles still sit there.
func (h *LocationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid location id")
	if !ok {
		return
	}

	if err := store.DeleteLocation(r.Context(), h.DB, id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			jsonError(w, http.StatusNotFound, "location not found")
		case errors.Is(err, store.ErrLocationInUse):
			jsonError(w, http.StatusConflict, "location still holds vehicles")
		default:
			slog.Error("failed to delete location", "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to delete location")
		}
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "location deactivated"})
}
