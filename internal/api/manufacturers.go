package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"carstock/internal/imaging"
	"carstock/internal/model"
	"carstock/internal/store"
)

// ManufacturersHandler handles the manufacturer directory endpoints.
type ManufacturersHandler struct {
	DB *sql.DB
}

type manufacturerRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/manufacturers.
func (h *ManufacturersHandler) List(w http.ResponseWriter, r *http.Request) {
	manufacturers, err := store.ListManufacturers(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list manufacturers", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list manufacturers")
		return
	}
	if manufacturers == nil {
		manufacturers = []model.Manufacturer{}
	}
	jsonResponse(w, http.StatusOK, manufacturers)
}

// Create handles POST /api/manufacturers.
func (h *ManufacturersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req manufacturerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	manufacturer, err := store.CreateManufacturer(r.Context(), h.DB, req.Name)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			jsonError(w, http.StatusConflict, "manufacturer name already exists")
			return
		}
		slog.Error("failed to create manufacturer", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create manufacturer")
		return
	}

	jsonResponse(w, http.StatusCreated, manufacturer)
}

// Get handles GET /api/manufacturers/{id}.
func (h *ManufacturersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid manufacturer id")
	if !ok {
		return
	}

	manufacturer, err := store.GetManufacturer(r.Context(), h.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "manufacturer not found")
		return
	}
	if err != nil {
		slog.Error("failed to get manufacturer", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get manufacturer")
		return
	}

	jsonResponse(w, http.StatusOK, manufacturer)
}

// Update handles PUT /api/manufacturers/{id}. Renames re-link vehicles
// carrying the old name.
func (h *ManufacturersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid manufacturer id")
	if !ok {
		return
	}

	var req manufacturerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	manufacturer, err := store.UpdateManufacturer(r.Context(), h.DB, id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			jsonError(w, http.StatusNotFound, "manufacturer not found")
		case errors.Is(err, store.ErrDuplicateName):
			jsonError(w, http.StatusConflict, "manufacturer name already exists")
		default:
			slog.Error("failed to update manufacturer", "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to update manufacturer")
		}
		return
	}

	jsonResponse(w, http.StatusOK, manufacturer)
}

// Delete handles DELETE /api/manufacturers/{id}. Vehicles referencing
// the manufacturer keep their name string; only the directory link goes.
func (h *ManufacturersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid manufacturer id")
	if !ok {
		return
	}

	if err := store.DeleteManufacturer(r.Context(), h.DB, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "manufacturer not found")
			return
		}
		slog.Error("failed to delete manufacturer", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete manufacturer")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "manufacturer deleted"})
}

// UploadLogo handles PUT /api/manufacturers/{id}/logo.
func (h *ManufacturersHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid manufacturer id")
	if !ok {
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("logo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "logo file required")
		return
	}
	defer file.Close()

	processed, err := imaging.ProcessLogo(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetManufacturerLogo(r.Context(), h.DB, id, processed.Data, processed.MIME); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "manufacturer not found")
			return
		}
		slog.Error("failed to save logo", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save logo")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "logo uploaded"})
}

// GetLogo handles GET /api/manufacturers/{id}/logo.
func (h *ManufacturersHandler) GetLogo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid manufacturer id")
	if !ok {
		return
	}

	data, mime, err := store.GetManufacturerLogo(r.Context(), h.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "manufacturer not found")
		return
	}
	if err != nil {
		slog.Error("failed to get logo", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get logo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no logo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

// pathID parses the {id} path value, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, message string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}
