package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"carstock/internal/model"
	"carstock/internal/store"
)

// AlertsHandler handles stock settings and low-stock alerts.
type AlertsHandler struct {
	DB *sql.DB
}

// ListSettings handles GET /api/stock-settings.
func (h *AlertsHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := store.ListStockSettings(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list stock settings", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list stock settings")
		return
	}
	if settings == nil {
		settings = []model.StockSetting{}
	}
	jsonResponse(w, http.StatusOK, settings)
}

// CreateSetting handles POST /api/stock-settings.
func (h *AlertsHandler) CreateSetting(w http.ResponseWriter, r *http.Request) {
	var draft store.StockSettingDraft
	if err := decodeJSON(r, &draft); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if draft.Manufacturer == "" || draft.Category == "" {
		jsonError(w, http.StatusBadRequest, "manufacturer and category required")
		return
	}
	if draft.MinStockLevel < 0 || draft.LowStockThreshold < 0 || draft.CriticalStockThreshold < 0 {
		jsonError(w, http.StatusBadRequest, "thresholds must not be negative")
		return
	}

	setting, err := store.CreateStockSetting(r.Context(), h.DB, draft)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			jsonError(w, http.StatusConflict, "stock setting already exists for this manufacturer and category")
			return
		}
		slog.Error("failed to create stock setting", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create stock setting")
		return
	}

	// New thresholds may immediately apply to current stock.
	if err := store.CheckStockLevels(r.Context(), h.DB); err != nil {
		slog.Error("stock level sweep failed", "error", err)
	}
	jsonResponse(w, http.StatusCreated, setting)
}

// UpdateSetting handles PUT /api/stock-settings/{id}.
func (h *AlertsHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid stock setting id")
	if !ok {
		return
	}

	var draft store.StockSettingDraft
	if err := decodeJSON(r, &draft); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if draft.Manufacturer == "" || draft.Category == "" {
		jsonError(w, http.StatusBadRequest, "manufacturer and category required")
		return
	}

	setting, err := store.UpdateStockSetting(r.Context(), h.DB, id, draft)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "stock setting not found")
			return
		}
		slog.Error("failed to update stock setting", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update stock setting")
		return
	}

	if err := store.CheckStockLevels(r.Context(), h.DB); err != nil {
		slog.Error("stock level sweep failed", "error", err)
	}
	jsonResponse(w, http.StatusOK, setting)
}

// DeleteSetting handles DELETE /api/stock-settings/{id}.
func (h *AlertsHandler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid stock setting id")
	if !ok {
		return
	}

	if err := store.DeleteStockSetting(r.Context(), h.DB, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "stock setting not found")
			return
		}
		slog.Error("failed to delete stock setting", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete stock setting")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "stock setting deleted"})
}

// ListAlerts handles GET /api/alerts[?unread=true].
func (h *AlertsHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"

	alerts, err := store.ListAlerts(r.Context(), h.DB, unreadOnly)
	if err != nil {
		slog.Error("failed to list alerts", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list alerts")
		return
	}
	if alerts == nil {
		alerts = []model.LowStockAlert{}
	}
	jsonResponse(w, http.StatusOK, alerts)
}

// MarkRead handles PUT /api/alerts/{id}/read.
func (h *AlertsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid alert id")
	if !ok {
		return
	}

	if err := store.MarkAlertRead(r.Context(), h.DB, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "alert not found")
			return
		}
		slog.Error("failed to mark alert read", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to mark alert read")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "alert marked read"})
}

// DeleteAlert handles DELETE /api/alerts/{id}.
func (h *AlertsHandler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid alert id")
	if !ok {
		return
	}

	if err := store.DeleteAlert(r.Context(), h.DB, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "alert not found")
			return
		}
		slog.Error("failed to delete alert", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete alert")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "alert deleted"})
}

// Check handles POST /api/alerts/check, an on-demand sweep.
func (h *AlertsHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := store.CheckStockLevels(r.Context(), h.DB); err != nil {
		slog.Error("stock level sweep failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to check stock levels")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "stock levels checked"})
}
