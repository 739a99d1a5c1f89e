package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"carstock/internal/vision"
)

// VisionHandler bridges the vision/LLM upstream. Upstream failures
// degrade to a null result with a message; the request itself succeeds.
type VisionHandler struct {
	Client *vision.Client
}

type extractChassisResponse struct {
	ChassisNumber *string `json:"chassis_number"`
	Message       string  `json:"message,omitempty"`
}

type voiceRequest struct {
	Text string `json:"text"`
}

type voiceResponse struct {
	Command *vision.Command `json:"command"`
	Message string          `json:"message,omitempty"`
}

// ExtractChassis handles POST /api/vision/extract-chassis.
func (h *VisionHandler) ExtractChassis(w http.ResponseWriter, r *http.Request) {
	// Limit to 10 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read image")
		return
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}

	chassis, err := h.Client.ExtractChassisNumber(r.Context(), data, mime)
	if err != nil {
		msg := "chassis number recognition unavailable"
		switch {
		case errors.Is(err, vision.ErrNotFound):
			msg = "no chassis number found in image"
		case errors.Is(err, vision.ErrNotConfigured):
			msg = "vision service not configured"
		default:
			slog.Error("chassis extraction failed", "error", err)
		}
		jsonResponse(w, http.StatusOK, extractChassisResponse{Message: msg})
		return
	}

	jsonResponse(w, http.StatusOK, extractChassisResponse{ChassisNumber: &chassis})
}

// ProcessVoice handles POST /api/voice/process.
func (h *VisionHandler) ProcessVoice(w http.ResponseWriter, r *http.Request) {
	var req voiceRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		jsonError(w, http.StatusBadRequest, "text required")
		return
	}

	cmd, err := h.Client.ParseCommand(r.Context(), req.Text)
	if err != nil {
		msg := "voice command processing unavailable"
		if errors.Is(err, vision.ErrNotConfigured) {
			msg = "vision service not configured"
		} else {
			slog.Error("voice command parsing failed", "error", err)
		}
		jsonResponse(w, http.StatusOK, voiceResponse{Message: msg})
		return
	}

	jsonResponse(w, http.StatusOK, voiceResponse{Command: cmd})
}
