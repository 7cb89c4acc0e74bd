package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/securepass/securepass-go/internal/middleware"
	"github.com/securepass/securepass-go/internal/model"
	"github.com/securepass/securepass-go/internal/service"
)

// SettingsHandler handles HTTP requests for the stored settings.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// HandleGet handles GET /api/v1/settings requests.
func (h *SettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.settings.Get())
}

// HandleUpdate handles PUT /api/v1/settings requests. Keys missing from the
// body keep their current values.
func (h *SettingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if !decodeBody(w, r, &body) {
		return
	}

	err := h.settings.Patch(r.Context(), func(cur *model.Settings) error {
		if len(body) == 0 {
			return nil
		}
		return json.Unmarshal(body, cur)
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidSettings) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("settings applied but could not be saved"))
		return
	}

	subject, _ := middleware.SubjectFromContext(r.Context())
	slog.Info("settings updated", "subject", subject)

	writeJSON(w, http.StatusOK, h.settings.Get())
}
