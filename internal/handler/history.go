package handler

import (
	"log/slog"
	"net/http"

	"github.com/securepass/securepass-go/internal/middleware"
	"github.com/securepass/securepass-go/internal/service"
)

const exportFilename = "password_history.csv"

// HistoryHandler handles HTTP requests for the password history.
type HistoryHandler struct {
	history *service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(history *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// HandleList handles GET /api/v1/history requests.
func (h *HistoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.history.List())
}

// HandleClear handles DELETE /api/v1/history requests.
func (h *HistoryHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.history.Clear(r.Context())

	subject, _ := middleware.SubjectFromContext(r.Context())
	slog.Info("history cleared", "subject", subject)
	w.WriteHeader(http.StatusNoContent)
}

// HandleExport handles GET /api/v1/history/export requests.
func (h *HistoryHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.WriteHeader(http.StatusOK)

	if err := h.history.ExportCSV(w); err != nil {
		slog.Error("history export failed", "error", err)
	}
}
