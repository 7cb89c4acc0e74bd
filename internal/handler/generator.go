package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/securepass/securepass-go/internal/crypto"
	"github.com/securepass/securepass-go/internal/model"
	"github.com/securepass/securepass-go/internal/service"
)

// GeneratorHandler handles HTTP requests for password generation and scoring.
type GeneratorHandler struct {
	service service.PasswordService
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc service.PasswordService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// HandleGenerate handles POST /api/v1/generate requests. An empty body
// generates with the stored settings.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.GenerateBatch(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		slog.Error("password generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleStrength handles POST /api/v1/strength requests.
func (h *GeneratorHandler) HandleStrength(w http.ResponseWriter, r *http.Request) {
	var req model.StrengthRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Assess(req)
	if err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func isValidationError(err error) bool {
	return errors.Is(err, crypto.ErrInvalidPolicy) ||
		errors.Is(err, service.ErrLengthTooLong) ||
		errors.Is(err, service.ErrInvalidQuantity) ||
		errors.Is(err, service.ErrInvalidMode) ||
		errors.Is(err, service.ErrPasswordRequired)
}
