package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/securepass/securepass-go/internal/model"
	"github.com/securepass/securepass-go/internal/service"
)

// AuthHandler handles HTTP requests for admin tokens.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleToken handles POST /api/v1/auth/token requests.
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	var req model.TokenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.IssueToken(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPassphraseRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		default:
			slog.Error("token issue failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
