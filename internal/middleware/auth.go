package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/securepass/securepass-go/internal/crypto"
)

type claimsKey struct{}

var (
	errMissingAuth   = errors.New("missing authorization header")
	errBadAuthFormat = errors.New("invalid authorization format")
)

// JWTAuth guards admin routes. Requests must carry an admin token issued
// with secret as "Authorization: Bearer <token>".
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := bearerToken(r)
			if err != nil {
				unauthorized(w, err.Error())
				return
			}

			claims, err := crypto.ParseAdminToken(raw, secret)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext returns the subject of the admin token that authorised the request.
func SubjectFromContext(ctx context.Context) (string, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*crypto.AdminClaims)
	if !ok {
		return "", false
	}
	return claims.Subject, true
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingAuth
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errBadAuthFormat
	}
	return strings.TrimSpace(token), nil
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="securepass"`)
	writeJSONError(w, http.StatusUnauthorized, msg)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
