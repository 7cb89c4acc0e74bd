package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "securepass"
	tokenAudience = "securepass-admin"

	// ScopeAdmin grants access to history and settings.
	ScopeAdmin = "admin"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AdminClaims are carried by tokens issued after passphrase login.
type AdminClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// IssueAdminToken signs an HS256 token for subject valid for ttl.
func IssueAdminToken(subject, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scope: ScopeAdmin,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseAdminToken verifies signature, issuer, audience, expiry and scope.
func ParseAdminToken(raw, secret string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Scope != ScopeAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
