package service

import (
	"errors"
	"time"

	"github.com/securepass/securepass-go/internal/crypto"
	"github.com/securepass/securepass-go/internal/model"
)

const operatorSubject = "operator"

var (
	ErrInvalidCredentials = errors.New("invalid passphrase")
	ErrPassphraseRequired = errors.New("passphrase is required")
)

// AuthService exchanges the operator passphrase for admin tokens.
type AuthService struct {
	passphraseHash string
	jwtSecret      string
	jwtExpiry      time.Duration
}

// NewAuthService creates a new AuthService. passphraseHash is an Argon2id PHC string.
func NewAuthService(passphraseHash, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		passphraseHash: passphraseHash,
		jwtSecret:      secret,
		jwtExpiry:      expiry,
	}
}

// IssueToken verifies the passphrase and returns a signed admin token.
func (s *AuthService) IssueToken(req model.TokenRequest) (model.TokenResponse, error) {
	if req.Passphrase == "" {
		return model.TokenResponse{}, ErrPassphraseRequired
	}

	match, err := crypto.VerifyPassphrase(req.Passphrase, s.passphraseHash)
	if err != nil {
		return model.TokenResponse{}, err
	}
	if !match {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.jwtExpiry)
	token, err := crypto.IssueAdminToken(operatorSubject, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{Token: token, ExpiresAt: expiresAt.UTC()}, nil
}
