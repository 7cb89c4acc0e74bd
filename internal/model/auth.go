package model

import "time"

// TokenRequest exchanges the operator passphrase for an admin token.
type TokenRequest struct {
	Passphrase string `json:"passphrase"`
}

// TokenResponse carries a signed admin token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
