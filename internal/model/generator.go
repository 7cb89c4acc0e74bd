package model

import "time"

// GenerateRequest represents a password generation request.
// Nil pointers and zero values fall back to the persisted settings.
type GenerateRequest struct {
	Length   int    `json:"length"`
	Mode     string `json:"mode"`
	Quantity int    `json:"quantity"`

	Uppercase *bool `json:"uppercase"`
	Lowercase *bool `json:"lowercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`

	ExcludeSimilar   *bool   `json:"exclude_similar"`
	ExcludeAmbiguous *bool   `json:"exclude_ambiguous"`
	CustomChars      *string `json:"custom_chars"`
	ExcludeChars     *string `json:"exclude_chars"`

	MinLength        *int  `json:"min_length"`
	RequireUppercase *bool `json:"require_uppercase"`
	RequireLowercase *bool `json:"require_lowercase"`
	RequireNumbers   *bool `json:"require_numbers"`
	RequireSymbols   *bool `json:"require_symbols"`
}

// GeneratedPassword is a password together with its assessment. Immutable once built.
type GeneratedPassword struct {
	Password    string    `json:"password"`
	Length      int       `json:"length"`
	Strength    string    `json:"strength"`
	Score       float64   `json:"score"`
	EntropyBits float64   `json:"entropy_bits"`
	CrackTime   string    `json:"crack_time"`
	CreatedAt   time.Time `json:"created_at"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Passwords []GeneratedPassword `json:"passwords"`
}

// StrengthRequest asks for an assessment of an existing password.
type StrengthRequest struct {
	Password string `json:"password"`
}

// CharacterTypes lists which character classes a password contains.
type CharacterTypes struct {
	Uppercase bool `json:"uppercase"`
	Lowercase bool `json:"lowercase"`
	Numbers   bool `json:"numbers"`
	Symbols   bool `json:"symbols"`
}

// StrengthResponse is the full assessment of a password.
type StrengthResponse struct {
	Length         int            `json:"length"`
	Strength       string         `json:"strength"`
	Score          float64        `json:"score"`
	EntropyBits    float64        `json:"entropy_bits"`
	CrackTime      string         `json:"crack_time"`
	CrackSeconds   float64        `json:"crack_seconds"`
	CharacterTypes CharacterTypes `json:"character_types"`
}
