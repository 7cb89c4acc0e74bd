package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/securepass/securepass-go/internal/crypto"
	"github.com/securepass/securepass-go/internal/model"
)

const (
	MaxLength   = 1024
	MaxQuantity = 50
)

var (
	ErrLengthTooLong    = fmt.Errorf("password length must be at most %d", MaxLength)
	ErrInvalidQuantity  = fmt.Errorf("quantity must be between 1 and %d", MaxQuantity)
	ErrInvalidMode      = errors.New("mode must be one of random, pronounceable, passphrase")
	ErrPasswordRequired = errors.New("password is required")
)

// PasswordService is what the front ends depend on.
type PasswordService interface {
	Generate(policy crypto.Policy) (model.GeneratedPassword, error)
	Score(password string) crypto.StrengthResult
	EstimateCrackTime(password string) crypto.CrackEstimate

	// GenerateBatch resolves a request against the stored settings.
	GenerateBatch(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error)
	// Assess bundles score, entropy and crack time for an existing password.
	Assess(req model.StrengthRequest) (model.StrengthResponse, error)
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	settings *SettingsService
	history  *HistoryService
	now      func() time.Time
}

var _ PasswordService = (*GeneratorService)(nil)

// NewGeneratorService creates a new GeneratorService. Requests fall back to
// the current settings and results are recorded in history when enabled.
func NewGeneratorService(settings *SettingsService, history *HistoryService) *GeneratorService {
	return &GeneratorService{settings: settings, history: history, now: time.Now}
}

// Generate produces one password under policy and assesses it.
func (s *GeneratorService) Generate(policy crypto.Policy) (model.GeneratedPassword, error) {
	password, err := crypto.Generate(policy)
	if err != nil {
		return model.GeneratedPassword{}, err
	}

	strength := crypto.Score(password)
	bits := crypto.EntropyBits(password)
	return model.GeneratedPassword{
		Password:    password,
		Length:      len([]rune(password)),
		Strength:    string(strength.Label),
		Score:       strength.Score,
		EntropyBits: bits,
		CrackTime:   crypto.CrackTime(bits).Display,
		CreatedAt:   s.now(),
	}, nil
}

// Score rates password.
func (s *GeneratorService) Score(password string) crypto.StrengthResult {
	return crypto.Score(password)
}

// EstimateCrackTime estimates brute-force time from the observed entropy of password.
func (s *GeneratorService) EstimateCrackTime(password string) crypto.CrackEstimate {
	return crypto.CrackTime(crypto.EntropyBits(password))
}

// Assess bundles strength, entropy and crack time for an existing password.
func (s *GeneratorService) Assess(req model.StrengthRequest) (model.StrengthResponse, error) {
	if req.Password == "" {
		return model.StrengthResponse{}, ErrPasswordRequired
	}

	strength := s.Score(req.Password)
	crack := s.EstimateCrackTime(req.Password)
	cats := crypto.ObservedCategories(req.Password)
	return model.StrengthResponse{
		Length:       len([]rune(req.Password)),
		Strength:     string(strength.Label),
		Score:        strength.Score,
		EntropyBits:  crypto.EntropyBits(req.Password),
		CrackTime:    crack.Display,
		CrackSeconds: crack.Seconds,
		CharacterTypes: model.CharacterTypes{
			Uppercase: cats.Upper,
			Lowercase: cats.Lower,
			Numbers:   cats.Digit,
			Symbols:   cats.Symbol,
		},
	}, nil
}

// GenerateBatch resolves req against the current settings and produces
// req.Quantity passwords, recording each in history when saving is enabled.
func (s *GeneratorService) GenerateBatch(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error) {
	settings := s.settings.Get()

	policy, err := policyFromRequest(settings, req)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = settings.Quantity
	}
	if quantity < 1 || quantity > MaxQuantity {
		return model.GenerateResponse{}, ErrInvalidQuantity
	}

	resp := model.GenerateResponse{Passwords: make([]model.GeneratedPassword, 0, quantity)}
	for j := 0; j < quantity; j++ {
		p, err := s.Generate(policy)
		if err != nil {
			return model.GenerateResponse{}, err
		}
		resp.Passwords = append(resp.Passwords, p)

		if settings.SaveHistory && s.history != nil {
			s.history.Add(ctx, model.HistoryEntry{
				Password: p.Password,
				Length:   p.Length,
				Strength: p.Strength,
				Date:     p.CreatedAt.Format(model.HistoryDateLayout),
			})
		}
	}

	return resp, nil
}

// policyFromRequest overlays the request on top of the settings policy.
func policyFromRequest(settings model.Settings, req model.GenerateRequest) (crypto.Policy, error) {
	policy := PolicyFromSettings(settings)

	if req.Length != 0 {
		policy.Length = req.Length
	}
	if req.Mode != "" {
		mode, ok := crypto.ParseMode(req.Mode)
		if !ok {
			return crypto.Policy{}, ErrInvalidMode
		}
		policy.Mode = mode
	}

	policy.UseUpper = boolOrDefault(req.Uppercase, policy.UseUpper)
	policy.UseLower = boolOrDefault(req.Lowercase, policy.UseLower)
	policy.UseDigits = boolOrDefault(req.Numbers, policy.UseDigits)
	policy.UseSymbols = boolOrDefault(req.Symbols, policy.UseSymbols)
	policy.ExcludeSimilar = boolOrDefault(req.ExcludeSimilar, policy.ExcludeSimilar)
	policy.ExcludeAmbiguous = boolOrDefault(req.ExcludeAmbiguous, policy.ExcludeAmbiguous)
	policy.CustomCharset = stringOrDefault(req.CustomChars, policy.CustomCharset)
	policy.ExcludeChars = stringOrDefault(req.ExcludeChars, policy.ExcludeChars)
	policy.RequireUpper = boolOrDefault(req.RequireUppercase, policy.RequireUpper)
	policy.RequireLower = boolOrDefault(req.RequireLowercase, policy.RequireLower)
	policy.RequireDigit = boolOrDefault(req.RequireNumbers, policy.RequireDigit)
	policy.RequireSymbol = boolOrDefault(req.RequireSymbols, policy.RequireSymbol)
	if req.MinLength != nil {
		policy.MinLength = *req.MinLength
	}

	if policy.Length < 1 {
		return crypto.Policy{}, crypto.ErrInvalidPolicy
	}
	if policy.Length > MaxLength || policy.MinLength > MaxLength {
		return crypto.Policy{}, ErrLengthTooLong
	}
	return policy, nil
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}

func stringOrDefault(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
