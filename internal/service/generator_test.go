package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode"

	"github.com/securepass/securepass-go/internal/crypto"
	"github.com/securepass/securepass-go/internal/model"
)

func newTestGeneratorService(t *testing.T, settings model.Settings) (*GeneratorService, *HistoryService) {
	t.Helper()
	ctx := context.Background()
	settingsSvc := NewSettingsService(ctx, &memorySettingsStore{settings: settings})
	historySvc := NewHistoryService(ctx, &memoryHistoryStore{}, settings.MaxHistory)
	return NewGeneratorService(settingsSvc, historySvc), historySvc
}

func TestGenerateBatch_Defaults(t *testing.T) {
	svc, history := newTestGeneratorService(t, model.DefaultSettings())

	resp, err := svc.GenerateBatch(context.Background(), model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Passwords) != 1 {
		t.Fatalf("expected 1 password, got %d", len(resp.Passwords))
	}
	p := resp.Passwords[0]
	if p.Length != 16 || len(p.Password) != 16 {
		t.Errorf("expected length 16, got %d (%q)", p.Length, p.Password)
	}
	if p.Strength == "" || p.CrackTime == "" {
		t.Errorf("expected assessment to be filled in, got %+v", p)
	}

	entries := history.List()
	if len(entries) != 1 || entries[0].Password != p.Password {
		t.Errorf("expected the password to be recorded in history, got %+v", entries)
	}
}

func TestGenerateBatch_CustomOptions(t *testing.T) {
	svc, _ := newTestGeneratorService(t, model.DefaultSettings())

	resp, err := svc.GenerateBatch(context.Background(), model.GenerateRequest{
		Length:    32,
		Quantity:  5,
		Uppercase: boolPtr(true),
		Lowercase: boolPtr(true),
		Numbers:   boolPtr(false),
		Symbols:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Passwords) != 5 {
		t.Fatalf("expected 5 passwords, got %d", len(resp.Passwords))
	}
	for _, p := range resp.Passwords {
		if p.Length != 32 {
			t.Errorf("expected length 32, got %d", p.Length)
		}
		for _, c := range p.Password {
			if !unicode.IsLetter(c) {
				t.Errorf("unexpected character %q in password with only uppercase+lowercase", c)
			}
		}
	}
}

func TestGenerateBatch_Mode(t *testing.T) {
	svc, _ := newTestGeneratorService(t, model.DefaultSettings())

	resp, err := svc.GenerateBatch(context.Background(), model.GenerateRequest{
		Mode:      "passphrase",
		Length:    16,
		MinLength: intPtr(0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if words := strings.Fields(resp.Passwords[0].Password); len(words) != 4 {
		t.Errorf("expected 4 words, got %q", resp.Passwords[0].Password)
	}
}

func TestGenerateBatch_ModeFromSettings(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Pronounceable = true
	settings.Numbers = false
	settings.Symbols = false
	settings.MinLength = 0
	svc, _ := newTestGeneratorService(t, settings)

	resp, err := svc.GenerateBatch(context.Background(), model.GenerateRequest{Length: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range resp.Passwords[0].Password {
		if i%3 == 0 && !unicode.IsUpper(r) {
			t.Errorf("expected uppercase consonant at %d in %q", i, resp.Passwords[0].Password)
		}
	}
}

func TestGenerateBatch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     model.GenerateRequest
		wantErr error
	}{
		{"negative length", model.GenerateRequest{Length: -1}, crypto.ErrInvalidPolicy},
		{"length too long", model.GenerateRequest{Length: MaxLength + 1}, ErrLengthTooLong},
		{"min length too long", model.GenerateRequest{MinLength: intPtr(MaxLength + 1)}, ErrLengthTooLong},
		{"quantity too high", model.GenerateRequest{Quantity: MaxQuantity + 1}, ErrInvalidQuantity},
		{"negative quantity", model.GenerateRequest{Quantity: -2}, ErrInvalidQuantity},
		{"unknown mode", model.GenerateRequest{Mode: "diceware"}, ErrInvalidMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, history := newTestGeneratorService(t, model.DefaultSettings())
			_, err := svc.GenerateBatch(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if n := len(history.List()); n != 0 {
				t.Errorf("expected no history on error, got %d entries", n)
			}
		})
	}
}

func TestGenerateBatch_NoCharacterTypesFallsBack(t *testing.T) {
	svc, _ := newTestGeneratorService(t, model.DefaultSettings())

	resp, err := svc.GenerateBatch(context.Background(), model.GenerateRequest{
		Length:    16,
		MinLength: intPtr(0),
		Uppercase: boolPtr(false),
		Lowercase: boolPtr(false),
		Numbers:   boolPtr(false),
		Symbols:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range resp.Passwords[0].Password {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			t.Errorf("expected alphanumeric fallback, got %q", c)
		}
	}
}

func TestGenerateBatch_HistoryDisabled(t *testing.T) {
	settings := model.DefaultSettings()
	settings.SaveHistory = false
	svc, history := newTestGeneratorService(t, settings)

	if _, err := svc.GenerateBatch(context.Background(), model.GenerateRequest{Quantity: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(history.List()); n != 0 {
		t.Errorf("expected no history with save_history off, got %d", n)
	}
}

func TestGenerateBatch_RequestOverridesSettings(t *testing.T) {
	settings := model.DefaultSettings()
	settings.CustomChars = "xyz"
	settings.MinLength = 0
	svc, _ := newTestGeneratorService(t, settings)

	resp, err := svc.GenerateBatch(context.Background(), model.GenerateRequest{
		CustomChars:  stringPtr("ab"),
		ExcludeChars: stringPtr("b"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resp.Passwords[0].Password; got != strings.Repeat("a", 16) {
		t.Errorf("expected only 'a' characters, got %q", got)
	}
}

func TestAssess(t *testing.T) {
	svc, _ := newTestGeneratorService(t, model.DefaultSettings())

	resp, err := svc.Assess(model.StrengthRequest{Password: "password123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Strength != string(crypto.Weak) {
		t.Errorf("expected Weak, got %q", resp.Strength)
	}
	if resp.Length != 11 {
		t.Errorf("expected length 11, got %d", resp.Length)
	}
	want := model.CharacterTypes{Lowercase: true, Numbers: true}
	if resp.CharacterTypes != want {
		t.Errorf("expected %+v, got %+v", want, resp.CharacterTypes)
	}
	if resp.CrackSeconds <= 0 {
		t.Errorf("expected positive crack seconds, got %v", resp.CrackSeconds)
	}
}

func TestAssess_EmptyPassword(t *testing.T) {
	svc, _ := newTestGeneratorService(t, model.DefaultSettings())

	if _, err := svc.Assess(model.StrengthRequest{}); err != ErrPasswordRequired {
		t.Errorf("expected ErrPasswordRequired, got %v", err)
	}
}

func TestEstimateCrackTime_Empty(t *testing.T) {
	svc, _ := newTestGeneratorService(t, model.DefaultSettings())

	if got := svc.EstimateCrackTime(""); got.Display != "Instantly" {
		t.Errorf("expected Instantly, got %q", got.Display)
	}
}

func TestGenerateBatch_InvalidStoredQuantity(t *testing.T) {
	stored := model.DefaultSettings()
	stored.Quantity = 0
	svc, _ := newTestGeneratorService(t, stored)

	resp, err := svc.GenerateBatch(context.Background(), model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Passwords) != 1 {
		t.Errorf("expected the default quantity of 1, got %d", len(resp.Passwords))
	}
}
