package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/securepass/securepass-go/internal/crypto"
	"github.com/securepass/securepass-go/internal/model"
)

const MaxHistoryLimit = 1000

var ErrInvalidSettings = errors.New("invalid settings")

// SettingsStore persists the settings object wholesale.
type SettingsStore interface {
	Load(ctx context.Context) (model.Settings, error)
	Save(ctx context.Context, settings model.Settings) error
}

// settingsRule is one range or enumeration check. reset restores the
// offending field from the defaults.
type settingsRule struct {
	key     string
	invalid func(model.Settings) bool
	msg     string
	reset   func(s *model.Settings, d model.Settings)
}

var settingsRules = []settingsRule{
	{
		key:     "length",
		invalid: func(s model.Settings) bool { return s.Length < 1 || s.Length > MaxLength },
		msg:     fmt.Sprintf("length must be between 1 and %d", MaxLength),
		reset:   func(s *model.Settings, d model.Settings) { s.Length = d.Length },
	},
	{
		key:     "min_length",
		invalid: func(s model.Settings) bool { return s.MinLength < 0 || s.MinLength > MaxLength },
		msg:     fmt.Sprintf("min_length must be between 0 and %d", MaxLength),
		reset:   func(s *model.Settings, d model.Settings) { s.MinLength = d.MinLength },
	},
	{
		key:     "quantity",
		invalid: func(s model.Settings) bool { return s.Quantity < 1 || s.Quantity > MaxQuantity },
		msg:     fmt.Sprintf("quantity must be between 1 and %d", MaxQuantity),
		reset:   func(s *model.Settings, d model.Settings) { s.Quantity = d.Quantity },
	},
	{
		key:     "max_history",
		invalid: func(s model.Settings) bool { return s.MaxHistory < 1 || s.MaxHistory > MaxHistoryLimit },
		msg:     fmt.Sprintf("max_history must be between 1 and %d", MaxHistoryLimit),
		reset:   func(s *model.Settings, d model.Settings) { s.MaxHistory = d.MaxHistory },
	},
	{
		key:     "theme",
		invalid: func(s model.Settings) bool { return s.Theme != "dark" && s.Theme != "light" },
		msg:     "theme must be dark or light",
		reset:   func(s *model.Settings, d model.Settings) { s.Theme = d.Theme },
	},
	{
		// Passphrase wins when both modes are stored.
		key:     "pronounceable",
		invalid: func(s model.Settings) bool { return s.Pronounceable && s.Passphrase },
		msg:     "pronounceable and passphrase are mutually exclusive",
		reset:   func(s *model.Settings, _ model.Settings) { s.Pronounceable = false },
	},
}

// SettingsService owns the current settings.
type SettingsService struct {
	mu       sync.RWMutex
	store    SettingsStore
	current  model.Settings
	onUpdate []func(context.Context, model.Settings)
}

// NewSettingsService loads settings from store. Load failures are logged and
// the defaults are used; stored fields that fail validation are reset to
// their defaults one by one.
func NewSettingsService(ctx context.Context, store SettingsStore) *SettingsService {
	settings, err := store.Load(ctx)
	if err != nil {
		slog.Error("failed to load settings, using defaults", "error", err)
		settings = model.DefaultSettings()
	}
	return &SettingsService{store: store, current: repairSettings(settings)}
}

// Get returns the current settings.
func (s *SettingsService) Get() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// OnUpdate registers fn to run after every successful change. Hooks run with
// the settings lock held, in the order changes are applied.
func (s *SettingsService) OnUpdate(fn func(context.Context, model.Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onUpdate = append(s.onUpdate, fn)
}

// Update replaces the settings wholesale. See Patch.
func (s *SettingsService) Update(ctx context.Context, settings model.Settings) error {
	return s.Patch(ctx, func(cur *model.Settings) error {
		*cur = settings
		return nil
	})
}

// Patch applies fn to a copy of the current settings, validates the result
// and makes it current, all under one lock so concurrent patches never lose
// each other's fields. An error from fn is reported as ErrInvalidSettings.
// A store failure is returned but the new settings stay in effect.
func (s *SettingsService) Patch(ctx context.Context, fn func(*model.Settings) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	if err := fn(&next); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if err := ValidateSettings(next); err != nil {
		return err
	}

	s.current = next
	for _, hook := range s.onUpdate {
		hook(ctx, next)
	}

	if err := s.store.Save(ctx, next); err != nil {
		slog.Error("failed to save settings", "error", err)
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// ValidateSettings checks the numeric ranges and enumerations of settings.
func ValidateSettings(s model.Settings) error {
	for _, rule := range settingsRules {
		if rule.invalid(s) {
			return fmt.Errorf("%w: %s", ErrInvalidSettings, rule.msg)
		}
	}
	return nil
}

// repairSettings resets each invalid field to its default.
func repairSettings(s model.Settings) model.Settings {
	defaults := model.DefaultSettings()
	for _, rule := range settingsRules {
		if rule.invalid(s) {
			slog.Warn("invalid stored setting, using default", "setting", rule.key, "reason", rule.msg)
			rule.reset(&s, defaults)
		}
	}
	return s
}

// PolicyFromSettings builds the generation policy described by settings.
func PolicyFromSettings(s model.Settings) crypto.Policy {
	mode := crypto.ModeRandom
	switch {
	case s.Passphrase:
		mode = crypto.ModePassphrase
	case s.Pronounceable:
		mode = crypto.ModePronounceable
	}

	return crypto.Policy{
		Length:           s.Length,
		Mode:             mode,
		UseUpper:         s.Uppercase,
		UseLower:         s.Lowercase,
		UseDigits:        s.Numbers,
		UseSymbols:       s.Symbols,
		ExcludeSimilar:   s.ExcludeSimilar,
		ExcludeAmbiguous: s.ExcludeAmbiguous,
		CustomCharset:    s.CustomChars,
		ExcludeChars:     s.ExcludeChars,
		MinLength:        s.MinLength,
		RequireUpper:     s.RequireUppercase,
		RequireLower:     s.RequireLowercase,
		RequireDigit:     s.RequireNumbers,
		RequireSymbol:    s.RequireSymbols,
	}
}
