package service

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/securepass/securepass-go/internal/model"
)

var errStoreDown = errors.New("store down")

type memoryHistoryStore struct {
	mu      sync.Mutex
	entries []model.HistoryEntry
	saves   int
	loadErr error
	saveErr error
}

func (m *memoryHistoryStore) Load(ctx context.Context) ([]model.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return slices.Clone(m.entries), nil
}

func (m *memoryHistoryStore) Save(ctx context.Context, entries []model.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries = slices.Clone(entries)
	return nil
}

type memorySettingsStore struct {
	settings model.Settings
	saved    bool
	loadErr  error
	saveErr  error
}

func (m *memorySettingsStore) Load(ctx context.Context) (model.Settings, error) {
	if m.loadErr != nil {
		return model.DefaultSettings(), m.loadErr
	}
	return m.settings, nil
}

func (m *memorySettingsStore) Save(ctx context.Context, settings model.Settings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.settings = settings
	m.saved = true
	return nil
}

func boolPtr(b bool) *bool       { return &b }
func intPtr(i int) *int          { return &i }
func stringPtr(s string) *string { return &s }

func entry(password string) model.HistoryEntry {
	return model.HistoryEntry{Password: password, Length: len(password), Strength: "Weak", Date: "2026-01-02 03:04:05"}
}
