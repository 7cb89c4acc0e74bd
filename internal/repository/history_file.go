package repository

import (
	"context"

	"github.com/securepass/securepass-go/internal/model"
)

// HistoryFile persists history as a JSON array, oldest entry first.
type HistoryFile struct {
	path string
}

// NewHistoryFile creates a HistoryFile at path.
func NewHistoryFile(path string) *HistoryFile {
	return &HistoryFile{path: path}
}

// Load returns the stored entries. A missing file yields an empty history.
func (h *HistoryFile) Load(_ context.Context) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	if _, err := readJSONFile(h.path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Save replaces the stored history with entries.
func (h *HistoryFile) Save(_ context.Context, entries []model.HistoryEntry) error {
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	return writeJSONFile(h.path, entries)
}
