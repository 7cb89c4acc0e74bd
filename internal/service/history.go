package service

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/securepass/securepass-go/internal/model"
	"github.com/securepass/securepass-go/internal/repository"
)

const DefaultMaxHistory = 20

// HistoryStore persists the whole history list. Every backend returned by
// repository.OpenHistoryStore satisfies it.
type HistoryStore = repository.HistoryStore

// HistoryService keeps a bounded list of generated passwords, oldest first,
// mirrored to a store. The in-memory list stays authoritative: store
// failures are logged and never surface to callers.
type HistoryService struct {
	mu      sync.Mutex
	store   HistoryStore
	entries []model.HistoryEntry
	limit   int
}

// NewHistoryService loads the persisted history and trims it to limit.
func NewHistoryService(ctx context.Context, store HistoryStore, limit int) *HistoryService {
	h := &HistoryService{store: store, limit: normalizeLimit(limit)}

	entries, err := store.Load(ctx)
	if err != nil {
		slog.Error("failed to load history, starting empty", "error", err)
		entries = nil
	}
	h.entries = trimOldest(entries, h.limit)
	return h
}

// Add appends entry, evicts the oldest entries beyond the limit and persists.
func (h *HistoryService) Add(ctx context.Context, entry model.HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = trimOldest(append(h.entries, entry), h.limit)
	h.persist(ctx)
}

// List returns a copy of the history, oldest first.
func (h *HistoryService) List() []model.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	return slices.Clone(h.entries)
}

// Clear removes every entry.
func (h *HistoryService) Clear(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil
	h.persist(ctx)
}

// SetMax changes the limit, trimming immediately if the list is now too long.
func (h *HistoryService) SetMax(ctx context.Context, limit int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.limit = normalizeLimit(limit)
	if len(h.entries) > h.limit {
		h.entries = trimOldest(h.entries, h.limit)
		h.persist(ctx)
	}
}

// Max returns the current limit.
func (h *HistoryService) Max() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.limit
}

// ExportCSV writes the history in CSV form.
func (h *HistoryService) ExportCSV(w io.Writer) error {
	return repository.WriteHistoryCSV(w, h.List())
}

// persist must be called with h.mu held.
func (h *HistoryService) persist(ctx context.Context) {
	if err := h.store.Save(ctx, h.entries); err != nil {
		slog.Error("failed to save history", "entries", len(h.entries), "error", err)
	}
}

func normalizeLimit(limit int) int {
	if limit < 1 {
		return DefaultMaxHistory
	}
	return limit
}

// trimOldest keeps the newest limit entries.
func trimOldest(entries []model.HistoryEntry, limit int) []model.HistoryEntry {
	if len(entries) <= limit {
		return entries
	}
	return slices.Clone(entries[len(entries)-limit:])
}
