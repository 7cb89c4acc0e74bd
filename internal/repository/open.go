package repository

import (
	"context"
	"log/slog"

	"github.com/securepass/securepass-go/internal/config"
	"github.com/securepass/securepass-go/internal/model"
)

// HistoryStore is implemented by every history backend in this package.
type HistoryStore interface {
	Load(ctx context.Context) ([]model.HistoryEntry, error)
	Save(ctx context.Context, entries []model.HistoryEntry) error
}

// OpenHistoryStore returns the backend named by cfg.HistoryBackend. When a
// network backend cannot be reached it logs a warning and falls back to the
// JSON file. The returned close function is always non-nil.
func OpenHistoryStore(ctx context.Context, cfg config.Config) (HistoryStore, func() error) {
	file := NewHistoryFile(cfg.HistoryPath)
	noop := func() error { return nil }

	switch cfg.HistoryBackend {
	case config.BackendMySQL:
		db, err := NewDB(cfg.DatabaseDSN)
		if err != nil {
			slog.Warn("database connection failed, using history file", "path", cfg.HistoryPath, "error", err)
			return file, noop
		}
		store := NewHistoryMySQL(db)
		if err := store.EnsureSchema(ctx); err != nil {
			slog.Warn("history schema setup failed, using history file", "path", cfg.HistoryPath, "error", err)
			db.Close()
			return file, noop
		}
		return store, db.Close

	case config.BackendRedis:
		rdb, err := NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			slog.Warn("redis connection failed, using history file", "path", cfg.HistoryPath, "error", err)
			return file, noop
		}
		return NewHistoryRedis(rdb, cfg.RedisKey), rdb.Close
	}

	return file, noop
}
