package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/securepass/securepass-go/internal/model"
)

// DefaultHistoryKey is the Redis list holding the history.
const DefaultHistoryKey = "securepass:history"

// NewRedisClient connects to addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// HistoryRedis stores history as a Redis list of JSON documents, oldest at the head.
type HistoryRedis struct {
	rdb *redis.Client
	key string
}

// NewHistoryRedis creates a HistoryRedis using key.
func NewHistoryRedis(rdb *redis.Client, key string) *HistoryRedis {
	if key == "" {
		key = DefaultHistoryKey
	}
	return &HistoryRedis{rdb: rdb, key: key}
}

// Load returns the whole list.
func (h *HistoryRedis) Load(ctx context.Context) ([]model.HistoryEntry, error) {
	raw, err := h.rdb.LRange(ctx, h.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return decodeHistory(raw)
}

// Save replaces the list atomically.
func (h *HistoryRedis) Save(ctx context.Context, entries []model.HistoryEntry) error {
	values, err := encodeHistory(entries)
	if err != nil {
		return err
	}
	_, err = h.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, h.key)
		if len(values) > 0 {
			pipe.RPush(ctx, h.key, values...)
		}
		return nil
	})
	return err
}

func encodeHistory(entries []model.HistoryEntry) ([]any, error) {
	values := make([]any, len(entries))
	for i, e := range entries {
		b, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}
		values[i] = string(b)
	}
	return values, nil
}

func decodeHistory(raw []string) ([]model.HistoryEntry, error) {
	entries := make([]model.HistoryEntry, 0, len(raw))
	for _, s := range raw {
		var e model.HistoryEntry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return nil, fmt.Errorf("decoding history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
