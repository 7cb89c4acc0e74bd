package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/securepass/securepass-go/internal/model"
)

const historySchema = `
	CREATE TABLE IF NOT EXISTS password_history (
		id           BIGINT AUTO_INCREMENT PRIMARY KEY,
		password     VARCHAR(2048) NOT NULL,
		length       INT NOT NULL,
		strength     VARCHAR(16) NOT NULL,
		generated_at VARCHAR(19) NOT NULL
	)`

// HistoryMySQL stores history rows in the password_history table.
type HistoryMySQL struct {
	db *sql.DB
}

// NewHistoryMySQL creates a HistoryMySQL backed by db.
func NewHistoryMySQL(db *sql.DB) *HistoryMySQL {
	return &HistoryMySQL{db: db}
}

// EnsureSchema creates the history table if it does not exist.
func (h *HistoryMySQL) EnsureSchema(ctx context.Context) error {
	_, err := h.db.ExecContext(ctx, historySchema)
	return err
}

// Load returns all rows in insertion order.
func (h *HistoryMySQL) Load(ctx context.Context) ([]model.HistoryEntry, error) {
	query := `SELECT password, length, strength, generated_at FROM password_history ORDER BY id ASC`

	rows, err := h.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(&e.Password, &e.Length, &e.Strength, &e.Date); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Save replaces the table contents with entries inside one transaction.
func (h *HistoryMySQL) Save(ctx context.Context, entries []model.HistoryEntry) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM password_history`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}

	insert := `INSERT INTO password_history (password, length, strength, generated_at) VALUES (?, ?, ?, ?)`
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, insert, e.Password, e.Length, e.Strength, e.Date); err != nil {
			return fmt.Errorf("inserting history entry: %w", err)
		}
	}

	return tx.Commit()
}
