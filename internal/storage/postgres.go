// File: internal/storage/postgres.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS user_preferences (
    session_id   TEXT        NOT NULL,
    pref_key     TEXT        NOT NULL,
    pref_value   TEXT        NOT NULL,
    last_updated TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (session_id, pref_key)
)`

// PostgresStore handles preference persistence in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("database pool cannot be nil")
	}
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the preferences table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create user_preferences table: %w", err)
	}
	return nil
}

// GetPreference retrieves the value of key for sessionID.
// Returns the value, a boolean indicating if found, and any error.
func (s *PostgresStore) GetPreference(ctx context.Context, sessionID, key string) (string, bool, error) {
	query := `
        SELECT pref_value
        FROM user_preferences
        WHERE session_id = $1 AND pref_key = $2
    `
	var value string

	slog.DebugContext(ctx, "Querying preference", "sessionID", sessionID, "key", key)
	err := s.pool.QueryRow(ctx, query, sessionID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			slog.DebugContext(ctx, "No preference found in DB", "sessionID", sessionID, "key", key)
			return "", false, nil
		}
		slog.ErrorContext(ctx, "Error querying preference from DB", "sessionID", sessionID, "key", key, "error", err)
		return "", false, fmt.Errorf("failed to query preference: %w", err)
	}

	return value, true, nil
}

// SetPreference inserts or updates key for sessionID (Upsert).
func (s *PostgresStore) SetPreference(ctx context.Context, sessionID, key, value string) error {
	query := `
        INSERT INTO user_preferences (session_id, pref_key, pref_value, last_updated)
        VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
        ON CONFLICT (session_id, pref_key) DO UPDATE SET
            pref_value = EXCLUDED.pref_value,
            last_updated = CURRENT_TIMESTAMP
    `
	commandTag, err := s.pool.Exec(ctx, query, sessionID, key, value)
	if err != nil {
		slog.ErrorContext(ctx, "Error executing upsert preference in DB", "sessionID", sessionID, "key", key, "error", err)
		return fmt.Errorf("failed to set preference: %w", err)
	}

	slog.DebugContext(ctx, "Successfully set preference", "sessionID", sessionID, "key", key, "rowsAffected", commandTag.RowsAffected())
	return nil
}

// DeletePreference removes key for sessionID. Missing keys are not an error.
func (s *PostgresStore) DeletePreference(ctx context.Context, sessionID, key string) error {
	query := `DELETE FROM user_preferences WHERE session_id = $1 AND pref_key = $2`
	if _, err := s.pool.Exec(ctx, query, sessionID, key); err != nil {
		slog.ErrorContext(ctx, "Error deleting preference from DB", "sessionID", sessionID, "key", key, "error", err)
		return fmt.Errorf("failed to delete preference: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
