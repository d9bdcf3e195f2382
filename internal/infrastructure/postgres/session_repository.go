package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/repository"
)

var _ repository.SessionStorage = (*SessionRepo)(nil)

const createSessionTable = `
	CREATE TABLE IF NOT EXISTS client_session (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// SessionRepo implementación de SessionStorage sobre PostgreSQL.
type SessionRepo struct {
	pool *pgxpool.Pool
}

// NewSessionRepository construye el adaptador y asegura la tabla.
func NewSessionRepository(ctx context.Context, pool *pgxpool.Pool) (*SessionRepo, error) {
	if _, err := pool.Exec(ctx, createSessionTable); err != nil {
		return nil, fmt.Errorf("crear tabla client_session: %w", err)
	}
	return &SessionRepo{pool: pool}, nil
}

// Get obtiene el valor de key; ok=false si no existe.
func (r *SessionRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.pool.QueryRow(ctx, `SELECT value FROM client_session WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get session: %w", err)
	}
	return value, true, nil
}

// Put sobrescribe el registro completo.
func (r *SessionRepo) Put(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO client_session (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := r.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// Delete elimina el registro; no falla si no existe.
func (r *SessionRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM client_session WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Close cierra el pool.
func (r *SessionRepo) Close() error {
	r.pool.Close()
	return nil
}
