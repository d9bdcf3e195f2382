package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/ecobazaar-storefront/internal/domain/repository"
	_ "modernc.org/sqlite"
)

var _ repository.SessionStorage = (*SessionRepo)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS client_session (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SessionRepo implementación de SessionStorage sobre un archivo SQLite local.
type SessionRepo struct {
	db *sql.DB
}

// Open abre (o crea) la base en path y aplica el esquema.
func Open(path string) (*SessionRepo, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("ruta de almacenamiento requerida")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Una sola conexión: con :memory: cada conexión tendría su propia base.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("crear esquema: %w", err)
	}
	return &SessionRepo{db: db}, nil
}

// Get obtiene el valor de key; ok=false si no existe.
func (r *SessionRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM client_session WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get session: %w", err)
	}
	return value, true, nil
}

// Put sobrescribe el registro completo.
func (r *SessionRepo) Put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO client_session (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// Delete elimina el registro; no falla si no existe.
func (r *SessionRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM client_session WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Close cierra la base subyacente.
func (r *SessionRepo) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
