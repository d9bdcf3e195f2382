package repository

import "context"

// SessionStorage almacenamiento durable clave/valor para el registro de sesión.
// Get devuelve ("", false, nil) si la clave no existe.
type SessionStorage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
