package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrAuthentication    = errors.New("credenciales inválidas")
	ErrAuthorization     = errors.New("acceso denegado")
	ErrNoIdentity        = errors.New("no hay sesión activa")
	ErrRemoteFailure     = errors.New("el servidor remoto rechazó la operación")
	ErrNetwork           = errors.New("no se pudo contactar al servidor remoto")
	ErrOperationInFlight = errors.New("operación en curso para el mismo recurso")
)

// RemoteError describe una respuesta no exitosa del servidor remoto.
// Unwrap devuelve el error de dominio equivalente para usar errors.Is.
type RemoteError struct {
	Op      string
	Status  int
	Message string
	Kind    error
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %v (HTTP %d)", e.Op, e.Kind, e.Status)
	}
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Message, e.Status)
}

func (e *RemoteError) Unwrap() error { return e.Kind }

// UserMessage devuelve el texto a mostrar al usuario para un error de cualquier capa.
func UserMessage(err error) string {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuthentication):
		return ErrAuthentication.Error()
	case errors.Is(err, ErrAuthorization):
		return ErrAuthorization.Error()
	case errors.Is(err, ErrNoIdentity):
		return ErrNoIdentity.Error()
	case errors.Is(err, ErrNetwork):
		return ErrNetwork.Error()
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	case errors.Is(err, ErrOperationInFlight):
		return ErrOperationInFlight.Error()
	case errors.Is(err, ErrInvalidInput):
		return ErrInvalidInput.Error()
	default:
		return ErrRemoteFailure.Error()
	}
}
