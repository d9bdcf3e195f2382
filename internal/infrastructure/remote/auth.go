package remote

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
)

// Authenticate POST /auth/login. El servidor responde 401 con {"error": ...} ante credenciales inválidas.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*entity.Identity, error) {
	var out identityWire
	err := c.do(ctx, call{
		op:     "authenticate",
		method: fiber.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"email": email, "password": password},
	}, &out)
	if err != nil {
		return nil, err
	}
	id := out.toEntity()
	if !id.Valid() {
		return nil, &domain.RemoteError{Op: "authenticate", Status: fiber.StatusOK, Message: "identidad incompleta en la respuesta", Kind: domain.ErrRemoteFailure}
	}
	return id, nil
}

// Register POST /auth/register. No autentica; el servidor rechaza con 400 los roles no permitidos.
func (c *Client) Register(ctx context.Context, in entity.Registration) error {
	if err := c.do(ctx, call{
		op:     "register",
		method: fiber.MethodPost,
		path:   "/auth/register",
		body: registerWire{
			Email:    in.Email,
			Password: in.Password,
			FullName: in.FullName,
			Role:     string(in.Role),
		},
	}, nil); err != nil {
		return fmt.Errorf("registro: %w", err)
	}
	return nil
}
