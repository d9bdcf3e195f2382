package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecobazaar-storefront/internal/application/dto"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
)

// LocalIdentity clave de Locals con la identidad activa (*entity.Identity) de la petición.
const LocalIdentity = "identity"

// identityReader lo que el middleware necesita del SessionStore.
type identityReader interface {
	Current() *entity.Identity
}

// SessionMiddleware copia la identidad activa del proceso a c.Locals. La API local
// la consume una sola presentación, así que la sesión es la del SessionStore.
func SessionMiddleware(store identityReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := store.Current(); id != nil {
			c.Locals(LocalIdentity, id)
		}
		return c.Next()
	}
}

// RequireIdentity responde 401 NO_SESSION si no hay sesión. Debe usarse después de SessionMiddleware.
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetIdentity(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "inicie sesión para continuar"})
		}
		return c.Next()
	}
}

// RequireRole exige sesión y alguno de los roles; si no, 401 NO_SESSION o 403 FORBIDDEN.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := GetIdentity(c)
		if id == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "inicie sesión para continuar"})
		}
		if !id.HasRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol " + string(id.Role) + " sin acceso a este recurso"})
		}
		return c.Next()
	}
}

// GetIdentity identidad de la petición o nil.
func GetIdentity(c *fiber.Ctx) *entity.Identity {
	id, _ := c.Locals(LocalIdentity).(*entity.Identity)
	return id
}

// GetRole rol de la petición ("" para invitados).
func GetRole(c *fiber.Ctx) string {
	if id := GetIdentity(c); id != nil {
		return string(id.Role)
	}
	return ""
}
