package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecobazaar-storefront/internal/application/dto"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/toggle"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain"
)

// writeError traduce errores de dominio a status HTTP y cuerpo dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusBadGateway, "REMOTE_ERROR"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrAuthentication):
		status, code = fiber.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, domain.ErrNoIdentity):
		status, code = fiber.StatusUnauthorized, "NO_SESSION"
	case errors.Is(err, domain.ErrAuthorization):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrOperationInFlight), errors.Is(err, toggle.ErrReset):
		status, code = fiber.StatusConflict, "IN_FLIGHT"
	case errors.Is(err, domain.ErrNetwork):
		status, code = fiber.StatusBadGateway, "REMOTE_UNAVAILABLE"
	}
	msg := domain.UserMessage(err)
	if errors.Is(err, toggle.ErrReset) {
		msg = toggle.ErrReset.Error()
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// idParam lee un parámetro de ruta numérico positivo.
func idParam(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func badID(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: name + " debe ser un entero positivo"})
}
