package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecobazaar-storefront/internal/application/dto"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/toggle"
)

// AdminHandler panel de moderación (solo ADMIN).
type AdminHandler struct {
	moderation *toggle.Moderation
}

// NewAdminHandler construye el handler.
func NewAdminHandler(m *toggle.Moderation) *AdminHandler {
	return &AdminHandler{moderation: m}
}

// List recarga pendientes y todos los listados.
func (h *AdminHandler) List(c *fiber.Ctx) error {
	v, err := h.moderation.Load(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toModerationResponse(v))
}

// Verify aprueba un listado pendiente.
func (h *AdminHandler) Verify(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	if err := h.moderation.Verify(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(toModerationResponse(h.moderation.View()))
}

// Feature alterna el destacado.
func (h *AdminHandler) Feature(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	featured, err := h.moderation.ToggleFeatured(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FeaturedResponse{ProductID: id, Featured: featured})
}

// Delete elimina un listado.
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	if err := h.moderation.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(toModerationResponse(h.moderation.View()))
}

func toModerationResponse(v toggle.ModerationView) dto.ModerationResponse {
	return dto.ModerationResponse{Pending: dto.NewProductResponses(v.Pending), All: dto.NewProductResponses(v.All)}
}
