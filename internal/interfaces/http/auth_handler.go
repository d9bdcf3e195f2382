package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecobazaar-storefront/internal/application/dto"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/session"
)

// SessionHandler login, logout, registro y estado de la sesión.
type SessionHandler struct {
	store *session.Store
}

// NewSessionHandler construye el handler de sesión.
func NewSessionHandler(store *session.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

// Current godoc
// @Summary      Estado de la sesión
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	return c.JSON(dto.NewSessionResponse(h.store.Current()))
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/session [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id, err := h.store.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSessionResponse(id))
}

// Logout cierra la sesión; siempre responde con el estado de invitado.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	h.store.Logout(c.UserContext())
	return c.JSON(dto.NewSessionResponse(nil))
}

// Register godoc
// @Summary      Registrar usuario (no inicia sesión)
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, full_name, role"
// @Success      201   {object}  dto.AckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/session/register [post]
func (h *SessionHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.store.Register(c.UserContext(), in.ToEntity()); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AckResponse{OK: true})
}
