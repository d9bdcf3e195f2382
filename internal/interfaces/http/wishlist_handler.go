package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecobazaar-storefront/internal/application/dto"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/toggle"
)

// WishlistHandler lista de deseos de la sesión.
type WishlistHandler struct {
	wishlist *toggle.Wishlist
}

// NewWishlistHandler construye el handler.
func NewWishlistHandler(w *toggle.Wishlist) *WishlistHandler {
	return &WishlistHandler{wishlist: w}
}

// List lee la lista completa del servidor.
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	items, err := h.wishlist.Load(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewWishlistResponses(items))
}

// Check consulta si el producto está guardado.
func (h *WishlistHandler) Check(c *fiber.Ctx) error {
	id, ok := idParam(c, "productId")
	if !ok {
		return badID(c, "productId")
	}
	in, err := h.wishlist.Check(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.WishlistStateResponse{ProductID: id, InWishlist: in})
}

// Toggle agrega o quita según el estado actual.
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	id, ok := idParam(c, "productId")
	if !ok {
		return badID(c, "productId")
	}
	in, err := h.wishlist.Toggle(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.WishlistStateResponse{ProductID: id, InWishlist: in})
}

// Remove quita el producto de la lista.
func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	id, ok := idParam(c, "productId")
	if !ok {
		return badID(c, "productId")
	}
	if err := h.wishlist.Remove(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.WishlistStateResponse{ProductID: id})
}

// MoveToCart agrega una unidad al carrito y quita el producto de la lista.
func (h *WishlistHandler) MoveToCart(c *fiber.Ctx) error {
	id, ok := idParam(c, "productId")
	if !ok {
		return badID(c, "productId")
	}
	if err := h.wishlist.MoveToCart(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.WishlistStateResponse{ProductID: id})
}
