package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecobazaar-storefront/internal/application/cart"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/dto"
)

// CartHandler contador y mutaciones del carrito.
type CartHandler struct {
	sync *cart.Synchronizer
}

// NewCartHandler construye el handler.
func NewCartHandler(s *cart.Synchronizer) *CartHandler {
	return &CartHandler{sync: s}
}

// Get godoc
// @Summary      Contador y contenido del carrito (0 para invitados)
// @Tags         cart
// @Produce      json
// @Param        refresh  query  bool  false  "volver a leer del servidor"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	if id := GetIdentity(c); id != nil && c.QueryBool("refresh") {
		if err := h.sync.Refresh(c.UserContext(), id); err != nil {
			return writeError(c, err)
		}
	}
	snap := h.sync.Snapshot()
	return c.JSON(dto.NewCartResponse(snap.Count, snap.Items, snap.TotalAmount, snap.TotalCarbon))
}

// AddItem godoc
// @Summary      Agregar al carrito
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.CartMutationResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	itemID, err := h.sync.AddItem(c.UserContext(), in.ProductID, in.Quantity)
	stale := errors.Is(err, cart.ErrStaleCount)
	if err != nil && !stale {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CartMutationResponse{ItemID: itemID, Count: h.sync.Count(), CountStale: stale})
}

// RemoveItem quita una línea del carrito.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	itemID, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	err := h.sync.RemoveItem(c.UserContext(), itemID)
	stale := errors.Is(err, cart.ErrStaleCount)
	if err != nil && !stale {
		return writeError(c, err)
	}
	return c.JSON(dto.CartMutationResponse{ItemID: itemID, Count: h.sync.Count(), CountStale: stale})
}

// Checkout confirma el carrito como pedido.
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	receipt, err := h.sync.PlaceOrder(c.UserContext(), in.ToEntity())
	stale := errors.Is(err, cart.ErrStaleCount)
	if err != nil && !stale {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CartMutationResponse{OrderID: receipt.OrderID, Count: h.sync.Count(), CountStale: stale})
}
