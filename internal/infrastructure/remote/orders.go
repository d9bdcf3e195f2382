package remote

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
)

// PlaceOrder POST /orders/{userId}. Un 200 con success=false se trata como rechazo remoto.
func (c *Client) PlaceOrder(ctx context.Context, userID int64, in entity.CheckoutRequest) (*entity.OrderReceipt, error) {
	var out orderReceiptWire
	err := c.do(ctx, call{
		op:     "place_order",
		method: fiber.MethodPost,
		path:   pathf("/orders/%d", userID),
		body:   checkoutWire{Address: in.Address, Phone: in.Phone, PaymentMethod: in.PaymentMethod},
	}, &out)
	if err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &domain.RemoteError{Op: "place_order", Status: fiber.StatusOK, Message: "el servidor no confirmó el pedido", Kind: domain.ErrRemoteFailure}
	}
	return &entity.OrderReceipt{OrderID: out.OrderID, Success: true}, nil
}

// ListOrders GET /orders/user/{userId}.
func (c *Client) ListOrders(ctx context.Context, userID int64) ([]entity.Order, error) {
	var out []orderWire
	if err := c.do(ctx, call{op: "list_orders", method: fiber.MethodGet, path: pathf("/orders/user/%d", userID)}, &out); err != nil {
		return nil, err
	}
	orders := make([]entity.Order, 0, len(out))
	for _, o := range out {
		orders = append(orders, o.toEntity())
	}
	return orders, nil
}
