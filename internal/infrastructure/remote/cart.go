package remote

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
)

// FetchCart GET /cart/{userId}.
func (c *Client) FetchCart(ctx context.Context, userID int64) (*entity.Cart, error) {
	var out cartWire
	if err := c.do(ctx, call{op: "fetch_cart", method: fiber.MethodGet, path: pathf("/cart/%d", userID)}, &out); err != nil {
		return nil, err
	}
	return out.toEntity(), nil
}

// AddCartItem POST /cart/{userId}/items. El servidor fusiona líneas y valida stock.
func (c *Client) AddCartItem(ctx context.Context, userID, productID int64, quantity int) (int64, error) {
	var out addItemResultWire
	err := c.do(ctx, call{
		op:     "add_cart_item",
		method: fiber.MethodPost,
		path:   pathf("/cart/%d/items", userID),
		body:   addItemWire{ProductID: productID, Quantity: quantity},
	}, &out)
	if err != nil {
		return 0, err
	}
	return out.ItemID, nil
}

// RemoveCartItem DELETE /cart/{userId}/items/{itemId}.
func (c *Client) RemoveCartItem(ctx context.Context, userID, itemID int64) error {
	return c.do(ctx, call{op: "remove_cart_item", method: fiber.MethodDelete, path: pathf("/cart/%d/items/%d", userID, itemID)}, nil)
}
