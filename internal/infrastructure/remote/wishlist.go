package remote

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
)

// ListWishlist GET /wishlist/{userId}.
func (c *Client) ListWishlist(ctx context.Context, userID int64) ([]entity.WishlistItem, error) {
	var out []wishlistItemWire
	if err := c.do(ctx, call{op: "list_wishlist", method: fiber.MethodGet, path: pathf("/wishlist/%d", userID)}, &out); err != nil {
		return nil, err
	}
	items := make([]entity.WishlistItem, 0, len(out))
	for _, w := range out {
		items = append(items, entity.WishlistItem{
			ID:              w.ID,
			ProductID:       w.ProductID,
			ProductName:     w.ProductName,
			Price:           w.Price,
			ImageURL:        w.ImageURL,
			CarbonFootprint: w.CarbonFootprint,
		})
	}
	return items, nil
}

// InWishlist GET /wishlist/{userId}/check/{productId} -> {"inWishlist": bool}.
func (c *Client) InWishlist(ctx context.Context, userID, productID int64) (bool, error) {
	var out wishlistCheckWire
	if err := c.do(ctx, call{op: "check_wishlist", method: fiber.MethodGet, path: pathf("/wishlist/%d/check/%d", userID, productID)}, &out); err != nil {
		return false, err
	}
	return out.InWishlist, nil
}

// AddToWishlist POST /wishlist/{userId}.
func (c *Client) AddToWishlist(ctx context.Context, userID, productID int64) error {
	return c.do(ctx, call{
		op:     "add_wishlist",
		method: fiber.MethodPost,
		path:   pathf("/wishlist/%d", userID),
		body:   wishlistAddWire{ProductID: productID},
	}, nil)
}

// RemoveFromWishlist DELETE /wishlist/{userId}/{productId}.
func (c *Client) RemoveFromWishlist(ctx context.Context, userID, productID int64) error {
	return c.do(ctx, call{op: "remove_wishlist", method: fiber.MethodDelete, path: pathf("/wishlist/%d/%d", userID, productID)}, nil)
}
