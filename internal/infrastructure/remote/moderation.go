package remote

import (
	"context"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
)

// PendingProducts GET /products/admin/pending.
func (c *Client) PendingProducts(ctx context.Context) ([]entity.Product, error) {
	var out []productWire
	if err := c.do(ctx, call{op: "pending_products", method: fiber.MethodGet, path: "/products/admin/pending"}, &out); err != nil {
		return nil, err
	}
	return toProducts(out), nil
}

// VerifyProduct PUT /products/admin/verify/{id}?adminId=.
func (c *Client) VerifyProduct(ctx context.Context, productID, adminID int64) error {
	return c.do(ctx, call{
		op:     "verify_product",
		method: fiber.MethodPut,
		path:   pathf("/products/admin/verify/%d", productID),
		query:  idParam("adminId", adminID),
	}, nil)
}

// ToggleFeatured PUT /products/{id}/feature?adminId=. El servidor invierte el flag.
func (c *Client) ToggleFeatured(ctx context.Context, productID, adminID int64) error {
	return c.do(ctx, call{
		op:     "toggle_featured",
		method: fiber.MethodPut,
		path:   pathf("/products/%d/feature", productID),
		query:  idParam("adminId", adminID),
	}, nil)
}

// DeleteProduct DELETE /products/{id}?userId=. Lo usan el admin y el vendedor dueño del listado.
func (c *Client) DeleteProduct(ctx context.Context, productID, userID int64) error {
	return c.do(ctx, call{
		op:     "delete_product",
		method: fiber.MethodDelete,
		path:   pathf("/products/%d", productID),
		query:  idParam("userId", userID),
	}, nil)
}

func idParam(name string, id int64) url.Values {
	return url.Values{name: []string{strconv.FormatInt(id, 10)}}
}
