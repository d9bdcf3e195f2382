package remote

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
)

// SearchProducts GET /products?search&category&maxPrice&maxCarbon&sortBy.
// Sin coincidencias devuelve una página vacía, no un error.
func (c *Client) SearchProducts(ctx context.Context, q entity.CatalogQuery, b entity.CatalogBounds) (*entity.ProductPage, error) {
	var out productPageWire
	if err := c.do(ctx, call{op: "search_products", method: fiber.MethodGet, path: "/products", query: q.Params(b)}, &out); err != nil {
		return nil, err
	}
	return &entity.ProductPage{Products: toProducts(out.Products), TotalPages: out.TotalPages}, nil
}

// GetProduct GET /products/{id}.
func (c *Client) GetProduct(ctx context.Context, productID int64) (*entity.Product, error) {
	var out productWire
	if err := c.do(ctx, call{op: "get_product", method: fiber.MethodGet, path: pathf("/products/%d", productID)}, &out); err != nil {
		return nil, err
	}
	p := out.toEntity()
	return &p, nil
}

// FeaturedProducts GET /products/featured.
func (c *Client) FeaturedProducts(ctx context.Context) ([]entity.Product, error) {
	var out []productWire
	if err := c.do(ctx, call{op: "featured_products", method: fiber.MethodGet, path: "/products/featured"}, &out); err != nil {
		return nil, err
	}
	return toProducts(out), nil
}

// SellerProducts GET /products/seller/{sellerId}.
func (c *Client) SellerProducts(ctx context.Context, sellerID int64) ([]entity.Product, error) {
	var out []productWire
	if err := c.do(ctx, call{op: "seller_products", method: fiber.MethodGet, path: pathf("/products/seller/%d", sellerID)}, &out); err != nil {
		return nil, err
	}
	return toProducts(out), nil
}
