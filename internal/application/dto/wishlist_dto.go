package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
)

// WishlistItemResponse producto guardado.
type WishlistItemResponse struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Price           decimal.Decimal `json:"price"`
	ImageURL        string          `json:"image_url"`
	CarbonFootprint decimal.Decimal `json:"carbon_footprint"`
}

// WishlistStateResponse membresía de un producto tras consultar o alternar.
type WishlistStateResponse struct {
	ProductID  int64 `json:"product_id"`
	InWishlist bool  `json:"in_wishlist"`
}

// NewWishlistResponses convierte una lista (nunca devuelve nil).
func NewWishlistResponses(items []entity.WishlistItem) []WishlistItemResponse {
	out := make([]WishlistItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, WishlistItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Price:           it.Price,
			ImageURL:        it.ImageURL,
			CarbonFootprint: it.CarbonFootprint,
		})
	}
	return out
}
