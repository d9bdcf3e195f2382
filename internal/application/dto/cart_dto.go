package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
)

// AddCartItemRequest entrada para agregar al carrito.
type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"min=1"`
}

// CheckoutRequest datos de envío; payment_method vacío usa "Credit Card".
type CheckoutRequest struct {
	Address       string `json:"address" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	PaymentMethod string `json:"payment_method"`
}

// ToEntity convierte la entrada al tipo de dominio.
func (r CheckoutRequest) ToEntity() entity.CheckoutRequest {
	return entity.CheckoutRequest{Address: r.Address, Phone: r.Phone, PaymentMethod: r.PaymentMethod}
}

// CartItemResponse línea del carrito.
type CartItemResponse struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	ImageURL        string          `json:"image_url"`
	Category        string          `json:"category"`
	CarbonFootprint decimal.Decimal `json:"carbon_footprint"`
	EcoRating       string          `json:"eco_rating"`
}

// CartResponse contador y contenido del carrito.
type CartResponse struct {
	Count       int                `json:"count"`
	Items       []CartItemResponse `json:"items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	TotalCarbon decimal.Decimal    `json:"total_carbon"`
}

// NewCartResponse arma la respuesta desde los datos del sincronizador.
func NewCartResponse(count int, items []entity.CartItem, amount, carbon decimal.Decimal) CartResponse {
	out := CartResponse{Count: count, Items: make([]CartItemResponse, 0, len(items)), TotalAmount: amount, TotalCarbon: carbon}
	for _, it := range items {
		out.Items = append(out.Items, CartItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Price:           it.Price,
			Quantity:        it.Quantity,
			ImageURL:        it.ImageURL,
			Category:        it.Category,
			CarbonFootprint: it.CarbonFootprint,
			EcoRating:       it.EcoRating,
		})
	}
	return out
}

// CartMutationResponse resultado de una mutación. CountStale indica que la mutación
// se aplicó pero el contador no pudo refrescarse.
type CartMutationResponse struct {
	ItemID     int64 `json:"item_id,omitempty"`
	OrderID    int64 `json:"order_id,omitempty"`
	Count      int   `json:"count"`
	CountStale bool  `json:"count_stale"`
}
