package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
)

// OrderItemResponse línea de pedido con los datos congelados al comprar.
type OrderItemResponse struct {
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	CarbonFootprint decimal.Decimal `json:"carbon_footprint"`
}

// OrderResponse pedido histórico.
type OrderResponse struct {
	ID                   int64               `json:"id"`
	Status               string              `json:"status"`
	ShippingAddress      string              `json:"shipping_address"`
	TotalAmount          decimal.Decimal     `json:"total_amount"`
	TotalCarbonFootprint decimal.Decimal     `json:"total_carbon_footprint"`
	CreatedAt            time.Time           `json:"created_at"`
	Items                []OrderItemResponse `json:"items"`
}

// NewOrderResponse convierte la entidad.
func NewOrderResponse(o entity.Order) OrderResponse {
	out := OrderResponse{
		ID:                   o.ID,
		Status:               o.Status,
		ShippingAddress:      o.ShippingAddress,
		TotalAmount:          o.TotalAmount,
		TotalCarbonFootprint: o.TotalCarbonFootprint,
		CreatedAt:            o.CreatedAt,
		Items:                make([]OrderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, OrderItemResponse{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Price:           it.Price,
			Quantity:        it.Quantity,
			CarbonFootprint: it.CarbonFootprint,
		})
	}
	return out
}
