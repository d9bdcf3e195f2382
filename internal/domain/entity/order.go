package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentCreditCard método de pago por defecto del checkout.
const PaymentCreditCard = "Credit Card"

// CheckoutRequest datos de envío y pago para confirmar el carrito como pedido.
type CheckoutRequest struct {
	Address       string
	Phone         string
	PaymentMethod string
}

// OrderReceipt confirmación del pedido creado.
type OrderReceipt struct {
	OrderID int64
	Success bool
}

// OrderItem línea de un pedido con los datos congelados al momento de la compra.
type OrderItem struct {
	ProductID       int64
	ProductName     string
	Price           decimal.Decimal
	Quantity        int
	CarbonFootprint decimal.Decimal
}

// Order pedido histórico del usuario.
type Order struct {
	ID                   int64
	Status               string
	ShippingAddress      string
	TotalAmount          decimal.Decimal
	TotalCarbonFootprint decimal.Decimal
	CreatedAt            time.Time
	Items                []OrderItem
}
