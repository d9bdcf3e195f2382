package entity

import "github.com/shopspring/decimal"

// CartItem línea del carrito remoto.
type CartItem struct {
	ID              int64
	ProductID       int64
	ProductName     string
	Price           decimal.Decimal
	Quantity        int
	ImageURL        string
	Category        string
	CarbonFootprint decimal.Decimal
	EcoRating       string
}

// Cart carrito del usuario; el servidor es la única fuente de verdad.
type Cart struct {
	ID    int64
	Items []CartItem
}

// TotalQuantity suma las cantidades de todas las líneas (CartCount).
// Cantidades negativas del servidor se ignoran para mantener el total no negativo.
func (c *Cart) TotalQuantity() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, it := range c.Items {
		if it.Quantity > 0 {
			total += it.Quantity
		}
	}
	return total
}

// TotalAmount precio * cantidad sumado sobre las líneas.
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	if c == nil {
		return total
	}
	for _, it := range c.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// TotalCarbon huella * cantidad sumada sobre las líneas.
func (c *Cart) TotalCarbon() decimal.Decimal {
	total := decimal.Zero
	if c == nil {
		return total
	}
	for _, it := range c.Items {
		total = total.Add(it.CarbonFootprint.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
