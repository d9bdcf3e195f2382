package entity

import "github.com/shopspring/decimal"

// WishlistItem producto guardado en la lista de deseos.
type WishlistItem struct {
	ID              int64
	ProductID       int64
	ProductName     string
	Price           decimal.Decimal
	ImageURL        string
	CarbonFootprint decimal.Decimal
}
