package entity

import "github.com/shopspring/decimal"

// Product listado del catálogo tal como lo devuelve el servidor.
// Precio y huella de carbono se calculan en el servidor; aquí solo se transportan.
type Product struct {
	ID              int64
	Name            string
	Description     string
	Category        string
	Price           decimal.Decimal
	CarbonFootprint decimal.Decimal // kg CO2e por unidad
	EcoRating       string
	ImageURL        string
	Quantity        int // stock publicado por el vendedor
	SellerID        int64
	Verified        bool
	Featured        bool
}

// ProductPage página de resultados de búsqueda.
type ProductPage struct {
	Products   []Product
	TotalPages int
}
