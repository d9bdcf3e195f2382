package entity

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryAll valor de categoría que significa "sin filtro".
const CategoryAll = "All"

// Claves de orden conocidas; el servidor es quien ordena, el cliente solo las reenvía.
const (
	SortNewest     = "newest"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortCarbonAsc  = "carbon_asc"
	SortCarbonDesc = "carbon_desc"
)

// CatalogBounds topes de los filtros deslizantes. Un valor igual o mayor al tope
// equivale a "sin restricción" y no se envía.
type CatalogBounds struct {
	MaxPrice    decimal.Decimal
	MaxCarbon   decimal.Decimal
	DefaultSort string
}

// DefaultCatalogBounds topes usados por la tienda (precio 1000, carbono 100).
func DefaultCatalogBounds() CatalogBounds {
	return CatalogBounds{
		MaxPrice:    decimal.NewFromInt(1000),
		MaxCarbon:   decimal.NewFromInt(100),
		DefaultSort: SortNewest,
	}
}

// CatalogQuery parámetros de una búsqueda. Inmutable por ejecución.
// MaxPrice y MaxCarbon sin Valid se interpretan como "sin tope".
type CatalogQuery struct {
	Search    string
	Category  string
	SortKey   string
	MaxPrice  decimal.NullDecimal
	MaxCarbon decimal.NullDecimal
	Page      int
	Size      int
}

// Validate rechaza topes negativos y paginación negativa.
func (q CatalogQuery) Validate() bool {
	if q.MaxPrice.Valid && q.MaxPrice.Decimal.IsNegative() {
		return false
	}
	if q.MaxCarbon.Valid && q.MaxCarbon.Decimal.IsNegative() {
		return false
	}
	return q.Page >= 0 && q.Size >= 0
}

// Params traduce la consulta al vocabulario de filtros del servidor.
// Los valores en su centinela se omiten para que aplique el default remoto.
func (q CatalogQuery) Params(b CatalogBounds) url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	if c := strings.TrimSpace(q.Category); c != "" && c != CategoryAll {
		v.Set("category", c)
	}
	if q.MaxPrice.Valid && q.MaxPrice.Decimal.LessThan(b.MaxPrice) {
		v.Set("maxPrice", q.MaxPrice.Decimal.String())
	}
	if q.MaxCarbon.Valid && q.MaxCarbon.Decimal.LessThan(b.MaxCarbon) {
		v.Set("maxCarbon", q.MaxCarbon.Decimal.String())
	}
	sort := strings.TrimSpace(q.SortKey)
	if sort == "" {
		sort = b.DefaultSort
	}
	if sort != "" {
		v.Set("sortBy", sort)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	return v
}
