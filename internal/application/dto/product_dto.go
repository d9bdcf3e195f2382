package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
)

// CatalogQueryRequest filtros del catálogo recibidos por query string.
// MaxPrice y MaxCarbon vacíos equivalen a "sin tope".
type CatalogQueryRequest struct {
	Search    string `query:"search"`
	Category  string `query:"category"`
	SortBy    string `query:"sortBy"`
	MaxPrice  string `query:"maxPrice"`
	MaxCarbon string `query:"maxCarbon"`
	Page      int    `query:"page"`
	Size      int    `query:"size"`
}

// ToQuery valida los números y arma la consulta de dominio.
func (r CatalogQueryRequest) ToQuery() (entity.CatalogQuery, error) {
	q := entity.CatalogQuery{Search: r.Search, Category: r.Category, SortKey: r.SortBy, Page: r.Page, Size: r.Size}
	var err error
	if q.MaxPrice, err = parseNullDecimal(r.MaxPrice); err != nil {
		return q, err
	}
	if q.MaxCarbon, err = parseNullDecimal(r.MaxCarbon); err != nil {
		return q, err
	}
	return q, nil
}

func parseNullDecimal(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	CarbonFootprint decimal.Decimal `json:"carbon_footprint"`
	EcoRating       string          `json:"eco_rating"`
	ImageURL        string          `json:"image_url"`
	Quantity        int             `json:"quantity"`
	SellerID        int64           `json:"seller_id"`
	Verified        bool            `json:"verified"`
	Featured        bool            `json:"featured"`
}

// ProductListResponse página del catálogo. Applied=false: la respuesta quedó obsoleta
// y Products muestra los resultados vigentes.
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	TotalPages int               `json:"total_pages"`
	Seq        uint64            `json:"seq,omitempty"`
	Applied    bool              `json:"applied"`
}

// CatalogBoundsResponse topes de los deslizadores de filtro.
type CatalogBoundsResponse struct {
	MaxPrice    decimal.Decimal `json:"max_price"`
	MaxCarbon   decimal.Decimal `json:"max_carbon"`
	DefaultSort string          `json:"default_sort"`
}

// NewProductResponse convierte la entidad.
func NewProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		Price:           p.Price,
		CarbonFootprint: p.CarbonFootprint,
		EcoRating:       p.EcoRating,
		ImageURL:        p.ImageURL,
		Quantity:        p.Quantity,
		SellerID:        p.SellerID,
		Verified:        p.Verified,
		Featured:        p.Featured,
	}
}

// NewProductResponses convierte una lista (nunca devuelve nil).
func NewProductResponses(ps []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProductResponse(p))
	}
	return out
}

// ModerationResponse panel de administración.
type ModerationResponse struct {
	Pending []ProductResponse `json:"pending"`
	All     []ProductResponse `json:"all"`
}

// FeaturedResponse resultado de alternar el destacado.
type FeaturedResponse struct {
	ProductID int64 `json:"product_id"`
	Featured  bool  `json:"featured"`
}
