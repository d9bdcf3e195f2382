package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Formatos JSON del servidor EcoBazaar. Se mantienen separados de las entidades
// para que un cambio de contrato remoto no se propague al dominio.

type identityWire struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

func (w identityWire) toEntity() *entity.Identity {
	return &entity.Identity{ID: w.ID, Email: w.Email, FullName: w.FullName, Role: entity.Role(w.Role)}
}

type registerWire struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type cartItemWire struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"productId"`
	ProductName     string          `json:"productName"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	ImageURL        string          `json:"imageUrl"`
	Category        string          `json:"category"`
	CarbonFootprint decimal.Decimal `json:"carbonFootprint"`
	EcoRating       string          `json:"ecoRating"`
}

type cartWire struct {
	ID    int64          `json:"id"`
	Items []cartItemWire `json:"items"`
}

func (w cartWire) toEntity() *entity.Cart {
	c := &entity.Cart{ID: w.ID, Items: make([]entity.CartItem, 0, len(w.Items))}
	for _, it := range w.Items {
		c.Items = append(c.Items, entity.CartItem{
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
	return c
}

type addItemWire struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type addItemResultWire struct {
	Message string `json:"message"`
	ItemID  int64  `json:"itemId"`
}

type productWire struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	CarbonFootprint decimal.Decimal `json:"carbonFootprint"`
	EcoRating       string          `json:"ecoRating"`
	ImageURL        string          `json:"imageUrl"`
	Quantity        int             `json:"quantity"`
	SellerID        int64           `json:"sellerId"`
	Verified        bool            `json:"verified"`
	Featured        bool            `json:"featured"`
}

func (w productWire) toEntity() entity.Product {
	return entity.Product{
		ID:              w.ID,
		Name:            w.Name,
		Description:     w.Description,
		Category:        w.Category,
		Price:           w.Price,
		CarbonFootprint: w.CarbonFootprint,
		EcoRating:       w.EcoRating,
		ImageURL:        w.ImageURL,
		Quantity:        w.Quantity,
		SellerID:        w.SellerID,
		Verified:        w.Verified,
		Featured:        w.Featured,
	}
}

func toProducts(ws []productWire) []entity.Product {
	out := make([]entity.Product, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.toEntity())
	}
	return out
}

type productPageWire struct {
	Products   []productWire `json:"products"`
	TotalPages int           `json:"totalPages"`
}

type wishlistItemWire struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"productId"`
	ProductName     string          `json:"productName"`
	Price           decimal.Decimal `json:"price"`
	ImageURL        string          `json:"imageUrl"`
	CarbonFootprint decimal.Decimal `json:"carbonFootprint"`
}

type wishlistCheckWire struct {
	InWishlist bool `json:"inWishlist"`
}

type wishlistAddWire struct {
	ProductID int64 `json:"productId"`
}

type checkoutWire struct {
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"paymentMethod"`
}

type orderReceiptWire struct {
	Success bool  `json:"success"`
	OrderID int64 `json:"orderId"`
}

type orderItemWire struct {
	ProductID           int64           `json:"productId"`
	ProductNameSnapshot string          `json:"productNameSnapshot"`
	PriceSnapshot       decimal.Decimal `json:"priceSnapshot"`
	Quantity            int             `json:"quantity"`
	CarbonFootprint     decimal.Decimal `json:"carbonFootprint"`
}

type orderWire struct {
	ID                   int64           `json:"id"`
	Status               string          `json:"status"`
	ShippingAddress      string          `json:"shippingAddress"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	TotalCarbonFootprint decimal.Decimal `json:"totalCarbonFootprint"`
	CreatedAt            serverTime      `json:"createdAt"`
	Items                []orderItemWire `json:"items"`
}

func (w orderWire) toEntity() entity.Order {
	o := entity.Order{
		ID:                   w.ID,
		Status:               w.Status,
		ShippingAddress:      w.ShippingAddress,
		TotalAmount:          w.TotalAmount,
		TotalCarbonFootprint: w.TotalCarbonFootprint,
		CreatedAt:            w.CreatedAt.Time,
		Items:                make([]entity.OrderItem, 0, len(w.Items)),
	}
	for _, it := range w.Items {
		o.Items = append(o.Items, entity.OrderItem{
			ProductID:       it.ProductID,
			ProductName:     it.ProductNameSnapshot,
			Price:           it.PriceSnapshot,
			Quantity:        it.Quantity,
			CarbonFootprint: it.CarbonFootprint,
		})
	}
	return o
}

type reviewWire struct {
	ID        int64      `json:"id"`
	UserName  string     `json:"userName"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	Verified  bool       `json:"verified"`
	CreatedAt serverTime `json:"createdAt"`
}

type newReviewWire struct {
	UserID    int64  `json:"userId"`
	ProductID int64  `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// serverTime acepta las fechas del servidor con o sin zona horaria (LocalDateTime).
type serverTime struct {
	time.Time
}

var serverTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *serverTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fecha inválida: %s", b)
	}
	for _, layout := range serverTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("fecha inválida: %q", s)
}
