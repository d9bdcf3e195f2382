package repository

import (
	"context"

	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
)

// AuthGateway autenticación y registro contra el servidor remoto.
type AuthGateway interface {
	Authenticate(ctx context.Context, email, password string) (*entity.Identity, error)
	Register(ctx context.Context, in entity.Registration) error
}

// CartGateway operaciones sobre el carrito remoto.
type CartGateway interface {
	FetchCart(ctx context.Context, userID int64) (*entity.Cart, error)
	AddCartItem(ctx context.Context, userID, productID int64, quantity int) (itemID int64, err error)
	RemoveCartItem(ctx context.Context, userID, itemID int64) error
}

// OrderGateway creación y consulta de pedidos. PlaceOrder vacía el carrito en el servidor.
type OrderGateway interface {
	PlaceOrder(ctx context.Context, userID int64, in entity.CheckoutRequest) (*entity.OrderReceipt, error)
	ListOrders(ctx context.Context, userID int64) ([]entity.Order, error)
}

// CatalogGateway lectura del catálogo público.
type CatalogGateway interface {
	SearchProducts(ctx context.Context, q entity.CatalogQuery, b entity.CatalogBounds) (*entity.ProductPage, error)
	GetProduct(ctx context.Context, productID int64) (*entity.Product, error)
	FeaturedProducts(ctx context.Context) ([]entity.Product, error)
	SellerProducts(ctx context.Context, sellerID int64) ([]entity.Product, error)
}

// WishlistGateway membresía (userID, productID) en la lista de deseos.
type WishlistGateway interface {
	ListWishlist(ctx context.Context, userID int64) ([]entity.WishlistItem, error)
	InWishlist(ctx context.Context, userID, productID int64) (bool, error)
	AddToWishlist(ctx context.Context, userID, productID int64) error
	RemoveFromWishlist(ctx context.Context, userID, productID int64) error
}

// ModerationGateway operaciones de administración y de dueño sobre listados.
type ModerationGateway interface {
	PendingProducts(ctx context.Context) ([]entity.Product, error)
	VerifyProduct(ctx context.Context, productID, adminID int64) error
	ToggleFeatured(ctx context.Context, productID, adminID int64) error
	DeleteProduct(ctx context.Context, productID, userID int64) error
}

// ReviewGateway reseñas de productos.
type ReviewGateway interface {
	ListReviews(ctx context.Context, productID int64) ([]entity.Review, error)
	SubmitReview(ctx context.Context, userID int64, in entity.NewReview) error
}

// RemoteStore frontera completa con el servidor remoto (DIP).
type RemoteStore interface {
	AuthGateway
	CartGateway
	OrderGateway
	CatalogGateway
	WishlistGateway
	ModerationGateway
	ReviewGateway
}
