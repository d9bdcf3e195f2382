package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecobazaar-storefront/internal/application/cart"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/catalog"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/session"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/toggle"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/usecase"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
	"github.com/jhoicas/ecobazaar-storefront/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session    *session.Store
	Cart       *cart.Synchronizer
	Catalog    *catalog.Engine
	Wishlist   *toggle.Wishlist
	Moderation *toggle.Moderation
	ProductUC  *usecase.ProductUseCase
	OrderUC    *usecase.OrderUseCase
	ReviewUC   *usecase.ReviewUseCase
	Log        *logger.Logger
}

// Router registra las rutas de la API local.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Log), SessionMiddleware(deps.Session))

	// Sesión (público)
	sessionHandler := NewSessionHandler(deps.Session)
	api.Get("/session", sessionHandler.Current)
	api.Post("/session", sessionHandler.Login)
	api.Delete("/session", sessionHandler.Logout)
	api.Post("/session/register", sessionHandler.Register)

	// Catálogo y productos (público; publicar reseñas requiere sesión)
	productHandler := NewProductHandler(deps.Catalog, deps.ProductUC, deps.ReviewUC)
	api.Get("/catalog", productHandler.Search)
	api.Get("/catalog/results", productHandler.Results)
	api.Get("/catalog/bounds", productHandler.Bounds)
	api.Get("/products/featured", productHandler.Featured)
	api.Get("/products/:id", productHandler.GetByID)
	api.Get("/products/:id/reviews", productHandler.ListReviews)
	api.Post("/products/:id/reviews", RequireIdentity(), productHandler.SubmitReview)

	// Carrito: el contador es público (0 para invitados), las mutaciones no
	cartHandler := NewCartHandler(deps.Cart)
	api.Get("/cart", cartHandler.Get)
	api.Post("/cart/items", RequireIdentity(), cartHandler.AddItem)
	api.Delete("/cart/items/:id", RequireIdentity(), cartHandler.RemoveItem)
	api.Post("/cart/checkout", RequireIdentity(), cartHandler.Checkout)

	// Pedidos
	orderHandler := NewOrderHandler(deps.OrderUC)
	api.Get("/orders", RequireIdentity(), orderHandler.List)

	// Lista de deseos
	wishlist := api.Group("/wishlist", RequireIdentity())
	wishlistHandler := NewWishlistHandler(deps.Wishlist)
	wishlist.Get("/", wishlistHandler.List)
	wishlist.Get("/:productId", wishlistHandler.Check)
	wishlist.Post("/:productId/toggle", wishlistHandler.Toggle)
	wishlist.Post("/:productId/move", wishlistHandler.MoveToCart)
	wishlist.Delete("/:productId", wishlistHandler.Remove)

	// Vendedor
	seller := api.Group("/seller", RequireRole(entity.RoleSeller))
	seller.Get("/products", productHandler.ListMine)
	seller.Delete("/products/:id", productHandler.DeleteMine)

	// Administración
	admin := api.Group("/admin/products", RequireRole(entity.RoleAdmin))
	adminHandler := NewAdminHandler(deps.Moderation)
	admin.Get("/", adminHandler.List)
	admin.Put("/:id/verify", adminHandler.Verify)
	admin.Put("/:id/feature", adminHandler.Feature)
	admin.Delete("/:id", adminHandler.Delete)
}
