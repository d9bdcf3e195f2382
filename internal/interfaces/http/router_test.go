package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecobazaar-storefront/internal/application/cart"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/catalog"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/session"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/toggle"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/usecase"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/repository"
	apphttp "github.com/jhoicas/ecobazaar-storefront/internal/interfaces/http"
	"github.com/jhoicas/ecobazaar-storefront/pkg/logger"
)

var _ repository.RemoteStore = (*fakeRemote)(nil)

// fakeRemote servidor remoto en memoria con un usuario, un vendedor y un admin.
type fakeRemote struct {
	mu        sync.Mutex
	users     map[string]entity.Identity
	cart      []entity.CartItem
	nextItem  int64
	wishlist  map[int64]bool
	products  map[int64]*entity.Product
	lastQuery entity.CatalogQuery
	searches  int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		users: map[string]entity.Identity{
			"u@eco.test":     {ID: 1, Email: "u@eco.test", FullName: "Ana", Role: entity.RoleUser},
			"s@eco.test":     {ID: 2, Email: "s@eco.test", FullName: "Beto", Role: entity.RoleSeller},
			"admin@eco.test": {ID: 3, Email: "admin@eco.test", FullName: "Admin", Role: entity.RoleAdmin},
		},
		cart:     []entity.CartItem{{ID: 10, ProductID: 7, Quantity: 2, Price: decimal.NewFromInt(5)}},
		nextItem: 11,
		wishlist: map[int64]bool{},
		products: map[int64]*entity.Product{
			7: {ID: 7, Name: "jabón", SellerID: 2, Verified: true, Price: decimal.NewFromInt(5)},
			8: {ID: 8, Name: "bolsa", SellerID: 2},
		},
	}
}

func (f *fakeRemote) Authenticate(_ context.Context, email, password string) (*entity.Identity, error) {
	id, ok := f.users[email]
	if !ok || password != "secreto" {
		return nil, &domain.RemoteError{Op: "login", Status: 401, Message: "Invalid credentials", Kind: domain.ErrAuthentication}
	}
	return &id, nil
}

func (f *fakeRemote) Register(context.Context, entity.Registration) error { return nil }

func (f *fakeRemote) FetchCart(context.Context, int64) (*entity.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &entity.Cart{ID: 1, Items: append([]entity.CartItem{}, f.cart...)}, nil
}

func (f *fakeRemote) AddCartItem(_ context.Context, _, productID int64, quantity int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextItem
	f.nextItem++
	f.cart = append(f.cart, entity.CartItem{ID: id, ProductID: productID, Quantity: quantity})
	return id, nil
}

func (f *fakeRemote) RemoveCartItem(_ context.Context, _, itemID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, it := range f.cart {
		if it.ID == itemID {
			f.cart = append(f.cart[:i], f.cart[i+1:]...)
			return nil
		}
	}
	return &domain.RemoteError{Op: "cart", Status: 404, Kind: domain.ErrNotFound}
}

func (f *fakeRemote) PlaceOrder(context.Context, int64, entity.CheckoutRequest) (*entity.OrderReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cart = nil
	return &entity.OrderReceipt{OrderID: 55, Success: true}, nil
}

func (f *fakeRemote) ListOrders(context.Context, int64) ([]entity.Order, error) { return nil, nil }

func (f *fakeRemote) SearchProducts(_ context.Context, q entity.CatalogQuery, _ entity.CatalogBounds) (*entity.ProductPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = q
	f.searches++
	page := &entity.ProductPage{TotalPages: 1}
	for _, id := range []int64{7, 8} {
		if p, ok := f.products[id]; ok {
			page.Products = append(page.Products, *p)
		}
	}
	return page, nil
}

func (f *fakeRemote) GetProduct(_ context.Context, id int64) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, &domain.RemoteError{Op: "product", Status: 404, Kind: domain.ErrNotFound}
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRemote) FeaturedProducts(context.Context) ([]entity.Product, error) { return nil, nil }

func (f *fakeRemote) SellerProducts(context.Context, int64) ([]entity.Product, error) {
	return nil, nil
}

func (f *fakeRemote) ListWishlist(context.Context, int64) ([]entity.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.WishlistItem
	for pid := range f.wishlist {
		out = append(out, entity.WishlistItem{ID: pid, ProductID: pid})
	}
	return out, nil
}

func (f *fakeRemote) InWishlist(_ context.Context, _, productID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wishlist[productID], nil
}

func (f *fakeRemote) AddToWishlist(_ context.Context, _, productID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wishlist[productID] = true
	return nil
}

func (f *fakeRemote) RemoveFromWishlist(_ context.Context, _, productID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.wishlist, productID)
	return nil
}

func (f *fakeRemote) PendingProducts(context.Context) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Product
	for _, p := range f.products {
		if !p.Verified {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRemote) VerifyProduct(_ context.Context, productID, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[productID].Verified = true
	return nil
}

func (f *fakeRemote) ToggleFeatured(_ context.Context, productID, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[productID].Featured = !f.products[productID].Featured
	return nil
}

func (f *fakeRemote) DeleteProduct(_ context.Context, productID, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.products, productID)
	return nil
}

func (f *fakeRemote) ListReviews(context.Context, int64) ([]entity.Review, error) { return nil, nil }

func (f *fakeRemote) SubmitReview(context.Context, int64, entity.NewReview) error { return nil }

// memStorage SessionStorage en memoria.
type memStorage struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStorage) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStorage) Close() error { return nil }

// buildStorefront arma la aplicación completa sobre el servidor falso, igual que main.
func buildStorefront(t *testing.T) (*fiber.App, *fakeRemote, *cart.Synchronizer) {
	t.Helper()
	remote := newFakeRemote()
	log := logger.NewNop()
	store := session.NewStore(remote, &memStorage{data: map[string]string{}}, session.TokenConfig{Secret: "test", Issuer: "test", TTLMinutes: 60}, log)

	syncer := cart.NewSynchronizer(remote, remote, time.Second, log)
	engine := catalog.NewEngine(remote, entity.DefaultCatalogBounds(), time.Second, log)
	wishlist := toggle.NewWishlist(remote, syncer, toggle.OptimisticAfter, log)
	moderation := toggle.NewModeration(remote, remote, toggle.OptimisticAfter, log)
	store.Subscribe(syncer)
	store.Subscribe(engine)
	store.Subscribe(wishlist)
	store.Subscribe(moderation)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Session:    store,
		Cart:       syncer,
		Catalog:    engine,
		Wishlist:   wishlist,
		Moderation: moderation,
		ProductUC:  usecase.NewProductUseCase(remote, remote, store),
		OrderUC:    usecase.NewOrderUseCase(remote, store),
		ReviewUC:   usecase.NewReviewUseCase(remote, store),
		Log:        log,
	})
	return app, remote, syncer
}

// call lanza la petición con cuerpo JSON opcional y decodifica la respuesta en out.
func call(t *testing.T, app *fiber.App, method, path string, body, out interface{}) int {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func login(t *testing.T, app *fiber.App, email string) {
	t.Helper()
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/session", map[string]string{"email": email, "password": "secreto"}, nil))
}

type cartBody struct {
	Count int `json:"count"`
}

type mutationBody struct {
	ItemID     int64 `json:"item_id"`
	OrderID    int64 `json:"order_id"`
	Count      int   `json:"count"`
	CountStale bool  `json:"count_stale"`
}

type errorBody struct {
	Code string `json:"code"`
}

func TestRouter_InvitadoVeCarritoVacio(t *testing.T) {
	app, _, _ := buildStorefront(t)

	var c cartBody
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/cart", nil, &c))
	assert.Zero(t, c.Count)

	var e errorBody
	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodPost, "/api/cart/items", map[string]int64{"product_id": 7}, &e))
	assert.Equal(t, "NO_SESSION", e.Code)
}

func TestRouter_LoginCredencialesInvalidas(t *testing.T) {
	app, _, _ := buildStorefront(t)
	var e errorBody
	status := call(t, app, http.MethodPost, "/api/session", map[string]string{"email": "u@eco.test", "password": "mal"}, &e)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", e.Code)

	var s struct {
		Authenticated bool `json:"authenticated"`
	}
	call(t, app, http.MethodGet, "/api/session", nil, &s)
	assert.False(t, s.Authenticated)
}

func TestRouter_FlujoDeCarrito(t *testing.T) {
	app, remote, syncer := buildStorefront(t)
	login(t, app, "u@eco.test")
	assert.Eventually(t, func() bool { return syncer.Count() == 2 }, time.Second, 5*time.Millisecond)

	var m mutationBody
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/cart/items", map[string]interface{}{"product_id": 8, "quantity": 3}, &m))
	assert.Equal(t, int64(11), m.ItemID)
	assert.Equal(t, 5, m.Count)
	assert.False(t, m.CountStale)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodDelete, "/api/cart/items/11", nil, &m))
	assert.Equal(t, 2, m.Count)

	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/cart/checkout", map[string]string{"address": "Calle 1", "phone": "555"}, &m))
	assert.Equal(t, int64(55), m.OrderID)
	assert.Zero(t, m.Count)
	assert.Empty(t, remote.cart)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodDelete, "/api/session", nil, nil))
	var c cartBody
	call(t, app, http.MethodGet, "/api/cart", nil, &c)
	assert.Zero(t, c.Count)
}

func TestRouter_CatalogoOmiteCentinelas(t *testing.T) {
	app, remote, _ := buildStorefront(t)

	var out struct {
		Products []struct {
			ID int64 `json:"id"`
		} `json:"products"`
		Applied bool   `json:"applied"`
		Seq     uint64 `json:"seq"`
	}
	status := call(t, app, http.MethodGet, "/api/catalog?search=jab&category=All&maxPrice=1000&maxCarbon=40", nil, &out)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, out.Applied)
	assert.Equal(t, uint64(1), out.Seq)
	assert.Len(t, out.Products, 2)

	remote.mu.Lock()
	q := remote.lastQuery
	remote.mu.Unlock()
	params := q.Params(entity.DefaultCatalogBounds())
	assert.Equal(t, "jab", params.Get("search"))
	assert.False(t, params.Has("category"))
	assert.False(t, params.Has("maxPrice"))
	assert.Equal(t, "40", params.Get("maxCarbon"))

	var e errorBody
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodGet, "/api/catalog?maxPrice=-1", nil, &e))
	assert.Equal(t, "VALIDATION", e.Code)
}

func TestRouter_ListaDeDeseos(t *testing.T) {
	app, remote, _ := buildStorefront(t)
	login(t, app, "u@eco.test")

	var st struct {
		ProductID  int64 `json:"product_id"`
		InWishlist bool  `json:"in_wishlist"`
	}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/wishlist/7/toggle", nil, &st))
	assert.True(t, st.InWishlist)
	assert.True(t, remote.wishlist[7])

	var items []map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/wishlist", nil, &items))
	assert.Len(t, items, 1)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/wishlist/7/move", nil, &st))
	assert.False(t, remote.wishlist[7])
}

func TestRouter_AdministracionSoloAdmin(t *testing.T) {
	app, remote, _ := buildStorefront(t)
	login(t, app, "u@eco.test")

	var e errorBody
	assert.Equal(t, http.StatusForbidden, call(t, app, http.MethodGet, "/api/admin/products", nil, &e))
	assert.Equal(t, "FORBIDDEN", e.Code)

	login(t, app, "admin@eco.test")
	var view struct {
		Pending []struct {
			ID int64 `json:"id"`
		} `json:"pending"`
		All []struct {
			ID int64 `json:"id"`
		} `json:"all"`
	}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/admin/products", nil, &view))
	require.Len(t, view.Pending, 1)
	assert.Equal(t, int64(8), view.Pending[0].ID)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPut, "/api/admin/products/8/verify", nil, &view))
	assert.Empty(t, view.Pending)
	assert.True(t, remote.products[8].Verified)

	var f struct {
		Featured bool `json:"featured"`
	}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPut, "/api/admin/products/7/feature", nil, &f))
	assert.True(t, f.Featured)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodDelete, "/api/admin/products/7", nil, &view))
	assert.Len(t, view.All, 1)

	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPut, "/api/admin/products/abc/verify", nil, &e))
}

func TestRouter_ProductoNoEncontrado(t *testing.T) {
	app, _, _ := buildStorefront(t)
	var e errorBody
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/products/99", nil, &e))
	assert.Equal(t, "NOT_FOUND", e.Code)
}

func TestRouter_RequestID(t *testing.T) {
	app, _, _ := buildStorefront(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/session", nil), -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))
}
