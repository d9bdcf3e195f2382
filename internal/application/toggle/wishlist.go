package toggle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/ecobazaar-storefront/internal/application/cart"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/session"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/repository"
	"github.com/jhoicas/ecobazaar-storefront/pkg/logger"
)

// CartAdder lo que la lista de deseos necesita del carrito para "mover al carrito".
type CartAdder interface {
	AddItem(ctx context.Context, productID int64, quantity int) (int64, error)
}

// Wishlist membresía (usuario, producto) de la lista de deseos de la identidad activa.
type Wishlist struct {
	gw   repository.WishlistGateway
	cart CartAdder
	log  *logger.Logger

	owner   session.Tracker
	members *Membership[int64]

	mu     sync.Mutex
	issued uint64
	items  []entity.WishlistItem
}

// NewWishlist policy controla cuándo se refleja el toggle (por defecto OptimisticAfter).
func NewWishlist(gw repository.WishlistGateway, c CartAdder, policy Policy, log *logger.Logger) *Wishlist {
	return &Wishlist{
		gw:      gw,
		cart:    c,
		log:     log.Component("wishlist"),
		members: NewMembership[int64](policy),
	}
}

// OnIdentityChange vacía la lista; la próxima lectura (Load o Check) la vuelve a pedir.
func (w *Wishlist) OnIdentityChange(_ context.Context, _, next *entity.Identity) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.owner.Reset(next)
	w.members.Reset()
	w.items = nil
}

// Load lee la lista completa. Solo se aplica la carga más reciente de la identidad vigente.
func (w *Wishlist) Load(ctx context.Context) ([]entity.WishlistItem, error) {
	owner, epoch, err := w.owner.Require()
	if err != nil {
		return nil, err
	}
	stamp := w.members.Stamp()
	w.mu.Lock()
	w.issued++
	seq := w.issued
	w.mu.Unlock()

	items, err := w.gw.ListWishlist(ctx, owner.ID)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.owner.Current(epoch) || seq != w.issued {
		return w.snapshotLocked(), nil
	}
	if err != nil {
		return w.snapshotLocked(), fmt.Errorf("cargar lista de deseos: %w", err)
	}
	keys := make([]int64, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.ProductID)
	}
	w.members.Replace(stamp, keys)
	w.items = append([]entity.WishlistItem{}, items...)
	return w.snapshotLocked(), nil
}

// Check consulta al servidor si productID está en la lista y actualiza el estado local.
func (w *Wishlist) Check(ctx context.Context, productID int64) (bool, error) {
	owner, epoch, err := w.owner.Require()
	if err != nil {
		return false, err
	}
	stamp := w.members.Stamp()
	in, err := w.gw.InWishlist(ctx, owner.ID, productID)
	if !w.owner.Current(epoch) {
		return false, nil
	}
	if err != nil {
		return w.members.Contains(productID), err
	}
	w.members.Mark(stamp, productID, in)
	return in, nil
}

// Contains valor local (sin red).
func (w *Wishlist) Contains(productID int64) bool {
	return w.members.Contains(productID)
}

// Items último listado cargado, sin las entradas quitadas desde entonces.
func (w *Wishlist) Items() []entity.WishlistItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

// Toggle agrega o quita productID según el valor local y devuelve el valor resultante.
// Dos llamadas iguales concurrentes generan una sola operación remota. Tras agregar se
// recarga el listado para que Items incluya la entrada nueva; si esa recarga falla el
// toggle sigue siendo exitoso.
func (w *Wishlist) Toggle(ctx context.Context, productID int64) (bool, error) {
	owner, epoch, err := w.owner.Require()
	if err != nil {
		return false, err
	}
	in, err := w.members.Toggle(ctx, productID, w.mutator(owner.ID, epoch))
	if err != nil {
		return in, err
	}
	if in {
		if _, err := w.Load(ctx); err != nil {
			w.log.Warn().Err(err).Int64("user_id", owner.ID).Msg("no se pudo recargar la lista tras agregar")
		}
	} else {
		w.dropItem(epoch, productID)
	}
	w.log.Debug().Int64("user_id", owner.ID).Int64("product_id", productID).Bool("in_wishlist", in).Msg("toggle lista de deseos")
	return in, nil
}

// Remove quita productID (la página de lista de deseos no alterna, solo quita).
func (w *Wishlist) Remove(ctx context.Context, productID int64) error {
	owner, epoch, err := w.owner.Require()
	if err != nil {
		return err
	}
	if _, err := w.members.Apply(ctx, productID, false, w.mutator(owner.ID, epoch)); err != nil {
		return err
	}
	w.dropItem(epoch, productID)
	return nil
}

// MoveToCart agrega una unidad al carrito y luego la quita de la lista.
// Si el carrito rechaza el producto la lista no cambia.
func (w *Wishlist) MoveToCart(ctx context.Context, productID int64) error {
	if _, _, err := w.owner.Require(); err != nil {
		return err
	}
	if _, err := w.cart.AddItem(ctx, productID, 1); err != nil && !errors.Is(err, cart.ErrStaleCount) {
		return err
	}
	return w.Remove(ctx, productID)
}

// mutator no llama al servidor si la identidad cambió desde que se capturó epoch.
func (w *Wishlist) mutator(userID int64, epoch uint64) Mutator[int64] {
	return func(ctx context.Context, productID int64, want bool) error {
		if !w.owner.Current(epoch) {
			return ErrReset
		}
		if want {
			return w.gw.AddToWishlist(ctx, userID, productID)
		}
		return w.gw.RemoveFromWishlist(ctx, userID, productID)
	}
}

func (w *Wishlist) dropItem(epoch uint64, productID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.owner.Current(epoch) {
		return
	}
	kept := w.items[:0]
	for _, it := range w.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	w.items = kept
}

func (w *Wishlist) snapshotLocked() []entity.WishlistItem {
	return append([]entity.WishlistItem{}, w.items...)
}
