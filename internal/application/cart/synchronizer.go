package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecobazaar-storefront/internal/domain"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/repository"
	"github.com/jhoicas/ecobazaar-storefront/pkg/logger"
)

// ErrStaleCount la mutación se aplicó en el servidor pero el refresco posterior falló;
// el contador local quedó con el valor anterior.
var ErrStaleCount = errors.New("la operación se aplicó pero el contador del carrito no se pudo actualizar")

// Snapshot vista local del carrito del dueño actual.
type Snapshot struct {
	Count       int
	Items       []entity.CartItem
	TotalAmount decimal.Decimal
	TotalCarbon decimal.Decimal
}

// Synchronizer mantiene el contador del carrito igual al del servidor. Nunca calcula
// el valor localmente: toda mutación exitosa dispara un refresco.
//
// Cada refresco lleva (época, secuencia). Solo se aplica la respuesta del último
// refresco emitido y solo si la identidad no cambió mientras tanto.
type Synchronizer struct {
	carts   repository.CartGateway
	orders  repository.OrderGateway
	timeout time.Duration
	log     *logger.Logger

	mu     sync.Mutex
	owner  *entity.Identity
	epoch  uint64
	issued uint64
	cart   *entity.Cart
}

// NewSynchronizer timeout acota los refrescos lanzados en segundo plano tras un cambio de identidad.
func NewSynchronizer(carts repository.CartGateway, orders repository.OrderGateway, timeout time.Duration, log *logger.Logger) *Synchronizer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Synchronizer{carts: carts, orders: orders, timeout: timeout, log: log.Component("cart")}
}

// Count CartCount actual; 0 sin sesión.
func (s *Synchronizer) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalQuantity()
}

// Snapshot copia del último carrito aplicado.
func (s *Synchronizer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Count:       s.cart.TotalQuantity(),
		TotalAmount: s.cart.TotalAmount(),
		TotalCarbon: s.cart.TotalCarbon(),
		Items:       []entity.CartItem{},
	}
	if s.cart != nil {
		snap.Items = append(snap.Items, s.cart.Items...)
	}
	return snap
}

// OnIdentityChange invalida de inmediato (contador 0, sin red) y, si hay nueva identidad,
// lanza el refresco en segundo plano.
func (s *Synchronizer) OnIdentityChange(_ context.Context, _, next *entity.Identity) {
	s.mu.Lock()
	s.resetLocked(next)
	s.mu.Unlock()

	if next == nil {
		return
	}
	go func(owner entity.Identity) {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.follow(ctx, &owner); err != nil {
			s.log.Warn().Err(err).Int64("user_id", owner.ID).Msg("refresco inicial del carrito fallido")
		}
	}(*next)
}

// Refresh vuelve a leer el carrito de identity. Solo OnIdentityChange cambia el dueño:
// si identity no es el dueño actual (por ejemplo, una petición iniciada antes de un
// logout) no se consulta al servidor y se devuelve nil. Con identity nil el contador
// queda en 0 y se descartan los refrescos en curso, sin tocar al dueño.
// Un refresco superado por otro más nuevo, o por un cambio de identidad, devuelve nil
// sin tocar el estado. Si falla el más reciente se conserva el valor previo.
func (s *Synchronizer) Refresh(ctx context.Context, identity *entity.Identity) error {
	if identity == nil {
		s.mu.Lock()
		s.issued++
		s.cart = nil
		s.mu.Unlock()
		return nil
	}
	return s.follow(ctx, identity)
}

// follow refresca solo si identity sigue siendo el dueño; nunca lo adopta.
func (s *Synchronizer) follow(ctx context.Context, identity *entity.Identity) error {
	s.mu.Lock()
	if !identity.SameAs(s.owner) {
		s.mu.Unlock()
		s.log.Debug().Int64("user_id", identity.ID).Msg("refresco de una identidad que ya no es la activa ignorado")
		return nil
	}
	s.issued++
	epoch, seq := s.epoch, s.issued
	s.mu.Unlock()

	c, err := s.carts.FetchCart(ctx, identity.ID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || seq != s.issued {
		s.log.Debug().Uint64("seq", seq).Uint64("latest", s.issued).Msg("respuesta de carrito obsoleta descartada")
		return nil
	}
	if err != nil {
		return fmt.Errorf("refrescar carrito: %w", err)
	}
	if c == nil {
		c = &entity.Cart{}
	}
	s.cart = c
	return nil
}

// AddItem agrega productID y refresca. Si el refresco falla la mutación sigue siendo exitosa:
// se devuelve el itemID junto con un error que envuelve ErrStaleCount.
func (s *Synchronizer) AddItem(ctx context.Context, productID int64, quantity int) (int64, error) {
	if productID <= 0 || quantity <= 0 {
		return 0, fmt.Errorf("producto y cantidad deben ser positivos: %w", domain.ErrInvalidInput)
	}
	owner, err := s.requireOwner()
	if err != nil {
		return 0, err
	}
	itemID, err := s.carts.AddCartItem(ctx, owner.ID, productID, quantity)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("user_id", owner.ID).Int64("product_id", productID).Int("quantity", quantity).Msg("item agregado")
	return itemID, s.afterMutation(ctx, owner)
}

// RemoveItem elimina la línea itemID y refresca (misma semántica que AddItem).
func (s *Synchronizer) RemoveItem(ctx context.Context, itemID int64) error {
	if itemID <= 0 {
		return fmt.Errorf("item inválido: %w", domain.ErrInvalidInput)
	}
	owner, err := s.requireOwner()
	if err != nil {
		return err
	}
	if err := s.carts.RemoveCartItem(ctx, owner.ID, itemID); err != nil {
		return err
	}
	return s.afterMutation(ctx, owner)
}

// PlaceOrder confirma el carrito como pedido. El servidor lo vacía; el refresco lo refleja.
func (s *Synchronizer) PlaceOrder(ctx context.Context, in entity.CheckoutRequest) (*entity.OrderReceipt, error) {
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Address == "" || in.Phone == "" {
		return nil, fmt.Errorf("dirección y teléfono son requeridos: %w", domain.ErrInvalidInput)
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = entity.PaymentCreditCard
	}
	owner, err := s.requireOwner()
	if err != nil {
		return nil, err
	}
	if s.Count() == 0 {
		return nil, fmt.Errorf("el carrito está vacío: %w", domain.ErrInvalidInput)
	}
	receipt, err := s.orders.PlaceOrder(ctx, owner.ID, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", owner.ID).Int64("order_id", receipt.OrderID).Msg("pedido creado")
	return receipt, s.afterMutation(ctx, owner)
}

func (s *Synchronizer) afterMutation(ctx context.Context, owner *entity.Identity) error {
	if err := s.follow(ctx, owner); err != nil {
		s.log.Warn().Err(err).Int64("user_id", owner.ID).Msg("contador desactualizado tras mutación")
		return fmt.Errorf("%w: %w", ErrStaleCount, err)
	}
	return nil
}

func (s *Synchronizer) requireOwner() (*entity.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner == nil {
		return nil, domain.ErrNoIdentity
	}
	o := *s.owner
	return &o, nil
}

func (s *Synchronizer) resetLocked(next *entity.Identity) {
	s.epoch++
	s.issued = 0
	s.cart = nil
	s.owner = nil
	if next != nil {
		o := *next
		s.owner = &o
	}
}
