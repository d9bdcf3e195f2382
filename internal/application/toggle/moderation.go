package toggle

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/ecobazaar-storefront/internal/application/session"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/repository"
	"github.com/jhoicas/ecobazaar-storefront/pkg/logger"
)

// allListingsPageSize tamaño con el que el panel de administración trae todos los listados.
const allListingsPageSize = 100

// ModerationView estado visible del panel de administración.
type ModerationView struct {
	Pending []entity.Product
	All     []entity.Product
}

// Moderation acciones de administración sobre listados: verificar, destacar y eliminar.
// Verificado, destacado y listado son membresías independientes por producto; las
// listas se derivan de ellas al leer.
type Moderation struct {
	gw      repository.ModerationGateway
	catalog repository.CatalogGateway
	log     *logger.Logger

	owner    session.Tracker
	verified *Membership[int64]
	featured *Membership[int64]
	listed   *Membership[int64]

	mu      sync.Mutex
	issued  uint64
	pending []entity.Product
	all     []entity.Product
}

// NewModeration featurePolicy aplica solo a destacar; verificar y eliminar son siempre OptimisticAfter.
func NewModeration(gw repository.ModerationGateway, catalog repository.CatalogGateway, featurePolicy Policy, log *logger.Logger) *Moderation {
	return &Moderation{
		gw:       gw,
		catalog:  catalog,
		log:      log.Component("moderation"),
		verified: NewMembership[int64](OptimisticAfter),
		featured: NewMembership[int64](featurePolicy),
		listed:   NewMembership[int64](OptimisticAfter),
	}
}

// OnIdentityChange descarta todo; el panel se vuelve a cargar a pedido.
func (m *Moderation) OnIdentityChange(_ context.Context, _, next *entity.Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owner.Reset(next)
	m.verified.Reset()
	m.featured.Reset()
	m.listed.Reset()
	m.pending, m.all = nil, nil
}

// Load trae pendientes y todos los listados. Requiere rol ADMIN.
func (m *Moderation) Load(ctx context.Context) (ModerationView, error) {
	_, epoch, err := m.owner.Require(entity.RoleAdmin)
	if err != nil {
		return ModerationView{}, err
	}
	vs, fs, ls := m.verified.Stamp(), m.featured.Stamp(), m.listed.Stamp()
	m.mu.Lock()
	m.issued++
	seq := m.issued
	m.mu.Unlock()

	pending, err := m.gw.PendingProducts(ctx)
	var page *entity.ProductPage
	if err == nil {
		page, err = m.catalog.SearchProducts(ctx, entity.CatalogQuery{Size: allListingsPageSize}, entity.DefaultCatalogBounds())
		if err != nil {
			err = fmt.Errorf("cargar listados: %w", err)
		}
	} else {
		err = fmt.Errorf("cargar pendientes: %w", err)
	}

	m.mu.Lock()
	// Una carga superada o de otra sesión no se aplica ni reporta su error.
	if !m.owner.Current(epoch) || seq != m.issued {
		m.mu.Unlock()
		return m.View(), nil
	}
	if err != nil {
		m.mu.Unlock()
		return m.View(), err
	}
	if page == nil {
		page = &entity.ProductPage{}
	}
	m.pending = append([]entity.Product{}, pending...)
	m.all = append([]entity.Product{}, page.Products...)
	var verified, featured, listed []int64
	for _, p := range append(append([]entity.Product{}, pending...), page.Products...) {
		listed = append(listed, p.ID)
		if p.Verified {
			verified = append(verified, p.ID)
		}
		if p.Featured {
			featured = append(featured, p.ID)
		}
	}
	m.verified.Replace(vs, verified)
	m.featured.Replace(fs, featured)
	m.listed.Replace(ls, listed)
	m.mu.Unlock()
	return m.View(), nil
}

// View listas visibles con los flags tomados de las membresías.
func (m *Moderation) View() ModerationView {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := ModerationView{Pending: []entity.Product{}, All: []entity.Product{}}
	for _, p := range m.pending {
		if m.listed.Contains(p.ID) && !m.verified.Contains(p.ID) {
			v.Pending = append(v.Pending, m.decorate(p))
		}
	}
	for _, p := range m.all {
		if m.listed.Contains(p.ID) {
			v.All = append(v.All, m.decorate(p))
		}
	}
	return v
}

// Verify aprueba un listado pendiente. Solo tras la confirmación sale de pendientes.
func (m *Moderation) Verify(ctx context.Context, productID int64) error {
	admin, epoch, err := m.owner.Require(entity.RoleAdmin)
	if err != nil {
		return err
	}
	_, err = m.verified.Apply(ctx, productID, true, m.guard(epoch, func(ctx context.Context, id int64, _ bool) error {
		return m.gw.VerifyProduct(ctx, id, admin.ID)
	}))
	if err == nil {
		m.log.Info().Int64("admin_id", admin.ID).Int64("product_id", productID).Msg("producto verificado")
	}
	return err
}

// ToggleFeatured alterna el destacado y devuelve el valor resultante.
func (m *Moderation) ToggleFeatured(ctx context.Context, productID int64) (bool, error) {
	admin, epoch, err := m.owner.Require(entity.RoleAdmin)
	if err != nil {
		return false, err
	}
	return m.featured.Toggle(ctx, productID, m.guard(epoch, func(ctx context.Context, id int64, _ bool) error {
		return m.gw.ToggleFeatured(ctx, id, admin.ID)
	}))
}

// Delete elimina el listado; sale de ambas listas solo tras la confirmación.
func (m *Moderation) Delete(ctx context.Context, productID int64) error {
	admin, epoch, err := m.owner.Require(entity.RoleAdmin)
	if err != nil {
		return err
	}
	_, err = m.listed.Apply(ctx, productID, false, m.guard(epoch, func(ctx context.Context, id int64, _ bool) error {
		return m.gw.DeleteProduct(ctx, id, admin.ID)
	}))
	if err == nil {
		m.log.Info().Int64("admin_id", admin.ID).Int64("product_id", productID).Msg("listado eliminado")
	}
	return err
}

func (m *Moderation) guard(epoch uint64, fn Mutator[int64]) Mutator[int64] {
	return func(ctx context.Context, id int64, want bool) error {
		if !m.owner.Current(epoch) {
			return ErrReset
		}
		return fn(ctx, id, want)
	}
}

func (m *Moderation) decorate(p entity.Product) entity.Product {
	p.Verified = m.verified.Contains(p.ID)
	p.Featured = m.featured.Contains(p.ID)
	return p
}
