package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/ecobazaar-storefront/internal/domain"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/repository"
	"github.com/jhoicas/ecobazaar-storefront/pkg/logger"
)

// Outcome resultado de una ejecución. Applied=false indica que la respuesta quedó
// obsoleta (hubo una consulta más nueva o un cambio de identidad) y se descartó;
// Page refleja siempre los resultados visibles tras la llamada.
type Outcome struct {
	Seq     uint64
	Applied bool
	Page    entity.ProductPage
}

// Engine ejecuta búsquedas del catálogo. Los resultados visibles corresponden siempre
// a la consulta emitida más recientemente, sin importar el orden de llegada.
type Engine struct {
	catalog repository.CatalogGateway
	bounds  entity.CatalogBounds
	timeout time.Duration
	log     *logger.Logger

	mu       sync.Mutex
	epoch    uint64
	issued   uint64
	query    entity.CatalogQuery
	hasQuery bool
	page     entity.ProductPage
}

// NewEngine bounds define los centinelas de precio y carbono.
func NewEngine(catalog repository.CatalogGateway, bounds entity.CatalogBounds, timeout time.Duration, log *logger.Logger) *Engine {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Engine{catalog: catalog, bounds: bounds, timeout: timeout, log: log.Component("catalog")}
}

// Bounds topes configurados (para que la presentación dibuje los deslizadores).
func (e *Engine) Bounds() entity.CatalogBounds { return e.bounds }

// Execute emite q con un número de secuencia nuevo. Una respuesta obsoleta, exitosa o no,
// se descarta en silencio. Si falla la más reciente se conservan los resultados previos.
func (e *Engine) Execute(ctx context.Context, q entity.CatalogQuery) (Outcome, error) {
	if !q.Validate() {
		return Outcome{Page: e.Results()}, fmt.Errorf("filtros de catálogo inválidos: %w", domain.ErrInvalidInput)
	}

	e.mu.Lock()
	e.issued++
	epoch, seq := e.epoch, e.issued
	e.query = q
	e.hasQuery = true
	e.mu.Unlock()

	page, err := e.catalog.SearchProducts(ctx, q, e.bounds)

	e.mu.Lock()
	defer e.mu.Unlock()
	if epoch != e.epoch || seq != e.issued {
		e.log.Debug().Uint64("seq", seq).Uint64("latest", e.issued).Msg("resultado de búsqueda obsoleto descartado")
		return Outcome{Seq: seq, Page: copyPage(e.page)}, nil
	}
	if err != nil {
		return Outcome{Seq: seq, Page: copyPage(e.page)}, fmt.Errorf("buscar productos: %w", err)
	}
	if page == nil {
		page = &entity.ProductPage{}
	}
	e.page = copyPage(*page)
	return Outcome{Seq: seq, Applied: true, Page: copyPage(e.page)}, nil
}

// Reload vuelve a ejecutar la última consulta emitida (o la consulta vacía si no hubo ninguna).
func (e *Engine) Reload(ctx context.Context) (Outcome, error) {
	return e.Execute(ctx, e.Query())
}

// Query última consulta emitida.
func (e *Engine) Query() entity.CatalogQuery {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.query
}

// Results resultados visibles.
func (e *Engine) Results() entity.ProductPage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyPage(e.page)
}

// OnIdentityChange descarta las búsquedas en curso y vuelve a ejecutar la última consulta.
func (e *Engine) OnIdentityChange(_ context.Context, _, _ *entity.Identity) {
	e.mu.Lock()
	e.epoch++
	e.page = entity.ProductPage{}
	reload := e.hasQuery
	e.mu.Unlock()

	if !reload {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()
		if _, err := e.Reload(ctx); err != nil {
			e.log.Warn().Err(err).Msg("recarga del catálogo fallida")
		}
	}()
}

func copyPage(p entity.ProductPage) entity.ProductPage {
	return entity.ProductPage{
		Products:   append([]entity.Product{}, p.Products...),
		TotalPages: p.TotalPages,
	}
}
