package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/ecobazaar-storefront/internal/application/dto"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/repository"
)

// ProductUseCase lecturas públicas del catálogo y gestión de los listados propios del vendedor.
type ProductUseCase struct {
	catalog    repository.CatalogGateway
	moderation repository.ModerationGateway
	ids        IdentitySource
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(catalog repository.CatalogGateway, moderation repository.ModerationGateway, ids IdentitySource) *ProductUseCase {
	return &ProductUseCase{catalog: catalog, moderation: moderation, ids: ids}
}

// Featured productos destacados de la portada.
func (uc *ProductUseCase) Featured(ctx context.Context) ([]dto.ProductResponse, error) {
	ps, err := uc.catalog.FeaturedProducts(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponses(ps), nil
}

// GetByID detalle de un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewProductResponse(*p)
	return &out, nil
}

// ListMine listados del vendedor autenticado.
func (uc *ProductUseCase) ListMine(ctx context.Context) ([]dto.ProductResponse, error) {
	seller, err := uc.ids.RequireRole(entity.RoleSeller)
	if err != nil {
		return nil, err
	}
	ps, err := uc.catalog.SellerProducts(ctx, seller.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponses(ps), nil
}

// DeleteListing elimina un listado propio y devuelve la lista actualizada.
// La lista solo cambia si el servidor confirma la eliminación.
func (uc *ProductUseCase) DeleteListing(ctx context.Context, id int64) ([]dto.ProductResponse, error) {
	seller, err := uc.ids.RequireRole(entity.RoleSeller)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.moderation.DeleteProduct(ctx, id, seller.ID); err != nil {
		return nil, fmt.Errorf("eliminar listado: %w", err)
	}
	return uc.ListMine(ctx)
}
