package usecase

import (
	"context"

	"github.com/jhoicas/ecobazaar-storefront/internal/application/dto"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/repository"
)

// OrderUseCase historial de pedidos de la identidad activa.
type OrderUseCase struct {
	orders repository.OrderGateway
	ids    IdentitySource
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orders repository.OrderGateway, ids IdentitySource) *OrderUseCase {
	return &OrderUseCase{orders: orders, ids: ids}
}

// List pedidos del usuario, en el orden que entrega el servidor.
func (uc *OrderUseCase) List(ctx context.Context) ([]dto.OrderResponse, error) {
	user, err := uc.ids.RequireRole()
	if err != nil {
		return nil, err
	}
	os, err := uc.orders.ListOrders(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(os))
	for _, o := range os {
		out = append(out, dto.NewOrderResponse(o))
	}
	return out, nil
}
