package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/ecobazaar-storefront/internal/application/dto"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/repository"
)

// ReviewUseCase reseñas de productos.
type ReviewUseCase struct {
	reviews repository.ReviewGateway
	ids     IdentitySource
}

// NewReviewUseCase construye el caso de uso.
func NewReviewUseCase(reviews repository.ReviewGateway, ids IdentitySource) *ReviewUseCase {
	return &ReviewUseCase{reviews: reviews, ids: ids}
}

// List reseñas públicas del producto.
func (uc *ReviewUseCase) List(ctx context.Context, productID int64) ([]dto.ReviewResponse, error) {
	rs, err := uc.reviews.ListReviews(ctx, productID)
	if err != nil {
		return nil, err
	}
	return dto.NewReviewResponses(rs), nil
}

// Submit publica la reseña y devuelve la lista releída del servidor.
func (uc *ReviewUseCase) Submit(ctx context.Context, productID int64, in dto.CreateReviewRequest) ([]dto.ReviewResponse, error) {
	user, err := uc.ids.RequireRole()
	if err != nil {
		return nil, err
	}
	comment := strings.TrimSpace(in.Comment)
	if productID <= 0 || in.Rating < 1 || in.Rating > 5 || comment == "" {
		return nil, fmt.Errorf("calificación 1-5 y comentario requeridos: %w", domain.ErrInvalidInput)
	}
	if err := uc.reviews.SubmitReview(ctx, user.ID, entity.NewReview{ProductID: productID, Rating: in.Rating, Comment: comment}); err != nil {
		return nil, err
	}
	return uc.List(ctx, productID)
}
