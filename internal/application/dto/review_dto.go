package dto

import (
	"time"

	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
)

// CreateReviewRequest entrada para publicar una reseña.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// ReviewResponse reseña publicada.
type ReviewResponse struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Verified  bool      `json:"verified_purchase"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReviewResponses convierte una lista (nunca devuelve nil).
func NewReviewResponses(rs []entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, ReviewResponse{
			ID: r.ID, UserName: r.UserName, Rating: r.Rating, Comment: r.Comment, Verified: r.Verified, CreatedAt: r.CreatedAt,
		})
	}
	return out
}
