package remote

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
)

// ListReviews GET /reviews/product/{productId}.
func (c *Client) ListReviews(ctx context.Context, productID int64) ([]entity.Review, error) {
	var out []reviewWire
	if err := c.do(ctx, call{op: "list_reviews", method: fiber.MethodGet, path: pathf("/reviews/product/%d", productID)}, &out); err != nil {
		return nil, err
	}
	reviews := make([]entity.Review, 0, len(out))
	for _, r := range out {
		reviews = append(reviews, entity.Review{
			ID:        r.ID,
			UserName:  r.UserName,
			Rating:    r.Rating,
			Comment:   r.Comment,
			Verified:  r.Verified,
			CreatedAt: r.CreatedAt.Time,
		})
	}
	return reviews, nil
}

// SubmitReview POST /reviews.
func (c *Client) SubmitReview(ctx context.Context, userID int64, in entity.NewReview) error {
	return c.do(ctx, call{
		op:     "submit_review",
		method: fiber.MethodPost,
		path:   "/reviews",
		body:   newReviewWire{UserID: userID, ProductID: in.ProductID, Rating: in.Rating, Comment: in.Comment},
	}, nil)
}
