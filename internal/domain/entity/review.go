package entity

import "time"

// Review reseña de un producto.
type Review struct {
	ID        int64
	UserName  string
	Rating    int
	Comment   string
	Verified  bool // compra verificada
	CreatedAt time.Time
}

// NewReview entrada para publicar una reseña.
type NewReview struct {
	ProductID int64
	Rating    int
	Comment   string
}
