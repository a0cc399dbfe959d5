package response

import (
	"time"

	"villa-rental/internal/data/entity"
)

type ReviewResponse struct {
	ID        string    `json:"id"`
	VillaID   string    `json:"villa_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FavoriteResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	VillaID   string    `json:"villa_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Helper converter
func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		VillaID:   review.VillaID.String(),
		UserID:    review.UserID.String(),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

func FavoriteToResponse(favorite *entity.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:        favorite.ID.String(),
		UserID:    favorite.UserID.String(),
		VillaID:   favorite.VillaID.String(),
		CreatedAt: favorite.CreatedAt,
	}
}
