package response

import (
	"time"

	"villa-rental/internal/data/entity"
)

type VillaResponse struct {
	ID            string             `json:"id"`
	OwnerID       string             `json:"owner_id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Category      string             `json:"category"`
	Location      string             `json:"location"`
	Price         float64            `json:"price"`
	Status        entity.VillaStatus `json:"status"`
	PhotoIDs      []string           `json:"photo_ids"`
	ReviewIDs     []string           `json:"review_ids"`
	AverageRating float64            `json:"average_rating"`
	CommentCount  int                `json:"comment_count"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// VillaDetailResponse is returned by GET /api/villas/{id}
type VillaDetailResponse struct {
	VillaResponse
	Photos      []PhotoResponse      `json:"photos"`
	Reviews     []ReviewResponse     `json:"reviews"`
	Rating      RatingSummary        `json:"rating"`
	BookedDates []BookedDateResponse `json:"booked_dates"`
}

type PhotoResponse struct {
	ID        string    `json:"id"`
	VillaID   string    `json:"villa_id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingSummary is derived from a villa's reviews on every read.
// Distribution maps each star value 1..5 to its share in percent.
type RatingSummary struct {
	Average      float64         `json:"average"`
	Count        int             `json:"count"`
	Distribution map[int]float64 `json:"distribution"`
}

func VillaToResponse(villa *entity.Villa, rating RatingSummary) VillaResponse {
	return VillaResponse{
		ID:            villa.ID.String(),
		OwnerID:       villa.OwnerID.String(),
		Name:          villa.Name,
		Description:   villa.Description,
		Category:      villa.Category,
		Location:      villa.Location,
		Price:         villa.Price,
		Status:        villa.Status,
		PhotoIDs:      uuidStrings(villa.PhotoIDs),
		ReviewIDs:     uuidStrings(villa.ReviewIDs),
		AverageRating: rating.Average,
		CommentCount:  rating.Count,
		CreatedAt:     villa.CreatedAt,
		UpdatedAt:     villa.UpdatedAt,
	}
}

func PhotoToResponse(photo *entity.VillaPhoto) PhotoResponse {
	return PhotoResponse{
		ID:        photo.ID.String(),
		VillaID:   photo.VillaID.String(),
		Name:      photo.Name,
		URL:       photo.URL,
		CreatedAt: photo.CreatedAt,
	}
}
