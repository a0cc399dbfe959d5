package request

type CreateReviewRequest struct {
	VillaID string `json:"villa_id" validate:"required,uuid"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=1000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,min=1,max=1000"`
}

type CreateFavoriteRequest struct {
	VillaID string `json:"villa_id" validate:"required,uuid"`
}
