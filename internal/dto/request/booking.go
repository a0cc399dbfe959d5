package request

type CreateBookingRequest struct {
	VillaID   string `json:"villa_id" validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Guests    int    `json:"guests" validate:"omitempty,min=1,max=50"`
}

type UpdateBookingRequest struct {
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Guests    *int    `json:"guests,omitempty" validate:"omitempty,min=1,max=50"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled"`
}
