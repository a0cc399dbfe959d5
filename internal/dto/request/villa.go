package request

type CreateVillaRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=5000"`
	Category    string  `json:"category" validate:"required,max=100"`
	Location    string  `json:"location" validate:"required,max=200"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

type UpdateVillaRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,min=1,max=200"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
}

type UpdateVillaStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending success rejected"`
}

// VillaQuery is parsed from the query string of GET /api/villas
type VillaQuery struct {
	PaginatedRequest
	Category string
	Location string
	Status   string
	MinPrice *float64
	MaxPrice *float64
	Search   string
}
