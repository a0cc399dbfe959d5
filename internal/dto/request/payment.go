package request

// PaymentRequest is validated by the payment service so that every field
// problem, booking lookup and code collision ends up in a single error map.
type PaymentRequest struct {
	BookingID  string  `json:"booking_id" validate:"required,uuid"`
	PayerName  string  `json:"payer_name" validate:"required,max=100"`
	PayerEmail string  `json:"payer_email" validate:"required,email"`
	Code       string  `json:"code" validate:"required,max=100"`
	Status     string  `json:"status" validate:"required,max=30"`
	PaidAt     string  `json:"paid_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Method     string  `json:"method" validate:"required,max=50"`
	Bank       string  `json:"bank" validate:"required,max=50"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	ExpiryTime string  `json:"expiry_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	VANumber   *string `json:"va_number,omitempty" validate:"omitempty,max=50"`
	PDFURL     *string `json:"pdf_url,omitempty" validate:"omitempty,url"`
}

type TransactionRequest struct {
	Code       string  `json:"code" validate:"required,max=100"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	PayerName  string  `json:"payer_name" validate:"required,max=100"`
	PayerEmail string  `json:"payer_email" validate:"required,email"`
}

type PaymentQuery struct {
	PaginatedRequest
	Search string
}
