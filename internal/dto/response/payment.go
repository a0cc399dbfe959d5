package response

import (
	"time"

	"villa-rental/internal/data/entity"
)

type PaymentResponse struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	PayerName  string    `json:"payer_name"`
	PayerEmail string    `json:"payer_email"`
	Code       string    `json:"code"`
	Status     string    `json:"status"`
	PaidAt     time.Time `json:"paid_at"`
	Method     string    `json:"method"`
	Bank       string    `json:"bank"`
	Amount     float64   `json:"amount"`
	ExpiryTime time.Time `json:"expiry_time"`
	VANumber   *string   `json:"va_number,omitempty"`
	PDFURL     *string   `json:"pdf_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type MonthlyPayment struct {
	Month     int     `json:"month"`
	MonthName string  `json:"month_name"`
	Total     float64 `json:"total"`
	Count     int64   `json:"count"`
}

// MonthlyReport covers one half of the year for an owner's villas.
type MonthlyReport struct {
	Range      string           `json:"range"`
	Months     []MonthlyPayment `json:"months"`
	GrandTotal float64          `json:"grand_total"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         payment.ID.String(),
		BookingID:  payment.BookingID.String(),
		PayerName:  payment.PayerName,
		PayerEmail: payment.PayerEmail,
		Code:       payment.Code,
		Status:     payment.Status,
		PaidAt:     payment.PaidAt,
		Method:     payment.Method,
		Bank:       payment.Bank,
		Amount:     payment.Amount,
		ExpiryTime: payment.ExpiryTime,
		VANumber:   payment.VANumber,
		PDFURL:     payment.PDFURL,
		CreatedAt:  payment.CreatedAt,
		UpdatedAt:  payment.UpdatedAt,
	}
}
