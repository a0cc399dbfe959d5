package wire

import (
	"villa-rental/internal/adaptor"
	"villa-rental/pkg/middleware"
	"villa-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== USER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.User(config.JWT.Secret, log))

		r.Post("/api/payments", paymentHandler.CreatePayment)
		r.Get("/api/user/payments", paymentHandler.GetUserPayments)

		// Midtrans relay
		r.Post("/api/payments/transaction", paymentHandler.CreateTransaction)
		r.Get("/api/payments/status/{orderId}", paymentHandler.GetTransactionStatus)
	})

	// ==================== OWNER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Owner(config.JWT.Secret, log))

		// GET /api/owner/payments?search=&page=&per_page=
		r.Get("/api/owner/payments", paymentHandler.GetOwnerPayments)

		// GET /api/owner/payments/monthly?range=1-6
		r.Get("/api/owner/payments/monthly", paymentHandler.GetMonthlyReport)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Admin(config.JWT.Secret, log))

		r.Get("/api/payments", paymentHandler.GetPayments)
		r.Get("/api/payments/{id}", paymentHandler.GetPaymentByID)
		r.Put("/api/payments/{id}", paymentHandler.UpdatePayment)
		r.Delete("/api/payments/{id}", paymentHandler.DeletePayment)
	})
}
