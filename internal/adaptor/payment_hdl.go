package adaptor

import (
	"net/http"
	"strings"

	"villa-rental/internal/dto/request"
	"villa-rental/internal/usecase"
	"villa-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

func parsePaymentQuery(r *http.Request) *request.PaymentQuery {
	return &request.PaymentQuery{
		PaginatedRequest: parsePagination(r),
		Search:           strings.TrimSpace(r.URL.Query().Get("search")),
	}
}

// ==================== USER METHODS ====================

// CreatePayment handles POST /api/payments (user only)
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	payment, err := h.service.CreatePayment(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create payment")
		return
	}

	utils.ResponseCreated(w, "success", payment)
}

// GetUserPayments handles GET /api/user/payments (user only)
func (h *PaymentHandler) GetUserPayments(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r, utils.RoleUser)
	if !ok {
		return
	}

	payments, err := h.service.GetUserPayments(r.Context(), user, parsePaymentQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get user payments")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}

// CreateTransaction handles POST /api/payments/transaction (user only)
func (h *PaymentHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req request.TransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tx, err := h.service.CreateGatewayTransaction(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create payment transaction")
		return
	}

	utils.ResponseCreated(w, "success", tx)
}

// GetTransactionStatus handles GET /api/payments/status/{orderId} (user only)
func (h *PaymentHandler) GetTransactionStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.GetGatewayStatus(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get transaction status")
		return
	}

	utils.ResponseSuccess(w, "success", status)
}

// ==================== OWNER METHODS ====================

// GetOwnerPayments handles GET /api/owner/payments (owner only)
func (h *PaymentHandler) GetOwnerPayments(w http.ResponseWriter, r *http.Request) {
	owner, ok := principal(w, r, utils.RoleOwner)
	if !ok {
		return
	}

	payments, err := h.service.GetOwnerPayments(r.Context(), owner, parsePaymentQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get owner payments")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}

// GetMonthlyReport handles GET /api/owner/payments/monthly?range=1-6 (owner only)
func (h *PaymentHandler) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	owner, ok := principal(w, r, utils.RoleOwner)
	if !ok {
		return
	}

	report, err := h.service.GetMonthlyReport(r.Context(), owner, r.URL.Query().Get("range"))
	if err != nil {
		handleServiceError(w, h.log, err, "get monthly report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// ==================== ADMIN METHODS ====================

// GetPayments handles GET /api/payments (admin only)
func (h *PaymentHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.GetPayments(r.Context(), parsePaymentQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get payments")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}

// GetPaymentByID handles GET /api/payments/{id} (admin only)
func (h *PaymentHandler) GetPaymentByID(w http.ResponseWriter, r *http.Request) {
	payment, err := h.service.GetPaymentByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get payment by ID")
		return
	}

	utils.ResponseSuccess(w, "success", payment)
}

// UpdatePayment handles PUT /api/payments/{id} (admin only)
func (h *PaymentHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	payment, err := h.service.UpdatePayment(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update payment")
		return
	}

	utils.ResponseSuccess(w, "success", payment)
}

// DeletePayment handles DELETE /api/payments/{id} (admin only)
func (h *PaymentHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePayment(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete payment")
		return
	}

	utils.ResponseSuccess(w, "Payment deleted", nil)
}
