package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"villa-rental/internal/data/entity"
	"villa-rental/internal/data/repository"
	"villa-rental/internal/dto/request"
	"villa-rental/internal/dto/response"
	"villa-rental/pkg/apperror"
	"villa-rental/pkg/gateway"
	"villa-rental/pkg/utils"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go/coreapi"
	"go.uber.org/zap"
)

const msgCodeExists = "Payment code already exists"

type PaymentService interface {
	// User endpoints
	CreatePayment(ctx context.Context, req *request.PaymentRequest) (*response.PaymentResponse, error)
	GetUserPayments(ctx context.Context, user utils.Principal, q *request.PaymentQuery) (*response.PaginatedResponse[response.PaymentResponse], error)
	CreateGatewayTransaction(ctx context.Context, req *request.TransactionRequest) (*gateway.Transaction, error)
	GetGatewayStatus(ctx context.Context, orderID string) (*coreapi.TransactionStatusResponse, error)

	// Owner endpoints
	GetOwnerPayments(ctx context.Context, owner utils.Principal, q *request.PaymentQuery) (*response.PaginatedResponse[response.PaymentResponse], error)
	GetMonthlyReport(ctx context.Context, owner utils.Principal, monthRange string) (*response.MonthlyReport, error)

	// Admin endpoints
	GetPayments(ctx context.Context, q *request.PaymentQuery) (*response.PaginatedResponse[response.PaymentResponse], error)
	GetPaymentByID(ctx context.Context, paymentID string) (*response.PaymentResponse, error)
	UpdatePayment(ctx context.Context, paymentID string, req *request.PaymentRequest) (*response.PaymentResponse, error)
	DeletePayment(ctx context.Context, paymentID string) error
}

type paymentService struct {
	repo    *repository.Repository
	gateway gateway.PaymentGateway
	log     *zap.Logger
}

func NewPaymentService(repo *repository.Repository, gw gateway.PaymentGateway, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:    repo,
		gateway: gw,
		log:     log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, req *request.PaymentRequest) (*response.PaymentResponse, error) {
	payment, err := s.checkPayment(ctx, uuid.Nil, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment.ID = uuid.New()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, codeTaken()
		}
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.log.Info("Payment created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", payment.BookingID.String()),
		zap.String("code", payment.Code),
		zap.Float64("amount", payment.Amount),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) UpdatePayment(ctx context.Context, paymentID string, req *request.PaymentRequest) (*response.PaymentResponse, error) {
	id, err := parseID("id", paymentID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Payment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if existing == nil {
		return nil, apperror.NotFound("Payment")
	}

	payment, err := s.checkPayment(ctx, id, req)
	if err != nil {
		return nil, err
	}
	payment.ID = id
	payment.CreatedAt = existing.CreatedAt
	payment.UpdatedAt = time.Now()

	if err := s.repo.Payment.Update(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Payment")
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, codeTaken()
		}
		return nil, fmt.Errorf("update payment: %w", err)
	}

	s.log.Info("Payment updated",
		zap.String("payment_id", paymentID),
		zap.String("code", payment.Code),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

// checkPayment collects every problem with req into one error map. The
// code must not belong to any payment other than self. A map holding only
// the code collision is a conflict; anything else is a validation error.
func (s *paymentService) checkPayment(ctx context.Context, self uuid.UUID, req *request.PaymentRequest) (*entity.Payment, error) {
	errs := utils.ValidateStruct(req)
	if errs == nil {
		errs = map[string]string{}
	}

	payment := &entity.Payment{
		PayerName:  strings.TrimSpace(req.PayerName),
		PayerEmail: strings.TrimSpace(req.PayerEmail),
		Code:       strings.TrimSpace(req.Code),
		Status:     req.Status,
		Method:     req.Method,
		Bank:       req.Bank,
		Amount:     req.Amount,
		VANumber:   req.VANumber,
		PDFURL:     req.PDFURL,
	}

	if _, bad := errs["booking_id"]; !bad {
		bookingID, _ := uuid.Parse(req.BookingID)
		booking, err := s.repo.Booking.FindByID(ctx, bookingID)
		if err != nil {
			return nil, fmt.Errorf("find booking: %w", err)
		}
		if booking == nil {
			errs["booking_id"] = "Booking not found"
		} else {
			payment.BookingID = booking.ID
		}
	}

	if _, bad := errs["code"]; !bad {
		other, err := s.repo.Payment.FindByCode(ctx, payment.Code)
		if err != nil {
			return nil, fmt.Errorf("find payment by code: %w", err)
		}
		if other != nil && other.ID != self {
			errs["code"] = msgCodeExists
		}
	}

	if _, bad := errs["paid_at"]; !bad {
		payment.PaidAt, _ = time.Parse(time.RFC3339, req.PaidAt)
	}
	if _, bad := errs["expiry_time"]; !bad {
		payment.ExpiryTime, _ = time.Parse(time.RFC3339, req.ExpiryTime)
	}

	if len(errs) == 0 {
		return payment, nil
	}

	s.log.Warn("Payment rejected",
		zap.String("code", req.Code),
		zap.Any("errors", errs),
	)
	if len(errs) == 1 && errs["code"] == msgCodeExists {
		return nil, codeTaken()
	}
	return nil, validationFailed(errs)
}

func codeTaken() error {
	return apperror.Conflict(msgCodeExists, map[string]string{"code": msgCodeExists})
}

func (s *paymentService) DeletePayment(ctx context.Context, paymentID string) error {
	id, err := parseID("id", paymentID)
	if err != nil {
		return err
	}

	if err := s.repo.Payment.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Payment")
		}
		return fmt.Errorf("delete payment: %w", err)
	}

	s.log.Info("Payment deleted", zap.String("payment_id", paymentID))
	return nil
}

func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*response.PaymentResponse, error) {
	id, err := parseID("id", paymentID)
	if err != nil {
		return nil, err
	}

	payment, err := s.repo.Payment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if payment == nil {
		return nil, apperror.NotFound("Payment")
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) GetPayments(ctx context.Context, q *request.PaymentQuery) (*response.PaginatedResponse[response.PaymentResponse], error) {
	return s.listPayments(ctx, repository.PaymentFilter{Search: q.Search}, &q.PaginatedRequest)
}

func (s *paymentService) GetOwnerPayments(ctx context.Context, owner utils.Principal, q *request.PaymentQuery) (*response.PaginatedResponse[response.PaymentResponse], error) {
	return s.listPayments(ctx, repository.PaymentFilter{OwnerID: &owner.ID, Search: q.Search}, &q.PaginatedRequest)
}

func (s *paymentService) GetUserPayments(ctx context.Context, user utils.Principal, q *request.PaymentQuery) (*response.PaginatedResponse[response.PaymentResponse], error) {
	return s.listPayments(ctx, repository.PaymentFilter{UserID: &user.ID, Search: q.Search}, &q.PaginatedRequest)
}

func (s *paymentService) listPayments(ctx context.Context, filter repository.PaymentFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error) {
	payments, err := s.repo.Payment.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get payments",
			zap.Error(err),
			zap.String("search", filter.Search),
		)
		return nil, fmt.Errorf("get payments: %w", err)
	}

	total, err := s.repo.Payment.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}

	out := make([]response.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		out = append(out, response.PaymentToResponse(payment))
	}

	return response.NewPaginatedResponse(out, req.Page, req.Limit(), total), nil
}

func (s *paymentService) GetMonthlyReport(ctx context.Context, owner utils.Principal, r string) (*response.MonthlyReport, error) {
	start, end, err := monthRange(r)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.Payment.MonthlyTotals(ctx, owner.ID, start, end)
	if err != nil {
		s.log.Error("Failed to aggregate monthly payments",
			zap.Error(err),
			zap.String("owner_id", owner.ID.String()),
			zap.String("range", r),
		)
		return nil, fmt.Errorf("monthly payments: %w", err)
	}

	return buildMonthlyReport(r, totals), nil
}

// CreateGatewayTransaction only relays to the gateway; nothing is stored
func (s *paymentService) CreateGatewayTransaction(ctx context.Context, req *request.TransactionRequest) (*gateway.Transaction, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	tx, err := s.gateway.CreateTransaction(gateway.TransactionRequest{
		OrderID:    strings.TrimSpace(req.Code),
		Amount:     int64(math.Round(req.Amount)),
		PayerName:  req.PayerName,
		PayerEmail: req.PayerEmail,
	})
	if err != nil {
		s.log.Error("Gateway transaction failed", zap.Error(err), zap.String("code", req.Code))
		return nil, apperror.Internal("Failed to create payment transaction", err)
	}

	return tx, nil
}

func (s *paymentService) GetGatewayStatus(ctx context.Context, orderID string) (*coreapi.TransactionStatusResponse, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, validationFailed(map[string]string{"orderId": "This field is required"})
	}

	status, err := s.gateway.Status(orderID)
	if err != nil {
		return nil, apperror.Internal("Failed to get transaction status", err)
	}
	return status, nil
}
