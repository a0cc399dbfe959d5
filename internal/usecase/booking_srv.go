package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"villa-rental/internal/data/entity"
	"villa-rental/internal/data/repository"
	"villa-rental/internal/dto/request"
	"villa-rental/internal/dto/response"
	"villa-rental/pkg/apperror"
	"villa-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type BookingService interface {
	// User endpoints (butuh auth)
	CreateBooking(ctx context.Context, user utils.Principal, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, user utils.Principal, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, bookingID string) error

	// Public
	ListBookedDates(ctx context.Context, villaID string) ([]response.BookedDateResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

// Overlapping bookings are accepted. Clients use ListBookedDates to grey
// out taken dates.
func (s *bookingService) CreateBooking(ctx context.Context, user utils.Principal, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	villaID, err := parseID("villa_id", req.VillaID)
	if err != nil {
		return nil, err
	}

	villa, err := s.repo.Villa.FindByID(ctx, villaID)
	if err != nil {
		return nil, fmt.Errorf("find villa: %w", err)
	}
	if villa == nil {
		return nil, apperror.NotFound("Villa")
	}

	guests := req.Guests
	if guests == 0 {
		guests = 1
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    user.ID,
		VillaID:   villa.ID,
		StartDate: start,
		EndDate:   end,
		Guests:    guests,
		Status:    entity.BookingStatusPending,
	}
	booking.TotalPrice = villa.Price * float64(booking.Nights())

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
			zap.String("villa_id", req.VillaID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("villa_id", req.VillaID),
		zap.Int("nights", booking.Nights()),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, user utils.Principal, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, user.ID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	return response.NewPaginatedResponse(toBookingResponses(bookings), req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get bookings", zap.Error(err))
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return response.NewPaginatedResponse(toBookingResponses(bookings), req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	startStr := booking.StartDate.Format(dateLayout)
	endStr := booking.EndDate.Format(dateLayout)
	if req.StartDate != nil {
		startStr = *req.StartDate
	}
	if req.EndDate != nil {
		endStr = *req.EndDate
	}
	start, end, err := parseDateRange(startStr, endStr)
	if err != nil {
		return nil, err
	}

	booking.StartDate = start
	booking.EndDate = end
	if req.Guests != nil {
		booking.Guests = *req.Guests
	}
	if req.Status != nil {
		booking.Status = entity.BookingStatus(*req.Status)
	}

	// Harga dihitung ulang dari harga villa saat ini
	villa, err := s.repo.Villa.FindByID(ctx, booking.VillaID)
	if err != nil {
		return nil, fmt.Errorf("find villa: %w", err)
	}
	if villa != nil {
		booking.TotalPrice = villa.Price * float64(booking.Nights())
	}
	booking.UpdatedAt = time.Now()

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Booking")
		}
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.log.Info("Booking updated",
		zap.String("booking_id", bookingID),
		zap.String("status", string(booking.Status)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// DeleteBooking removes the booking and its payments together
func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	id, err := parseID("id", bookingID)
	if err != nil {
		return err
	}

	var payments int64
	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if payments, err = s.repo.Payment.DeleteByBookingID(ctx, id); err != nil {
			return err
		}
		return s.repo.Booking.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Booking")
		}
		s.log.Error("Failed to delete booking", zap.Error(err), zap.String("booking_id", bookingID))
		return fmt.Errorf("delete booking: %w", err)
	}

	s.log.Info("Booking deleted",
		zap.String("booking_id", bookingID),
		zap.Int64("payments", payments),
	)
	return nil
}

func (s *bookingService) ListBookedDates(ctx context.Context, villaID string) ([]response.BookedDateResponse, error) {
	id, err := parseID("id", villaID)
	if err != nil {
		return nil, err
	}

	villa, err := s.repo.Villa.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find villa: %w", err)
	}
	if villa == nil {
		return nil, apperror.NotFound("Villa")
	}

	dates, err := s.repo.Booking.FindBookedDates(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booked dates: %w", err)
	}

	return response.BookedDatesToResponse(dates), nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := parseID("id", bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, apperror.NotFound("Booking")
	}
	return booking, nil
}

// parseDateRange parses both dates as UTC calendar days. end may equal start.
func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	errs := map[string]string{}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		errs["start_date"] = "Must match format " + dateLayout
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		errs["end_date"] = "Must match format " + dateLayout
	}
	if len(errs) == 0 && end.Before(start) {
		errs["end_date"] = "Must not be before start_date"
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, validationFailed(errs)
	}
	return start, end, nil
}

func toBookingResponses(bookings []*entity.Booking) []response.BookingResponse {
	out := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, response.BookingToResponse(booking))
	}
	return out
}
