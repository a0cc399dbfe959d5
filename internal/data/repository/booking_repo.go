package repository

import (
	"context"
	"errors"
	"fmt"

	"villa-rental/internal/data/entity"
	"villa-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context) (int64, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindByVillaID(ctx context.Context, villaID uuid.UUID) ([]*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Business queries
	FindBookedDates(ctx context.Context, villaID uuid.UUID) ([]entity.BookedDate, error)
	DeleteByVillaID(ctx context.Context, villaID uuid.UUID) (int64, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, villa_id, start_date, end_date, guests, total_price, status, created_at, updated_at`

func scanBooking(row scanner) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.VillaID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.Guests,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, villa_id, start_date, end_date, guests, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.VillaID,
		booking.StartDate,
		booking.EndDate,
		booking.Guests,
		booking.TotalPrice,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("villa_id", booking.VillaID.String()),
		)
		return fmt.Errorf("create booking for villa %s: %w", booking.VillaID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, "find bookings", query, limit, offset)
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return total, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, "find bookings by user", query, userID, limit, offset)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count bookings by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings for user %s: %w", userID.String(), err)
	}
	return total, nil
}

func (r *bookingRepository) FindByVillaID(ctx context.Context, villaID uuid.UUID) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE villa_id = $1 ORDER BY start_date`
	return r.list(ctx, "find bookings by villa", query, villaID)
}

func (r *bookingRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET start_date = $2, end_date = $3, guests = $4, total_price = $5, status = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.StartDate,
		booking.EndDate,
		booking.Guests,
		booking.TotalPrice,
		booking.Status,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *bookingRepository) FindBookedDates(ctx context.Context, villaID uuid.UUID) ([]entity.BookedDate, error) {
	query := `
		SELECT start_date, end_date
		FROM bookings
		WHERE villa_id = $1 AND status <> $2
		ORDER BY start_date
	`

	rows, err := r.db.Query(ctx, query, villaID, entity.BookingStatusCancelled)
	if err != nil {
		r.log.Error("Failed to find booked dates",
			zap.Error(err),
			zap.String("villa_id", villaID.String()),
		)
		return nil, fmt.Errorf("find booked dates for villa %s: %w", villaID.String(), err)
	}
	defer rows.Close()

	dates := []entity.BookedDate{}
	for rows.Next() {
		var d entity.BookedDate
		if err := rows.Scan(&d.StartDate, &d.EndDate); err != nil {
			return nil, fmt.Errorf("scan booked date: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, rows.Err()
}

func (r *bookingRepository) DeleteByVillaID(ctx context.Context, villaID uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE villa_id = $1`, villaID)
	if err != nil {
		r.log.Error("Failed to delete bookings by villa",
			zap.Error(err),
			zap.String("villa_id", villaID.String()),
		)
		return 0, fmt.Errorf("delete bookings for villa %s: %w", villaID.String(), err)
	}
	return result.RowsAffected(), nil
}

func (r *bookingRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE user_id = $1`, userID)
	if err != nil {
		r.log.Error("Failed to delete bookings by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("delete bookings for user %s: %w", userID.String(), err)
	}
	return result.RowsAffected(), nil
}
