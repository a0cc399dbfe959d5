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

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByCode(ctx context.Context, code string) (*entity.Payment, error)
	FindAll(ctx context.Context, filter PaymentFilter, limit, offset int) ([]*entity.Payment, error)
	Count(ctx context.Context, filter PaymentFilter) (int64, error)
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Cascade helpers, each scoped through the owning booking
	DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error)
	DeleteByVillaID(ctx context.Context, villaID uuid.UUID) (int64, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// Reports
	MonthlyTotals(ctx context.Context, ownerID uuid.UUID, startMonth, endMonth int) ([]entity.MonthlyTotal, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `p.id, p.booking_id, p.payer_name, p.payer_email, p.code, p.status, p.paid_at,
	p.method, p.bank, p.amount, p.expiry_time, p.va_number, p.pdf_url, p.created_at, p.updated_at`

// paymentJoin exposes the booking (b) and villa (v) behind each payment (p)
const paymentJoin = ` FROM payments p
	JOIN bookings b ON b.id = p.booking_id
	JOIN villas v ON v.id = b.villa_id`

func scanPayment(row scanner) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.PayerName,
		&payment.PayerEmail,
		&payment.Code,
		&payment.Status,
		&payment.PaidAt,
		&payment.Method,
		&payment.Bank,
		&payment.Amount,
		&payment.ExpiryTime,
		&payment.VANumber,
		&payment.PDFURL,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, payer_name, payer_email, code, status, paid_at,
		                      method, bank, amount, expiry_time, va_number, pdf_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.PayerName,
		payment.PayerEmail,
		payment.Code,
		payment.Status,
		payment.PaidAt,
		payment.Method,
		payment.Bank,
		payment.Amount,
		payment.ExpiryTime,
		payment.VANumber,
		payment.PDFURL,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("code", payment.Code),
			zap.String("booking_id", payment.BookingID.String()),
		)
		return writeErr(err, "create payment %s", payment.Code)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments p WHERE p.id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByCode(ctx context.Context, code string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments p WHERE p.code = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find payment by code %s: %w", code, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindAll(ctx context.Context, filter PaymentFilter, limit, offset int) ([]*entity.Payment, error) {
	b := filter.build()
	query := `SELECT ` + paymentColumns + paymentJoin + b.sql() +
		` ORDER BY p.paid_at DESC LIMIT ` + b.placeholder(limit) + ` OFFSET ` + b.placeholder(offset)

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		r.log.Error("Failed to find payments",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}

	return payments, nil
}

func (r *paymentRepository) Count(ctx context.Context, filter PaymentFilter) (int64, error) {
	b := filter.build()
	query := `SELECT COUNT(*)` + paymentJoin + b.sql()

	var total int64
	if err := r.db.QueryRow(ctx, query, b.args...).Scan(&total); err != nil {
		r.log.Error("Failed to count payments", zap.Error(err))
		return 0, fmt.Errorf("count payments: %w", err)
	}

	return total, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	query := `
		UPDATE payments
		SET booking_id = $2, payer_name = $3, payer_email = $4, code = $5, status = $6,
		    paid_at = $7, method = $8, bank = $9, amount = $10, expiry_time = $11,
		    va_number = $12, pdf_url = $13, updated_at = $14
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.PayerName,
		payment.PayerEmail,
		payment.Code,
		payment.Status,
		payment.PaidAt,
		payment.Method,
		payment.Bank,
		payment.Amount,
		payment.ExpiryTime,
		payment.VANumber,
		payment.PDFURL,
		payment.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update payment",
			zap.Error(err),
			zap.String("payment_id", payment.ID.String()),
		)
		return writeErr(err, "update payment %s", payment.ID.String())
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete payment",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return fmt.Errorf("delete payment %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *paymentRepository) DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	return r.deleteWhere(ctx, "booking", `DELETE FROM payments WHERE booking_id = $1`, bookingID)
}

func (r *paymentRepository) DeleteByVillaID(ctx context.Context, villaID uuid.UUID) (int64, error) {
	query := `DELETE FROM payments WHERE booking_id IN (SELECT id FROM bookings WHERE villa_id = $1)`
	return r.deleteWhere(ctx, "villa", query, villaID)
}

func (r *paymentRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM payments WHERE booking_id IN (SELECT id FROM bookings WHERE user_id = $1)`
	return r.deleteWhere(ctx, "user", query, userID)
}

func (r *paymentRepository) deleteWhere(ctx context.Context, scope, query string, id uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete payments by "+scope,
			zap.Error(err),
			zap.String(scope+"_id", id.String()),
		)
		return 0, fmt.Errorf("delete payments for %s %s: %w", scope, id.String(), err)
	}
	return result.RowsAffected(), nil
}

// paid_at is timestamptz; months are bucketed in UTC whatever the session zone is
const paidMonth = `EXTRACT(MONTH FROM p.paid_at AT TIME ZONE 'UTC')`

func (r *paymentRepository) MonthlyTotals(ctx context.Context, ownerID uuid.UUID, startMonth, endMonth int) ([]entity.MonthlyTotal, error) {
	query := `
		SELECT ` + paidMonth + `::int AS month,
		       COALESCE(SUM(p.amount), 0)::float8 AS total,
		       COUNT(*) AS count` + paymentJoin + `
		WHERE v.owner_id = $1
		  AND ` + paidMonth + ` BETWEEN $2 AND $3
		GROUP BY month
		ORDER BY month
	`

	rows, err := r.db.Query(ctx, query, ownerID, startMonth, endMonth)
	if err != nil {
		r.log.Error("Failed to aggregate monthly payments",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
			zap.Int("start_month", startMonth),
			zap.Int("end_month", endMonth),
		)
		return nil, fmt.Errorf("aggregate payments for owner %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	var totals []entity.MonthlyTotal
	for rows.Next() {
		var m entity.MonthlyTotal
		if err := rows.Scan(&m.Month, &m.Total, &m.Count); err != nil {
			return nil, fmt.Errorf("scan monthly total: %w", err)
		}
		totals = append(totals, m)
	}

	return totals, rows.Err()
}
