package repository

import (
	"context"
	"errors"
	"fmt"

	"villa-rental/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrNotFound is returned by writes that matched no row.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned by writes rejected by a unique index.
var ErrDuplicate = errors.New("duplicate record")

// postgres unique_violation
const uniqueViolation = "23505"

// writeErr wraps a failed write. Unique index violations also match
// ErrDuplicate so services can answer with a conflict.
func writeErr(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w (%s): %w", msg, ErrDuplicate, pgErr.ConstraintName, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Transactor runs fn so that every repository call made with the ctx it
// receives shares one database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// scanner is implemented by pgx.Row and pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

type Repository struct {
	Tx         Transactor
	Villa      VillaRepository
	VillaPhoto VillaPhotoRepository
	Booking    BookingRepository
	Payment    PaymentRepository
	Review     ReviewRepository
	Favorite   FavoriteRepository
	User       UserRepository
	Admin      AdminRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tx:         db,
		Villa:      NewVillaRepository(db, log),
		VillaPhoto: NewVillaPhotoRepository(db, log),
		Booking:    NewBookingRepository(db, log),
		Payment:    NewPaymentRepository(db, log),
		Review:     NewReviewRepository(db, log),
		Favorite:   NewFavoriteRepository(db, log),
		User:       NewUserRepository(db, log),
		Admin:      NewAdminRepository(db, log),
	}
}
