package usecase

import (
	"villa-rental/internal/data/repository"
	"villa-rental/pkg/apperror"
	"villa-rental/pkg/gateway"
	"villa-rental/pkg/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Villa    VillaService
	Booking  BookingService
	Payment  PaymentService
	Review   ReviewService
	Favorite FavoriteService
	User     UserService
	Admin    AdminService
}

func NewService(repo *repository.Repository, store storage.FileStore, gw gateway.PaymentGateway, log *zap.Logger) *Service {
	cascade := newCascade(repo, store, log)

	return &Service{
		Villa:    NewVillaService(repo, store, cascade, log),
		Booking:  NewBookingService(repo, log),
		Payment:  NewPaymentService(repo, gw, log),
		Review:   NewReviewService(repo, log),
		Favorite: NewFavoriteService(repo, log),
		User:     NewUserService(repo, store, cascade, log),
		Admin:    NewAdminService(repo, log),
	}
}

// FileUpload is one file taken from a multipart form.
type FileUpload struct {
	Name string
	Data []byte
}

// parseID turns a path or body id into a UUID, reporting field on failure
func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperror.Validation("Validation failed", map[string]string{
			field: "Must be a valid UUID",
		})
	}
	return id, nil
}

func validationFailed(errs map[string]string) error {
	return apperror.Validation("Validation failed", errs)
}
