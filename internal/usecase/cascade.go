package usecase

import (
	"context"
	"errors"

	"villa-rental/internal/data/entity"
	"villa-rental/internal/data/repository"
	"villa-rental/pkg/apperror"
	"villa-rental/pkg/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// cascade removes an entity together with everything that references it.
// Database steps share one transaction; photo files are removed after
// commit and a failed file removal is only logged.
type cascade struct {
	repo  *repository.Repository
	store storage.FileStore
	log   *zap.Logger
}

func newCascade(repo *repository.Repository, store storage.FileStore, log *zap.Logger) *cascade {
	return &cascade{
		repo:  repo,
		store: store,
		log:   log.With(zap.String("service", "cascade")),
	}
}

func (c *cascade) deleteVilla(ctx context.Context, villaID uuid.UUID) error {
	var photos []*entity.VillaPhoto

	err := c.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		photos, err = c.deleteVillaRows(ctx, villaID)
		return err
	})
	if err != nil {
		return err
	}

	c.removeFiles(ctx, photos)
	return nil
}

// deleteVillaRows must run inside a transaction
func (c *cascade) deleteVillaRows(ctx context.Context, villaID uuid.UUID) ([]*entity.VillaPhoto, error) {
	photos, err := c.repo.VillaPhoto.FindByVillaID(ctx, villaID)
	if err != nil {
		return nil, err
	}

	payments, err := c.repo.Payment.DeleteByVillaID(ctx, villaID)
	if err != nil {
		return nil, err
	}
	bookings, err := c.repo.Booking.DeleteByVillaID(ctx, villaID)
	if err != nil {
		return nil, err
	}
	favorites, err := c.repo.Favorite.DeleteByVillaID(ctx, villaID)
	if err != nil {
		return nil, err
	}
	reviews, err := c.repo.Review.DeleteByVillaID(ctx, villaID)
	if err != nil {
		return nil, err
	}
	photoRows, err := c.repo.VillaPhoto.DeleteByVillaID(ctx, villaID)
	if err != nil {
		return nil, err
	}

	if err := c.repo.Villa.Delete(ctx, villaID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Villa")
		}
		return nil, err
	}

	c.log.Info("Villa cascade deleted",
		zap.String("villa_id", villaID.String()),
		zap.Int64("payments", payments),
		zap.Int64("bookings", bookings),
		zap.Int64("favorites", favorites),
		zap.Int64("reviews", reviews),
		zap.Int64("photos", photoRows),
	)
	return photos, nil
}

// deleteUser also removes every villa the user owns, with its own cascade
func (c *cascade) deleteUser(ctx context.Context, userID uuid.UUID) error {
	var photos []*entity.VillaPhoto

	err := c.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		owned, err := c.repo.Villa.FindByOwnerID(ctx, userID)
		if err != nil {
			return err
		}
		for _, villa := range owned {
			villaPhotos, err := c.deleteVillaRows(ctx, villa.ID)
			if err != nil {
				return err
			}
			photos = append(photos, villaPhotos...)
		}

		// Lepas ulasan dari daftar ulasan villa sebelum dihapus
		reviews, err := c.repo.Review.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		for _, review := range reviews {
			err := c.repo.Villa.RemoveReview(ctx, review.VillaID, review.ID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
		}

		payments, err := c.repo.Payment.DeleteByUserID(ctx, userID)
		if err != nil {
			return err
		}
		bookings, err := c.repo.Booking.DeleteByUserID(ctx, userID)
		if err != nil {
			return err
		}
		reviewRows, err := c.repo.Review.DeleteByUserID(ctx, userID)
		if err != nil {
			return err
		}
		favorites, err := c.repo.Favorite.DeleteByUserID(ctx, userID)
		if err != nil {
			return err
		}

		if err := c.repo.User.Delete(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.NotFound("User")
			}
			return err
		}

		c.log.Info("User cascade deleted",
			zap.String("user_id", userID.String()),
			zap.Int("villas", len(owned)),
			zap.Int64("payments", payments),
			zap.Int64("bookings", bookings),
			zap.Int64("reviews", reviewRows),
			zap.Int64("favorites", favorites),
		)
		return nil
	})
	if err != nil {
		return err
	}

	c.removeFiles(ctx, photos)
	return nil
}

func (c *cascade) removeFiles(ctx context.Context, photos []*entity.VillaPhoto) {
	for _, photo := range photos {
		if err := c.store.Remove(ctx, photo.FilePath); err != nil {
			c.log.Warn("Failed to remove photo file",
				zap.Error(err),
				zap.String("photo_id", photo.ID.String()),
				zap.String("path", photo.FilePath),
			)
		}
	}
}
