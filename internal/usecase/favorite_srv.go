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

type FavoriteService interface {
	GetFavorites(ctx context.Context, user utils.Principal) ([]response.FavoriteResponse, error)
	CreateFavorite(ctx context.Context, user utils.Principal, req *request.CreateFavoriteRequest) (*response.FavoriteResponse, error)
	DeleteFavorite(ctx context.Context, user utils.Principal, favoriteID string) error
}

type favoriteService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFavoriteService(repo *repository.Repository, log *zap.Logger) FavoriteService {
	return &favoriteService{
		repo: repo,
		log:  log.With(zap.String("service", "favorite")),
	}
}

func (s *favoriteService) GetFavorites(ctx context.Context, user utils.Principal) ([]response.FavoriteResponse, error) {
	favorites, err := s.repo.Favorite.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get favorites: %w", err)
	}

	out := make([]response.FavoriteResponse, 0, len(favorites))
	for _, favorite := range favorites {
		out = append(out, response.FavoriteToResponse(favorite))
	}
	return out, nil
}

func (s *favoriteService) CreateFavorite(ctx context.Context, user utils.Principal, req *request.CreateFavoriteRequest) (*response.FavoriteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationFailed(errs)
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

	existing, err := s.repo.Favorite.FindByUserAndVilla(ctx, user.ID, villaID)
	if err != nil {
		return nil, fmt.Errorf("check favorite: %w", err)
	}
	if existing != nil {
		return nil, alreadyFavorited()
	}

	favorite := &entity.Favorite{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     user.ID,
		VillaID:    villaID,
	}
	if err := s.repo.Favorite.Create(ctx, favorite); err != nil {
		// lost a race with a concurrent add
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, alreadyFavorited()
		}
		return nil, fmt.Errorf("create favorite: %w", err)
	}

	s.log.Info("Favorite added",
		zap.String("user_id", user.ID.String()),
		zap.String("villa_id", req.VillaID),
	)

	resp := response.FavoriteToResponse(favorite)
	return &resp, nil
}

func (s *favoriteService) DeleteFavorite(ctx context.Context, user utils.Principal, favoriteID string) error {
	id, err := parseID("id", favoriteID)
	if err != nil {
		return err
	}

	favorite, err := s.repo.Favorite.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find favorite: %w", err)
	}
	if favorite == nil {
		return apperror.NotFound("Favorite")
	}
	if favorite.UserID != user.ID {
		return apperror.Auth("You can only remove your own favorite")
	}

	if err := s.repo.Favorite.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Favorite")
		}
		return fmt.Errorf("delete favorite: %w", err)
	}

	return nil
}

func alreadyFavorited() error {
	return apperror.Conflict("Villa already in favorites", map[string]string{
		"villa_id": "Villa already in favorites",
	})
}
