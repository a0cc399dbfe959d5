package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

type ReviewService interface {
	// Public endpoints
	GetReviews(ctx context.Context, villaID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetReviewByID(ctx context.Context, reviewID string) (*response.ReviewResponse, error)

	// User endpoints
	CreateReview(ctx context.Context, user utils.Principal, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, user utils.Principal, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, user utils.Principal, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, user utils.Principal, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
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

	now := time.Now()
	review := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		VillaID: villaID,
		UserID:  user.ID,
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
	}

	// Simpan ulasan dan tambahkan ke daftar ulasan villa
	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Review.Create(ctx, review); err != nil {
			return err
		}
		return s.repo.Villa.AppendReview(ctx, villaID, review.ID)
	})
	if err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
			zap.String("villa_id", req.VillaID),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("villa_id", req.VillaID),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetReviews(ctx context.Context, villaID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	var filter repository.ReviewFilter
	if villaID != "" {
		id, err := parseID("villa_id", villaID)
		if err != nil {
			return nil, err
		}
		filter.VillaID = &id
	}

	reviews, err := s.repo.Review.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get reviews",
			zap.Error(err),
			zap.String("villa_id", villaID),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get reviews: %w", err)
	}

	total, err := s.repo.Review.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	out := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, response.ReviewToResponse(review))
	}

	return response.NewPaginatedResponse(out, req.Page, req.Limit(), total), nil
}

func (s *reviewService) GetReviewByID(ctx context.Context, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, user utils.Principal, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	review, err := s.findOwnReview(ctx, user, reviewID)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = strings.TrimSpace(*req.Comment)
	}
	review.UpdatedAt = time.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Review")
		}
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.String("user_id", user.ID.String()),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

// DeleteReview also detaches the review from its villa
func (s *reviewService) DeleteReview(ctx context.Context, user utils.Principal, reviewID string) error {
	review, err := s.findOwnReview(ctx, user, reviewID)
	if err != nil {
		return err
	}

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
			return err
		}
		err := s.repo.Villa.RemoveReview(ctx, review.VillaID, review.ID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Review")
		}
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("villa_id", review.VillaID.String()),
	)
	return nil
}

func (s *reviewService) findReview(ctx context.Context, reviewID string) (*entity.Review, error) {
	id, err := parseID("id", reviewID)
	if err != nil {
		return nil, err
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, apperror.NotFound("Review")
	}
	return review, nil
}

func (s *reviewService) findOwnReview(ctx context.Context, user utils.Principal, reviewID string) (*entity.Review, error) {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != user.ID {
		return nil, apperror.Auth("You can only change your own review")
	}
	return review, nil
}
