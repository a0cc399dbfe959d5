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

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindAll(ctx context.Context, filter ReviewFilter, limit, offset int) ([]*entity.Review, error)
	Count(ctx context.Context, filter ReviewFilter) (int64, error)
	FindByVillaID(ctx context.Context, villaID uuid.UUID) ([]*entity.Review, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByVillaID(ctx context.Context, villaID uuid.UUID) (int64, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `id, villa_id, user_id, rating, comment, created_at, updated_at`

func scanReview(row scanner) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.VillaID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, villa_id, user_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.VillaID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("villa_id", review.VillaID.String()),
			zap.String("user_id", review.UserID.String()),
		)
		return fmt.Errorf("create review for villa %s: %w", review.VillaID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindAll(ctx context.Context, filter ReviewFilter, limit, offset int) ([]*entity.Review, error) {
	b := filter.build()
	query := `SELECT ` + reviewColumns + ` FROM reviews` + b.sql() +
		` ORDER BY created_at DESC LIMIT ` + b.placeholder(limit) + ` OFFSET ` + b.placeholder(offset)
	return r.list(ctx, "find reviews", query, b.args...)
}

func (r *reviewRepository) Count(ctx context.Context, filter ReviewFilter) (int64, error) {
	b := filter.build()

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`+b.sql(), b.args...).Scan(&total); err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err))
		return 0, fmt.Errorf("count reviews: %w", err)
	}

	return total, nil
}

func (r *reviewRepository) FindByVillaID(ctx context.Context, villaID uuid.UUID) ([]*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE villa_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, "find reviews by villa", query, villaID)
}

func (r *reviewRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, "find reviews by user", query, userID)
}

func (r *reviewRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `UPDATE reviews SET rating = $2, comment = $3, updated_at = $4 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, review.ID, review.Rating, review.Comment, review.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *reviewRepository) DeleteByVillaID(ctx context.Context, villaID uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE villa_id = $1`, villaID)
	if err != nil {
		r.log.Error("Failed to delete reviews by villa",
			zap.Error(err),
			zap.String("villa_id", villaID.String()),
		)
		return 0, fmt.Errorf("delete reviews for villa %s: %w", villaID.String(), err)
	}
	return result.RowsAffected(), nil
}

func (r *reviewRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE user_id = $1`, userID)
	if err != nil {
		r.log.Error("Failed to delete reviews by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("delete reviews for user %s: %w", userID.String(), err)
	}
	return result.RowsAffected(), nil
}
