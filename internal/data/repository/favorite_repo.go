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

type FavoriteRepository interface {
	Create(ctx context.Context, favorite *entity.Favorite) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Favorite, error)
	FindByUserAndVilla(ctx context.Context, userID, villaID uuid.UUID) (*entity.Favorite, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Favorite, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByVillaID(ctx context.Context, villaID uuid.UUID) (int64, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type favoriteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFavoriteRepository(db database.PgxIface, log *zap.Logger) FavoriteRepository {
	return &favoriteRepository{
		db:  db,
		log: log.With(zap.String("repository", "favorite")),
	}
}

func scanFavorite(row scanner) (*entity.Favorite, error) {
	var favorite entity.Favorite
	if err := row.Scan(&favorite.ID, &favorite.UserID, &favorite.VillaID, &favorite.CreatedAt); err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	query := `INSERT INTO favorites (id, user_id, villa_id, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, favorite.ID, favorite.UserID, favorite.VillaID, favorite.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create favorite",
			zap.Error(err),
			zap.String("user_id", favorite.UserID.String()),
			zap.String("villa_id", favorite.VillaID.String()),
		)
		return writeErr(err, "create favorite")
	}

	return nil
}

func (r *favoriteRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Favorite, error) {
	favorite, err := scanFavorite(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find favorite", zap.Error(err))
		return nil, fmt.Errorf("find favorite: %w", err)
	}
	return favorite, nil
}

func (r *favoriteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Favorite, error) {
	return r.findOne(ctx, `SELECT id, user_id, villa_id, created_at FROM favorites WHERE id = $1`, id)
}

func (r *favoriteRepository) FindByUserAndVilla(ctx context.Context, userID, villaID uuid.UUID) (*entity.Favorite, error) {
	query := `SELECT id, user_id, villa_id, created_at FROM favorites WHERE user_id = $1 AND villa_id = $2`
	return r.findOne(ctx, query, userID, villaID)
}

func (r *favoriteRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Favorite, error) {
	query := `
		SELECT id, user_id, villa_id, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find favorites by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find favorites for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var favorites []*entity.Favorite
	for rows.Next() {
		favorite, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan favorite row: %w", err)
		}
		favorites = append(favorites, favorite)
	}

	return favorites, rows.Err()
}

func (r *favoriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete favorite",
			zap.Error(err),
			zap.String("favorite_id", id.String()),
		)
		return fmt.Errorf("delete favorite %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *favoriteRepository) DeleteByVillaID(ctx context.Context, villaID uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE villa_id = $1`, villaID)
	if err != nil {
		r.log.Error("Failed to delete favorites by villa",
			zap.Error(err),
			zap.String("villa_id", villaID.String()),
		)
		return 0, fmt.Errorf("delete favorites for villa %s: %w", villaID.String(), err)
	}
	return result.RowsAffected(), nil
}

func (r *favoriteRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1`, userID)
	if err != nil {
		r.log.Error("Failed to delete favorites by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("delete favorites for user %s: %w", userID.String(), err)
	}
	return result.RowsAffected(), nil
}
