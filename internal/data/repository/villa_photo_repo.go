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

type VillaPhotoRepository interface {
	Create(ctx context.Context, photo *entity.VillaPhoto) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.VillaPhoto, error)
	FindByVillaID(ctx context.Context, villaID uuid.UUID) ([]*entity.VillaPhoto, error)
	Update(ctx context.Context, photo *entity.VillaPhoto) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByVillaID(ctx context.Context, villaID uuid.UUID) (int64, error)
}

type villaPhotoRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVillaPhotoRepository(db database.PgxIface, log *zap.Logger) VillaPhotoRepository {
	return &villaPhotoRepository{
		db:  db,
		log: log.With(zap.String("repository", "villa_photo")),
	}
}

func scanVillaPhoto(row scanner) (*entity.VillaPhoto, error) {
	var photo entity.VillaPhoto
	err := row.Scan(
		&photo.ID,
		&photo.VillaID,
		&photo.Name,
		&photo.URL,
		&photo.FilePath,
		&photo.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *villaPhotoRepository) Create(ctx context.Context, photo *entity.VillaPhoto) error {
	query := `
		INSERT INTO villa_photos (id, villa_id, name, url, file_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		photo.ID,
		photo.VillaID,
		photo.Name,
		photo.URL,
		photo.FilePath,
		photo.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create villa photo",
			zap.Error(err),
			zap.String("villa_id", photo.VillaID.String()),
		)
		return fmt.Errorf("create photo for villa %s: %w", photo.VillaID.String(), err)
	}

	return nil
}

func (r *villaPhotoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.VillaPhoto, error) {
	query := `
		SELECT id, villa_id, name, url, file_path, created_at
		FROM villa_photos
		WHERE id = $1
	`

	photo, err := scanVillaPhoto(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find villa photo", zap.Error(err), zap.String("photo_id", id.String()))
		return nil, fmt.Errorf("find photo %s: %w", id.String(), err)
	}

	return photo, nil
}

func (r *villaPhotoRepository) FindByVillaID(ctx context.Context, villaID uuid.UUID) ([]*entity.VillaPhoto, error) {
	query := `
		SELECT id, villa_id, name, url, file_path, created_at
		FROM villa_photos
		WHERE villa_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, villaID)
	if err != nil {
		r.log.Error("Failed to find villa photos", zap.Error(err), zap.String("villa_id", villaID.String()))
		return nil, fmt.Errorf("find photos for villa %s: %w", villaID.String(), err)
	}
	defer rows.Close()

	var photos []*entity.VillaPhoto
	for rows.Next() {
		photo, err := scanVillaPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan villa photo row: %w", err)
		}
		photos = append(photos, photo)
	}

	return photos, rows.Err()
}

func (r *villaPhotoRepository) Update(ctx context.Context, photo *entity.VillaPhoto) error {
	query := `UPDATE villa_photos SET name = $2, url = $3, file_path = $4 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, photo.ID, photo.Name, photo.URL, photo.FilePath)
	if err != nil {
		r.log.Error("Failed to update villa photo", zap.Error(err), zap.String("photo_id", photo.ID.String()))
		return fmt.Errorf("update photo %s: %w", photo.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *villaPhotoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM villa_photos WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete villa photo", zap.Error(err), zap.String("photo_id", id.String()))
		return fmt.Errorf("delete photo %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *villaPhotoRepository) DeleteByVillaID(ctx context.Context, villaID uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM villa_photos WHERE villa_id = $1`, villaID)
	if err != nil {
		r.log.Error("Failed to delete villa photos", zap.Error(err), zap.String("villa_id", villaID.String()))
		return 0, fmt.Errorf("delete photos for villa %s: %w", villaID.String(), err)
	}

	return result.RowsAffected(), nil
}
