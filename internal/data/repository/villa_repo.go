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

type VillaRepository interface {
	Create(ctx context.Context, villa *entity.Villa) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Villa, error)
	FindAll(ctx context.Context, filter VillaFilter, limit, offset int) ([]*entity.Villa, error)
	Count(ctx context.Context, filter VillaFilter) (int64, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Villa, error)
	Update(ctx context.Context, villa *entity.Villa) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.VillaStatus) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Reference lists
	AppendPhotos(ctx context.Context, id uuid.UUID, photoIDs []uuid.UUID) error
	RemovePhoto(ctx context.Context, id, photoID uuid.UUID) error
	AppendReview(ctx context.Context, id, reviewID uuid.UUID) error
	RemoveReview(ctx context.Context, id, reviewID uuid.UUID) error
}

type villaRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVillaRepository(db database.PgxIface, log *zap.Logger) VillaRepository {
	return &villaRepository{
		db:  db,
		log: log.With(zap.String("repository", "villa")),
	}
}

const villaColumns = `v.id, v.owner_id, v.name, v.description, v.category, v.location,
	v.price, v.status, v.photo_ids, v.review_ids, v.created_at, v.updated_at`

func scanVilla(row scanner) (*entity.Villa, error) {
	var villa entity.Villa
	err := row.Scan(
		&villa.ID,
		&villa.OwnerID,
		&villa.Name,
		&villa.Description,
		&villa.Category,
		&villa.Location,
		&villa.Price,
		&villa.Status,
		&villa.PhotoIDs,
		&villa.ReviewIDs,
		&villa.CreatedAt,
		&villa.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &villa, nil
}

func (r *villaRepository) Create(ctx context.Context, villa *entity.Villa) error {
	query := `
		INSERT INTO villas (id, owner_id, name, description, category, location,
		                    price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		villa.ID,
		villa.OwnerID,
		villa.Name,
		villa.Description,
		villa.Category,
		villa.Location,
		villa.Price,
		villa.Status,
		villa.CreatedAt,
		villa.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create villa",
			zap.Error(err),
			zap.String("owner_id", villa.OwnerID.String()),
			zap.String("name", villa.Name),
		)
		return fmt.Errorf("create villa %s: %w", villa.Name, err)
	}

	return nil
}

func (r *villaRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Villa, error) {
	query := `SELECT ` + villaColumns + ` FROM villas v WHERE v.id = $1`

	villa, err := scanVilla(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find villa by ID",
			zap.Error(err),
			zap.String("villa_id", id.String()),
		)
		return nil, fmt.Errorf("find villa by ID %s: %w", id.String(), err)
	}

	return villa, nil
}

func (r *villaRepository) FindAll(ctx context.Context, filter VillaFilter, limit, offset int) ([]*entity.Villa, error) {
	b := filter.build()
	query := `SELECT ` + villaColumns + ` FROM villas v` + b.sql() +
		` ORDER BY v.created_at DESC LIMIT ` + b.placeholder(limit) + ` OFFSET ` + b.placeholder(offset)

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		r.log.Error("Failed to find villas",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find villas: %w", err)
	}
	return r.collect(rows)
}

func (r *villaRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Villa, error) {
	query := `SELECT ` + villaColumns + ` FROM villas v WHERE v.owner_id = $1 ORDER BY v.created_at`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to find villas by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find villas for owner %s: %w", ownerID.String(), err)
	}
	return r.collect(rows)
}

func (r *villaRepository) collect(rows pgx.Rows) ([]*entity.Villa, error) {
	defer rows.Close()

	var villas []*entity.Villa
	for rows.Next() {
		villa, err := scanVilla(rows)
		if err != nil {
			r.log.Error("Failed to scan villa row", zap.Error(err))
			return nil, fmt.Errorf("scan villa row: %w", err)
		}
		villas = append(villas, villa)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate villa rows: %w", err)
	}

	return villas, nil
}

func (r *villaRepository) Count(ctx context.Context, filter VillaFilter) (int64, error) {
	b := filter.build()
	query := `SELECT COUNT(*) FROM villas v` + b.sql()

	var total int64
	if err := r.db.QueryRow(ctx, query, b.args...).Scan(&total); err != nil {
		r.log.Error("Failed to count villas", zap.Error(err))
		return 0, fmt.Errorf("count villas: %w", err)
	}

	return total, nil
}

func (r *villaRepository) Update(ctx context.Context, villa *entity.Villa) error {
	query := `
		UPDATE villas
		SET name = $2, description = $3, category = $4, location = $5,
		    price = $6, status = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		villa.ID,
		villa.Name,
		villa.Description,
		villa.Category,
		villa.Location,
		villa.Price,
		villa.Status,
		villa.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update villa",
			zap.Error(err),
			zap.String("villa_id", villa.ID.String()),
		)
		return fmt.Errorf("update villa %s: %w", villa.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *villaRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.VillaStatus) error {
	query := `UPDATE villas SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update villa status",
			zap.Error(err),
			zap.String("villa_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update villa %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *villaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM villas WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete villa",
			zap.Error(err),
			zap.String("villa_id", id.String()),
		)
		return fmt.Errorf("delete villa %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Villa deleted", zap.String("villa_id", id.String()))
	return nil
}

func (r *villaRepository) AppendPhotos(ctx context.Context, id uuid.UUID, photoIDs []uuid.UUID) error {
	query := `UPDATE villas SET photo_ids = photo_ids || $2::uuid[], updated_at = NOW() WHERE id = $1`
	return r.execRef(ctx, "append photos", query, id, photoIDs)
}

func (r *villaRepository) RemovePhoto(ctx context.Context, id, photoID uuid.UUID) error {
	query := `UPDATE villas SET photo_ids = array_remove(photo_ids, $2), updated_at = NOW() WHERE id = $1`
	return r.execRef(ctx, "remove photo", query, id, photoID)
}

func (r *villaRepository) AppendReview(ctx context.Context, id, reviewID uuid.UUID) error {
	query := `UPDATE villas SET review_ids = array_append(review_ids, $2), updated_at = NOW() WHERE id = $1`
	return r.execRef(ctx, "append review", query, id, reviewID)
}

func (r *villaRepository) RemoveReview(ctx context.Context, id, reviewID uuid.UUID) error {
	query := `UPDATE villas SET review_ids = array_remove(review_ids, $2), updated_at = NOW() WHERE id = $1`
	return r.execRef(ctx, "remove review", query, id, reviewID)
}

func (r *villaRepository) execRef(ctx context.Context, op, query string, id uuid.UUID, value any) error {
	result, err := r.db.Exec(ctx, query, id, value)
	if err != nil {
		r.log.Error("Failed to "+op,
			zap.Error(err),
			zap.String("villa_id", id.String()),
		)
		return fmt.Errorf("%s on villa %s: %w", op, id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
