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

type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error)
	FindByEmail(ctx context.Context, email string) (*entity.Admin, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Admin, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, admin *entity.Admin) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type adminRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAdminRepository(db database.PgxIface, log *zap.Logger) AdminRepository {
	return &adminRepository{
		db:  db,
		log: log.With(zap.String("repository", "admin")),
	}
}

const adminColumns = `id, name, email, phone, password, profile_photo, created_at, updated_at`

func scanAdmin(row scanner) (*entity.Admin, error) {
	var admin entity.Admin
	err := row.Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.Phone,
		&admin.PasswordHash,
		&admin.ProfilePhoto,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	query := `
		INSERT INTO admins (id, name, email, phone, password, profile_photo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		admin.ID,
		admin.Name,
		admin.Email,
		admin.Phone,
		admin.PasswordHash,
		admin.ProfilePhoto,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create admin",
			zap.Error(err),
			zap.String("email", admin.Email),
		)
		return writeErr(err, "create admin %s", admin.Email)
	}

	return nil
}

func (r *adminRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error) {
	admin, err := scanAdmin(r.db.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find admin by ID",
			zap.Error(err),
			zap.String("admin_id", id.String()),
		)
		return nil, fmt.Errorf("find admin by ID %s: %w", id.String(), err)
	}

	return admin, nil
}

func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	admin, err := scanAdmin(r.db.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find admin by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find admin by email %s: %w", email, err)
	}

	return admin, nil
}

func (r *adminRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get all admins", zap.Error(err))
		return nil, fmt.Errorf("find all admins: %w", err)
	}
	defer rows.Close()

	var admins []*entity.Admin
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan admin row: %w", err)
		}
		admins = append(admins, admin)
	}

	return admins, rows.Err()
}

func (r *adminRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		r.log.Error("Database error counting admins", zap.Error(err))
		return 0, fmt.Errorf("count all admins: %w", err)
	}
	return count, nil
}

func (r *adminRepository) Update(ctx context.Context, admin *entity.Admin) error {
	query := `
		UPDATE admins
		SET name = $2, email = $3, phone = $4, password = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		admin.ID,
		admin.Name,
		admin.Email,
		admin.Phone,
		admin.PasswordHash,
		admin.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update admin",
			zap.Error(err),
			zap.String("admin_id", admin.ID.String()),
		)
		return writeErr(err, "update admin %s", admin.ID.String())
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *adminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete admin",
			zap.Error(err),
			zap.String("admin_id", id.String()),
		)
		return fmt.Errorf("delete admin %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Admin deleted", zap.String("admin_id", id.String()))
	return nil
}
