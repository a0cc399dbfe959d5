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

type AdminService interface {
	CreateAdmin(ctx context.Context, req *request.CreateAdminRequest) (*response.AdminResponse, error)
	GetAdmins(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AdminResponse], error)
	GetAdminByID(ctx context.Context, adminID string) (*response.AdminResponse, error)
	UpdateAdmin(ctx context.Context, adminID string, req *request.UpdateAdminRequest) (*response.AdminResponse, error)
	DeleteAdmin(ctx context.Context, adminID string) error
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) CreateAdmin(ctx context.Context, req *request.CreateAdminRequest) (*response.AdminResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create admin validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.checkEmail(ctx, uuid.Nil, email); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	admin := &entity.Admin{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        trimPtr(req.Phone),
		PasswordHash: hash,
		ProfilePhoto: defaultProfilePhoto,
	}

	if err := s.repo.Admin.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, adminEmailTaken()
		}
		s.log.Error("Failed to create admin", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("create admin: %w", err)
	}

	s.log.Info("Admin created",
		zap.String("admin_id", admin.ID.String()),
		zap.String("email", email),
	)

	resp := response.AdminToResponse(admin)
	return &resp, nil
}

func (s *adminService) GetAdmins(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AdminResponse], error) {
	admins, err := s.repo.Admin.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get admins: %w", err)
	}

	total, err := s.repo.Admin.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}

	out := make([]response.AdminResponse, 0, len(admins))
	for _, admin := range admins {
		out = append(out, response.AdminToResponse(admin))
	}

	return response.NewPaginatedResponse(out, req.Page, req.Limit(), total), nil
}

func (s *adminService) GetAdminByID(ctx context.Context, adminID string) (*response.AdminResponse, error) {
	admin, err := s.findAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	resp := response.AdminToResponse(admin)
	return &resp, nil
}

func (s *adminService) UpdateAdmin(ctx context.Context, adminID string, req *request.UpdateAdminRequest) (*response.AdminResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	admin, err := s.findAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		admin.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		admin.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		if err := s.checkEmail(ctx, admin.ID, admin.Email); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		admin.Phone = trimPtr(req.Phone)
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		admin.PasswordHash = hash
	}
	admin.UpdatedAt = time.Now()

	if err := s.repo.Admin.Update(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Admin")
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, adminEmailTaken()
		}
		return nil, fmt.Errorf("update admin: %w", err)
	}

	s.log.Info("Admin updated", zap.String("admin_id", adminID))

	resp := response.AdminToResponse(admin)
	return &resp, nil
}

func (s *adminService) DeleteAdmin(ctx context.Context, adminID string) error {
	id, err := parseID("id", adminID)
	if err != nil {
		return err
	}

	if err := s.repo.Admin.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Admin")
		}
		return fmt.Errorf("delete admin: %w", err)
	}
	return nil
}

func (s *adminService) checkEmail(ctx context.Context, self uuid.UUID, email string) error {
	existing, err := s.repo.Admin.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find admin by email: %w", err)
	}
	if existing != nil && existing.ID != self {
		return adminEmailTaken()
	}
	return nil
}

func adminEmailTaken() error {
	return apperror.Conflict("Email already registered", map[string]string{
		"email": "Email already registered",
	})
}

func (s *adminService) findAdmin(ctx context.Context, adminID string) (*entity.Admin, error) {
	id, err := parseID("id", adminID)
	if err != nil {
		return nil, err
	}

	admin, err := s.repo.Admin.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if admin == nil {
		return nil, apperror.NotFound("Admin")
	}
	return admin, nil
}
