package usecase

import (
	"bytes"
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
	"villa-rental/pkg/storage"
	"villa-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultProfilePhoto = "default.png"

type UserService interface {
	// Public
	Register(ctx context.Context, req *request.RegisterUserRequest) (*response.UserResponse, error)

	// User endpoints
	GetMe(ctx context.Context, user utils.Principal) (*response.UserResponse, error)
	ChangePassword(ctx context.Context, user utils.Principal, req *request.ChangePasswordRequest) error
	UploadProfilePhoto(ctx context.Context, user utils.Principal, file FileUpload) (*response.UserResponse, error)

	// Admin endpoints
	GetUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUserByID(ctx context.Context, userID string) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	repo    *repository.Repository
	store   storage.FileStore
	cascade *cascade
	log     *zap.Logger
}

func NewUserService(repo *repository.Repository, store storage.FileStore, cascade *cascade, log *zap.Logger) UserService {
	return &userService{
		repo:    repo,
		store:   store,
		cascade: cascade,
		log:     log.With(zap.String("service", "user")),
	}
}

func (us *userService) Register(ctx context.Context, req *request.RegisterUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := trimPtr(req.Phone)

	if err := us.checkUnique(ctx, uuid.Nil, name, email, phone); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := entity.RoleUser
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         role,
		ProfilePhoto: defaultProfilePhoto,
	}

	if err := us.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, emailTaken()
		}
		us.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("create user: %w", err)
	}

	us.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", email),
		zap.String("role", string(role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := us.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get users: %w", err)
	}

	total, err := us.repo.User.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	out := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, response.UserToResponse(user))
	}

	return response.NewPaginatedResponse(out, req.Page, req.Limit(), total), nil
}

func (us *userService) GetUserByID(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := parseID("id", userID)
	if err != nil {
		return nil, err
	}

	user, err := us.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetMe(ctx context.Context, principal utils.Principal) (*response.UserResponse, error) {
	user, err := us.findUser(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	id, err := parseID("id", userID)
	if err != nil {
		return nil, err
	}

	user, err := us.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		user.Phone = trimPtr(req.Phone)
	}

	if err := us.checkUnique(ctx, user.ID, user.Name, user.Email, user.Phone); err != nil {
		return nil, err
	}

	user.UpdatedAt = time.Now()
	if err := us.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("User")
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, emailTaken()
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	us.log.Info("User updated", zap.String("user_id", userID))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) DeleteUser(ctx context.Context, userID string) error {
	id, err := parseID("id", userID)
	if err != nil {
		return err
	}

	if err := us.cascade.deleteUser(ctx, id); err != nil {
		return err
	}

	us.log.Info("User deleted", zap.String("user_id", userID))
	return nil
}

func (us *userService) ChangePassword(ctx context.Context, principal utils.Principal, req *request.ChangePasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationFailed(errs)
	}

	user, err := us.findUser(ctx, principal.ID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		us.log.Warn("Wrong current password", zap.String("user_id", principal.ID.String()))
		return validationFailed(map[string]string{"current_password": "Current password is incorrect"})
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := us.repo.User.UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("User")
		}
		return fmt.Errorf("update password: %w", err)
	}

	us.log.Info("Password changed", zap.String("user_id", principal.ID.String()))
	return nil
}

// UploadProfilePhoto stores the new photo and drops the previous one
func (us *userService) UploadProfilePhoto(ctx context.Context, principal utils.Principal, file FileUpload) (*response.UserResponse, error) {
	user, err := us.findUser(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	contentType, ext, err := storage.DetectImage(file.Data)
	if err != nil {
		return nil, validationFailed(map[string]string{"photo": err.Error()})
	}

	obj, err := us.store.Save(ctx, "profile/"+uuid.NewString()+ext, bytes.NewReader(file.Data), contentType)
	if err != nil {
		us.log.Error("Failed to store profile photo", zap.Error(err), zap.String("user_id", principal.ID.String()))
		return nil, fmt.Errorf("store profile photo: %w", err)
	}

	if err := us.repo.User.UpdatePhoto(ctx, user.ID, obj.Path); err != nil {
		us.removeFile(ctx, obj.Path)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("User")
		}
		return nil, fmt.Errorf("update profile photo: %w", err)
	}

	if user.ProfilePhoto != defaultProfilePhoto && user.ProfilePhoto != "" {
		us.removeFile(ctx, user.ProfilePhoto)
	}
	user.ProfilePhoto = obj.Path

	resp := response.UserToResponse(user)
	return &resp, nil
}

// checkUnique reports name, email and phone already taken by a user other than self
func (us *userService) checkUnique(ctx context.Context, self uuid.UUID, name, email string, phone *string) error {
	errs := map[string]string{}

	byEmail, err := us.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find user by email: %w", err)
	}
	if byEmail != nil && byEmail.ID != self {
		errs["email"] = "Email already registered"
	}

	byName, err := us.repo.User.FindByName(ctx, name)
	if err != nil {
		return fmt.Errorf("find user by name: %w", err)
	}
	if byName != nil && byName.ID != self {
		errs["name"] = "Name already taken"
	}

	if phone != nil {
		byPhone, err := us.repo.User.FindByPhone(ctx, *phone)
		if err != nil {
			return fmt.Errorf("find user by phone: %w", err)
		}
		if byPhone != nil && byPhone.ID != self {
			errs["phone"] = "Phone already registered"
		}
	}

	if len(errs) > 0 {
		return apperror.Conflict("User already exists", errs)
	}
	return nil
}

// emailTaken is the conflict for an insert rejected by the users email index
func emailTaken() error {
	return apperror.Conflict("User already exists", map[string]string{"email": "Email already registered"})
}

func (us *userService) findUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User")
	}
	return user, nil
}

func (us *userService) removeFile(ctx context.Context, path string) {
	if err := us.store.Remove(ctx, path); err != nil {
		us.log.Warn("Failed to remove file", zap.Error(err), zap.String("path", path))
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return utils.StringPtr(*s)
}
