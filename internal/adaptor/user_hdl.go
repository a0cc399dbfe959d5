package adaptor

import (
	"net/http"

	"villa-rental/internal/dto/request"
	"villa-rental/internal/usecase"
	"villa-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// Register handles POST /api/users (public)
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register user")
		return
	}

	utils.ResponseCreated(w, "Registration successful", user)
}

// ==================== USER METHODS ====================

// GetMe handles GET /api/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := account(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetMe(r.Context(), user)
	if err != nil {
		handleServiceError(w, h.log, err, "get current user")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}

// ChangePassword handles PUT /api/users/me/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := account(w, r)
	if !ok {
		return
	}

	var req request.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), user, &req); err != nil {
		handleServiceError(w, h.log, err, "change password")
		return
	}

	utils.ResponseSuccess(w, "Password updated", nil)
}

// UploadPhoto handles POST /api/users/me/photo (multipart "photo")
func (h *UserHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	user, ok := account(w, r)
	if !ok {
		return
	}

	files, err := readUploads(w, r, "photo", 1)
	if tooLarge(w, err) {
		return
	}
	if err != nil || len(files) != 1 {
		utils.ResponseBadRequest(w, "Exactly one photo is required", map[string]string{
			"photo": "This field is required",
		})
		return
	}

	profile, err := h.service.UploadProfilePhoto(r.Context(), user, files[0])
	if err != nil {
		handleServiceError(w, h.log, err, "upload profile photo")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}

// ==================== ADMIN METHODS ====================

// GetUsers handles GET /api/admin/users
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	req := parsePagination(r)
	users, err := h.service.GetUsers(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "get users")
		return
	}

	utils.ResponseSuccess(w, "success", users)
}

// GetUserByID handles GET /api/admin/users/{id}
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get user by ID")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// UpdateUser handles PUT /api/admin/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.UpdateUser(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// DeleteUser handles DELETE /api/admin/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted", nil)
}
