package adaptor

import (
	"net/http"

	"villa-rental/internal/dto/request"
	"villa-rental/internal/usecase"
	"villa-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// CreateAdmin handles POST /api/admins
func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAdminRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	admin, err := h.service.CreateAdmin(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create admin")
		return
	}

	utils.ResponseCreated(w, "success", admin)
}

func (h *AdminHandler) GetAdmins(w http.ResponseWriter, r *http.Request) {
	req := parsePagination(r)
	admins, err := h.service.GetAdmins(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "get admins")
		return
	}

	utils.ResponseSuccess(w, "success", admins)
}

func (h *AdminHandler) GetAdminByID(w http.ResponseWriter, r *http.Request) {
	admin, err := h.service.GetAdminByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get admin by ID")
		return
	}

	utils.ResponseSuccess(w, "success", admin)
}

func (h *AdminHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateAdminRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	admin, err := h.service.UpdateAdmin(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update admin")
		return
	}

	utils.ResponseSuccess(w, "success", admin)
}

func (h *AdminHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAdmin(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete admin")
		return
	}

	utils.ResponseSuccess(w, "Admin deleted", nil)
}
