package adaptor

import (
	"net/http"
	"strings"

	"villa-rental/internal/dto/request"
	"villa-rental/internal/usecase"
	"villa-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VillaHandler struct {
	service usecase.VillaService
	log     *zap.Logger
}

func NewVillaHandler(service usecase.VillaService, log *zap.Logger) *VillaHandler {
	return &VillaHandler{
		service: service,
		log:     log.With(zap.String("handler", "villa")),
	}
}

// GetVillas handles GET /api/villas (public)
func (h *VillaHandler) GetVillas(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := &request.VillaQuery{
		PaginatedRequest: parsePagination(r),
		Category:         strings.TrimSpace(query.Get("category")),
		Location:         strings.TrimSpace(query.Get("location")),
		Status:           strings.TrimSpace(query.Get("status")),
		MinPrice:         utils.ParseFloatPtr(query.Get("min_price")),
		MaxPrice:         utils.ParseFloatPtr(query.Get("max_price")),
		Search:           strings.TrimSpace(query.Get("search")),
	}

	villas, err := h.service.GetVillas(r.Context(), q)
	if err != nil {
		handleServiceError(w, h.log, err, "get villas")
		return
	}

	utils.ResponseSuccess(w, "success", villas)
}

// GetVillaByID handles GET /api/villas/{id} (public)
func (h *VillaHandler) GetVillaByID(w http.ResponseWriter, r *http.Request) {
	villa, err := h.service.GetVillaByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get villa by ID")
		return
	}

	utils.ResponseSuccess(w, "success", villa)
}

// GetPhotos handles GET /api/villas/{id}/photos (public)
func (h *VillaHandler) GetPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.service.GetPhotos(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get villa photos")
		return
	}

	utils.ResponseSuccess(w, "success", photos)
}

// ==================== OWNER METHODS ====================

// GetOwnerVillas handles GET /api/owner/villas (owner only)
func (h *VillaHandler) GetOwnerVillas(w http.ResponseWriter, r *http.Request) {
	owner, ok := principal(w, r, utils.RoleOwner)
	if !ok {
		return
	}

	req := parsePagination(r)
	villas, err := h.service.GetOwnerVillas(r.Context(), owner, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "get owner villas")
		return
	}

	utils.ResponseSuccess(w, "success", villas)
}

// CreateVilla handles POST /api/villas (owner only)
func (h *VillaHandler) CreateVilla(w http.ResponseWriter, r *http.Request) {
	owner, ok := principal(w, r, utils.RoleOwner)
	if !ok {
		return
	}

	var req request.CreateVillaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	villa, err := h.service.CreateVilla(r.Context(), owner, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create villa")
		return
	}

	utils.ResponseCreated(w, "Villa created, waiting for admin approval", villa)
}

// UpdateVilla handles PUT /api/villas/{id} (owner only)
func (h *VillaHandler) UpdateVilla(w http.ResponseWriter, r *http.Request) {
	owner, ok := principal(w, r, utils.RoleOwner)
	if !ok {
		return
	}

	var req request.UpdateVillaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	villa, err := h.service.UpdateVilla(r.Context(), owner, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update villa")
		return
	}

	utils.ResponseSuccess(w, "Villa updated, waiting for admin approval", villa)
}

// DeleteVilla handles DELETE /api/villas/{id} (owner only)
func (h *VillaHandler) DeleteVilla(w http.ResponseWriter, r *http.Request) {
	owner, ok := principal(w, r, utils.RoleOwner)
	if !ok {
		return
	}

	if err := h.service.DeleteVilla(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete villa")
		return
	}

	utils.ResponseSuccess(w, "Villa deleted", nil)
}

// UploadPhotos handles POST /api/villas/{id}/photos (owner only, multipart "photos")
func (h *VillaHandler) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	owner, ok := principal(w, r, utils.RoleOwner)
	if !ok {
		return
	}

	files, err := readUploads(w, r, "photos", maxPhotosPerUpload)
	if tooLarge(w, err) {
		return
	}
	if err != nil {
		h.log.Warn("Invalid photo upload", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	photos, err := h.service.UploadPhotos(r.Context(), owner, chi.URLParam(r, "id"), files)
	if err != nil {
		handleServiceError(w, h.log, err, "upload villa photos")
		return
	}

	utils.ResponseCreated(w, "success", photos)
}

// ReplacePhoto handles PUT /api/villas/{id}/photos/{photoId} (owner only, multipart "photo")
func (h *VillaHandler) ReplacePhoto(w http.ResponseWriter, r *http.Request) {
	owner, ok := principal(w, r, utils.RoleOwner)
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

	photo, err := h.service.ReplacePhoto(r.Context(), owner, chi.URLParam(r, "id"), chi.URLParam(r, "photoId"), files[0])
	if err != nil {
		handleServiceError(w, h.log, err, "replace villa photo")
		return
	}

	utils.ResponseSuccess(w, "success", photo)
}

// DeletePhoto handles DELETE /api/villas/{id}/photos/{photoId} (owner only)
func (h *VillaHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	owner, ok := principal(w, r, utils.RoleOwner)
	if !ok {
		return
	}

	if err := h.service.DeletePhoto(r.Context(), owner, chi.URLParam(r, "id"), chi.URLParam(r, "photoId")); err != nil {
		handleServiceError(w, h.log, err, "delete villa photo")
		return
	}

	utils.ResponseSuccess(w, "Photo deleted", nil)
}

// ==================== ADMIN METHODS ====================

// UpdateVillaStatus handles PUT /api/admin/villas/{id}/status (admin only)
func (h *VillaHandler) UpdateVillaStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateVillaStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	villa, err := h.service.UpdateVillaStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update villa status")
		return
	}

	utils.ResponseSuccess(w, "success", villa)
}
