package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"villa-rental/internal/dto/request"
	"villa-rental/internal/usecase"
	"villa-rental/pkg/apperror"
	"villa-rental/pkg/storage"
	"villa-rental/pkg/utils"

	"go.uber.org/zap"
)

const (
	// maxUploadMemory caps the multipart form kept in memory; the rest spills to disk
	maxUploadMemory = 32 << 20

	maxJSONBody = 1 << 20

	// room for multipart boundaries and the over-limit byte of each file
	uploadSlack = 1 << 20

	// maxPhotosPerUpload sizes the body cap of a multi-file upload
	maxPhotosPerUpload = 10
)

type Handler struct {
	Villa    *VillaHandler
	Booking  *BookingHandler
	Payment  *PaymentHandler
	Review   *ReviewHandler
	Favorite *FavoriteHandler
	User     *UserHandler
	Admin    *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Villa:    NewVillaHandler(service.Villa, log),
		Booking:  NewBookingHandler(service.Booking, log),
		Payment:  NewPaymentHandler(service.Payment, log),
		Review:   NewReviewHandler(service.Review, log),
		Favorite: NewFavoriteHandler(service.Favorite, log),
		User:     NewUserHandler(service.User, log),
		Admin:    NewAdminHandler(service.Admin, log),
	}
}

// handleServiceError maps service error kinds to HTTP responses
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	switch appErr.Kind {
	case apperror.KindValidation:
		log.Warn(operation+" validation failed",
			zap.String("errors", utils.FormatValidationErrors(appErr.Fields)),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, appErr.Message, appErr.Fields)

	case apperror.KindConflict:
		log.Warn(operation+" failed - conflict",
			zap.Any("errors", appErr.Fields),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, appErr.Message, appErr.Fields)

	case apperror.KindNotFound:
		log.Warn(operation+" failed - not found",
			zap.String("message", appErr.Message),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, appErr.Message)

	case apperror.KindAuth:
		log.Warn(operation+" failed - forbidden",
			zap.String("message", appErr.Message),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, appErr.Message)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, appErr.Message)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if !tooLarge(w, err) {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
		}
		return false
	}
	return true
}

// tooLarge answers 413 when err came from a body cap
func tooLarge(w http.ResponseWriter, err error) bool {
	var maxErr *http.MaxBytesError
	if !errors.As(err, &maxErr) {
		return false
	}
	utils.ResponseTooLarge(w, fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit))
	return true
}

func parsePagination(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}

// principal reads the caller stored by the auth middleware
func principal(w http.ResponseWriter, r *http.Request, role utils.Role) (utils.Principal, bool) {
	p, ok := utils.GetPrincipal(r.Context(), role)
	if !ok {
		utils.ResponseForbidden(w, "Access denied. No token provided")
	}
	return p, ok
}

// account reads a tenant or an owner, the two roles with a users row
func account(w http.ResponseWriter, r *http.Request) (utils.Principal, bool) {
	if p, ok := utils.GetPrincipal(r.Context(), utils.RoleUser); ok {
		return p, true
	}
	return principal(w, r, utils.RoleOwner)
}

// readUploads loads every file sent under field. The whole body is capped at
// maxFiles images. Each read stops one byte past the size limit so
// DetectImage can still report the file as too large.
func readUploads(w http.ResponseWriter, r *http.Request, field string, maxFiles int) ([]usecase.FileUpload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxFiles)*(storage.MaxImageSize+1)+uploadSlack)
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	headers := r.MultipartForm.File[field]
	files := make([]usecase.FileUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, storage.MaxImageSize+1))
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		files = append(files, usecase.FileUpload{Name: fh.Filename, Data: data})
	}
	return files, nil
}
