package wire

import (
	"villa-rental/internal/adaptor"
	"villa-rental/pkg/middleware"
	"villa-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVilla(
	r chi.Router,
	villaHandler *adaptor.VillaHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/villas - List villas with filters (public)
	// Query params: ?category=&location=&status=&min_price=&max_price=&search=&page=&per_page=
	r.Get("/api/villas", villaHandler.GetVillas)

	// GET /api/villas/{id} - Villa details with rating summary (public)
	r.Get("/api/villas/{id}", villaHandler.GetVillaByID)

	// GET /api/villas/{id}/photos - Villa photo list (public)
	r.Get("/api/villas/{id}/photos", villaHandler.GetPhotos)

	// ==================== OWNER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Owner(config.JWT.Secret, log))

		r.Get("/api/owner/villas", villaHandler.GetOwnerVillas)
		r.Post("/api/villas", villaHandler.CreateVilla)
		r.Put("/api/villas/{id}", villaHandler.UpdateVilla)
		r.Delete("/api/villas/{id}", villaHandler.DeleteVilla)

		// Photo management (multipart)
		r.Post("/api/villas/{id}/photos", villaHandler.UploadPhotos)
		r.Put("/api/villas/{id}/photos/{photoId}", villaHandler.ReplacePhoto)
		r.Delete("/api/villas/{id}/photos/{photoId}", villaHandler.DeletePhoto)
	})

	// ==================== ADMIN ROUTES ====================
	// PUT /api/admin/villas/{id}/status - Approve or reject a villa
	r.With(middleware.Admin(config.JWT.Secret, log)).
		Put("/api/admin/villas/{id}/status", villaHandler.UpdateVillaStatus)
}
