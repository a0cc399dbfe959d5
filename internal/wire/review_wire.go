package wire

import (
	"villa-rental/internal/adaptor"
	"villa-rental/pkg/middleware"
	"villa-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	favoriteHandler *adaptor.FavoriteHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/reviews?villa_id= - List reviews, optionally for one villa (public)
	r.Get("/api/reviews", reviewHandler.GetReviews)

	// GET /api/reviews/{id} - Review details (public)
	r.Get("/api/reviews/{id}", reviewHandler.GetReviewByID)

	// ==================== USER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.User(config.JWT.Secret, log))

		// Reviews (author only for update/delete)
		r.Post("/api/reviews", reviewHandler.CreateReview)
		r.Put("/api/reviews/{id}", reviewHandler.UpdateReview)
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)

		// Favorites
		r.Get("/api/favorites", favoriteHandler.GetFavorites)
		r.Post("/api/favorites", favoriteHandler.CreateFavorite)
		r.Delete("/api/favorites/{id}", favoriteHandler.DeleteFavorite)
	})
}
