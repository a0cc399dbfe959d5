package adaptor

import (
	"net/http"

	"villa-rental/internal/dto/request"
	"villa-rental/internal/usecase"
	"villa-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FavoriteHandler struct {
	service usecase.FavoriteService
	log     *zap.Logger
}

func NewFavoriteHandler(service usecase.FavoriteService, log *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
		log:     log.With(zap.String("handler", "favorite")),
	}
}

// GetFavorites handles GET /api/favorites
func (h *FavoriteHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r, utils.RoleUser)
	if !ok {
		return
	}

	favorites, err := h.service.GetFavorites(r.Context(), user)
	if err != nil {
		handleServiceError(w, h.log, err, "get favorites")
		return
	}

	utils.ResponseSuccess(w, "success", favorites)
}

// CreateFavorite handles POST /api/favorites
func (h *FavoriteHandler) CreateFavorite(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r, utils.RoleUser)
	if !ok {
		return
	}

	var req request.CreateFavoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	favorite, err := h.service.CreateFavorite(r.Context(), user, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create favorite")
		return
	}

	utils.ResponseCreated(w, "success", favorite)
}

// DeleteFavorite handles DELETE /api/favorites/{id}
func (h *FavoriteHandler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r, utils.RoleUser)
	if !ok {
		return
	}

	if err := h.service.DeleteFavorite(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete favorite")
		return
	}

	utils.ResponseSuccess(w, "Favorite removed", nil)
}
