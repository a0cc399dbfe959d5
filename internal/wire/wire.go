// internal/wire/wire.go
package wire

import (
	"net/http"

	"villa-rental/internal/adaptor"
	"villa-rental/internal/data/repository"
	"villa-rental/internal/usecase"
	"villa-rental/pkg/gateway"
	"villa-rental/pkg/middleware"
	"villa-rental/pkg/storage"
	"villa-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring menginisialisasi semua dependencies
func Wiring(
	repo *repository.Repository,
	store storage.FileStore,
	gw gateway.PaymentGateway,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	// Initialize services dan handlers
	service := usecase.NewService(repo, store, gw, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, store, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	store storage.FileStore,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	// Apply routes
	wireVilla(r, handler.Villa, config, logger)
	wireBooking(r, handler.Booking, config, logger)
	wirePayment(r, handler.Payment, config, logger)
	wireReview(r, handler.Review, handler.Favorite, config, logger)
	wireUser(r, handler.User, handler.Admin, config, logger)

	// Uploaded photos, only when the store serves its own files (local driver)
	if srv, ok := store.(storage.Server); ok {
		r.Handle("/images/*", http.StripPrefix("/images", srv.Handler()))
	}

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
