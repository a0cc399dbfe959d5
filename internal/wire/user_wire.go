package wire

import (
	"villa-rental/internal/adaptor"
	"villa-rental/pkg/middleware"
	"villa-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user and admin account routes with role-based access control
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	adminHandler *adaptor.AdminHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/users - Register new user
	r.Post("/api/users", userHandler.Register)

	// POST /api/admins - Bootstrap admin account
	r.Post("/api/admins", adminHandler.CreateAdmin)

	// ==================== PROTECTED ACCOUNT ROUTES ====================
	// Penyewa dan pemilik villa sama-sama punya profil di tabel users
	r.Route("/api/users/me", func(r chi.Router) {
		r.Use(middleware.Account(config.JWT.Secret, log))

		r.Get("/", userHandler.GetMe)
		r.Put("/password", userHandler.ChangePassword)
		r.Post("/photo", userHandler.UploadPhoto) // multipart "photo"
	})

	// ==================== ADMIN ROUTES ====================
	// Admin user management
	r.With(middleware.Admin(config.JWT.Secret, log)).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.GetUsers)          // GET /api/admin/users?page=1&per_page=10
		r.Get("/{id}", userHandler.GetUserByID)   // GET /api/admin/users/{user-id}
		r.Put("/{id}", userHandler.UpdateUser)    // PUT /api/admin/users/{user-id}
		r.Delete("/{id}", userHandler.DeleteUser) // DELETE /api/admin/users/{user-id}
	})

	// Admin accounts
	r.Group(func(r chi.Router) {
		r.Use(middleware.Admin(config.JWT.Secret, log))

		r.Get("/api/admins", adminHandler.GetAdmins)
		r.Get("/api/admins/{id}", adminHandler.GetAdminByID)
		r.Put("/api/admins/{id}", adminHandler.UpdateAdmin)
		r.Delete("/api/admins/{id}", adminHandler.DeleteAdmin)
	})
}
