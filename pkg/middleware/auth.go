package middleware

import (
	"net/http"

	"villa-rental/pkg/utils"

	"go.uber.org/zap"
)

const msgNoToken = "Access denied. No token provided"

// credential is a cookie together with the only role its token may carry
type credential struct {
	cookie string
	role   utils.Role
}

// Authenticate memvalidasi JWT dari cookie milik role tertentu dan
// menyimpan Principal ke context. Token hilang atau tidak valid -> 403.
func Authenticate(cookieName string, role utils.Role, secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return authenticate(secret, logger, credential{cookieName, role})
}

// authenticate tries each credential in order and the first valid token wins.
// When none is valid the most specific failure is reported.
func authenticate(secret string, logger *zap.Logger, accepted ...credential) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reason := msgNoToken
			for _, c := range accepted {
				principal, failure := c.read(r, secret, logger)
				if failure == "" {
					ctx := utils.SetPrincipal(r.Context(), principal)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				if failure != msgNoToken {
					reason = failure
				}
			}
			utils.ResponseForbidden(w, reason)
		})
	}
}

// read returns the principal in c's cookie, or the reason it was rejected
func (c credential) read(r *http.Request, secret string, logger *zap.Logger) (utils.Principal, string) {
	cookie, err := r.Cookie(c.cookie)
	if err != nil || cookie.Value == "" {
		return utils.Principal{}, msgNoToken
	}

	principal, err := utils.ParseToken(secret, cookie.Value)
	if err != nil {
		logger.Warn("Invalid token",
			zap.String("cookie", c.cookie),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		return utils.Principal{}, "Invalid token"
	}

	// Token role lain tidak boleh dipakai di cookie ini
	if principal.Role != c.role {
		logger.Warn("Role mismatch",
			zap.String("cookie", c.cookie),
			zap.String("role", string(principal.Role)),
			zap.String("path", r.URL.Path))
		return utils.Principal{}, "Invalid token"
	}

	return principal, ""
}

// Owner - middleware untuk pemilik villa
func Owner(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return Authenticate(utils.CookieOwner, utils.RoleOwner, secret, logger)
}

// Admin - middleware untuk admin
func Admin(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return Authenticate(utils.CookieAdmin, utils.RoleAdmin, secret, logger)
}

// User - middleware untuk penyewa
func User(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return Authenticate(utils.CookieUser, utils.RoleUser, secret, logger)
}

// Account - penyewa atau pemilik villa, keduanya tersimpan di tabel users
func Account(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return authenticate(secret, logger,
		credential{utils.CookieUser, utils.RoleUser},
		credential{utils.CookieOwner, utils.RoleOwner},
	)
}
