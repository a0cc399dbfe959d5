package utils

import (
	"context"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

// Principal is the authenticated caller. It travels in the request context,
// never in the request body.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

type contextKey string

const principalKey contextKey = "principal"

func SetPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal returns the caller stored by the auth middleware for the given role
func GetPrincipal(ctx context.Context, role Role) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	if !ok || p.ID == uuid.Nil || p.Role != role {
		return Principal{}, false
	}
	return p, true
}
