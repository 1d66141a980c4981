package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kestrelhq/ops-backend-go/internal/domain/auth"
	"github.com/kestrelhq/ops-backend-go/internal/domain/user"
)

// actor is the authenticated identity behind a request. Handlers resolve
// it once and thread it into DTOs; services never read request state.
type actor struct {
	ID    string
	Email string
	Role  user.Role
}

func (a actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

func actorFromRequest(r *http.Request) (actor, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return actor{}, auth.ErrInvalidToken
	}

	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return actor{}, auth.ErrInvalidToken
	}

	a := actor{ID: id}
	if email, ok := claims["email"].(string); ok {
		a.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		a.Role = user.Role(role)
	}
	return a, nil
}
