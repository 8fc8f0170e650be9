package ports

import (
	"context"

	"github.com/coursemarket/course-api/internal/core/domain"
)

// AuthService covers credential enrollment and verification for both roles.
type AuthService interface {
	// Signup stores a new account for role and returns a freshly issued token.
	Signup(ctx context.Context, role domain.Role, username, password string) (string, error)
	// Authenticate checks username/password against role's store. It does not
	// issue a token; callers do that through a TokenService.
	Authenticate(ctx context.Context, role domain.Role, username, password string) error
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(username string, role domain.Role) (string, error)
	Verify(token string) (*domain.Claims, error)
}
