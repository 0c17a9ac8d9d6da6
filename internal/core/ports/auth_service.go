package ports

import (
	"context"

	"github.com/userhub/user-management-api/internal/core/domain"
)

// RegisterInput carries the candidate fields for a new account. An empty
// Role defaults to domain.RoleUser.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login exchanges an email/password pair for a signed access token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
