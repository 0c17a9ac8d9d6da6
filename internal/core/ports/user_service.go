package ports

import (
	"context"

	"github.com/userhub/user-management-api/internal/core/domain"
)

// UpdateUserInput is the partial-update payload. Nil fields are left
// unchanged. A non-nil Password is re-hashed before persistence.
type UpdateUserInput struct {
	Username *string
	Email    *string
	IsActive *bool
	Role     *domain.Role
	Password *string
}

// UserService exposes the protected user operations. Every method takes the
// acting (already resolved and active) user and enforces ownership/role
// policy before touching the directory.
type UserService interface {
	List(ctx context.Context, actor *domain.User, skip, limit int64) ([]domain.User, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.User, error)
	Update(ctx context.Context, actor *domain.User, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}
