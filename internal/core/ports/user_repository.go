package ports

import (
	"context"

	"github.com/userhub/user-management-api/internal/core/domain"
)

// UserPatch describes a partial update. Nil fields are left unchanged; the
// repository always refreshes updated_at.
type UserPatch struct {
	Username     *string
	Email        *string
	IsActive     *bool
	Role         *domain.Role
	PasswordHash *string
}

// UserRepository is the persistence contract the core consumes. Absent
// records surface domain.ErrUserNotFound; duplicate emails surface
// domain.ErrEmailTaken. Any other failure propagates unchanged.
type UserRepository interface {
	// Create persists a new user. Email uniqueness is enforced by the store
	// itself (unique index), not only by the caller's pre-check.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns up to limit users in creation order, skipping the first
	// skip. A limit <= 0 yields an empty page.
	List(ctx context.Context, skip, limit int64) ([]domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	// Delete reports true only if a record was actually removed.
	Delete(ctx context.Context, id string) (bool, error)
}
