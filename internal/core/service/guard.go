package service

import (
	"context"
	"errors"

	"github.com/userhub/user-management-api/internal/core/domain"
	"github.com/userhub/user-management-api/internal/core/ports"
	"github.com/userhub/user-management-api/internal/core/security"
)

// IdentityResolver turns a bearer token into the current user. The token is
// trusted for identity only; the directory is re-consulted on every call so
// a deactivation or role change after issuance takes effect immediately.
type IdentityResolver struct {
	tokens *security.TokenCodec
	repo   ports.UserRepository
}

func NewIdentityResolver(tokens *security.TokenCodec, repo ports.UserRepository) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, repo: repo}
}

// Resolve validates raw and fetches the user it identifies. Every token
// failure and a missing user collapse into domain.ErrUnauthorized so the
// caller cannot tell a bad token from a deleted account.
func (r *IdentityResolver) Resolve(ctx context.Context, raw string) (*domain.User, error) {
	claims, err := r.tokens.Validate(raw)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := r.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// RequireActive rejects deactivated accounts.
func RequireActive(u *domain.User) error {
	if !u.IsActive {
		return domain.ErrAccountInactive
	}
	return nil
}

// RequireAdmin rejects callers without the admin role.
func RequireAdmin(u *domain.User) error {
	if u.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}

// RequireSelfOrAdmin allows admins and owners of the target record.
func RequireSelfOrAdmin(u *domain.User, targetID string) error {
	if u.ID != targetID && u.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}
