package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/userhub/user-management-api/internal/core/domain"
	"github.com/userhub/user-management-api/internal/core/ports"
	"github.com/userhub/user-management-api/internal/core/security"
)

// UserService implements the protected directory operations. Policy checks
// run before any repository call.
type UserService struct {
	repo   ports.UserRepository
	hasher security.PasswordHasher
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher security.PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, log: log}
}

// List returns a page of users in creation order. Admin only.
func (s *UserService) List(ctx context.Context, actor *domain.User, skip, limit int64) ([]domain.User, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, skip, limit)
}

// Get returns a single user. Callers may read their own record; admins may
// read any.
func (s *UserService) Get(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	if err := RequireSelfOrAdmin(actor, id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update. Only admins may change roles; the check
// runs before any persistence call. A supplied password is re-hashed.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if err := RequireSelfOrAdmin(actor, id); err != nil {
		return nil, err
	}
	if in.Role != nil && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if in.Role != nil && !in.Role.Valid() {
		return nil, fmt.Errorf("update: unknown role %q", *in.Role)
	}

	patch := ports.UserPatch{
		Username: in.Username,
		Email:    in.Email,
		IsActive: in.IsActive,
		Role:     in.Role,
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Str("actor_id", actor.ID).Msg("user updated")
	return updated, nil
}

// Delete removes a user permanently. Admin only, and admins cannot delete
// their own account.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	if actor.ID == id {
		return domain.ErrSelfDeletion
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrUserNotFound
	}

	s.log.Info().Str("user_id", id).Str("actor_id", actor.ID).Msg("user deleted")
	return nil
}
