package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/userhub/user-management-api/internal/core/domain"
	"github.com/userhub/user-management-api/internal/core/security"
)

func seedUser(repo *stubUserRepo, id string, role domain.Role, active bool) *domain.User {
	now := time.Now().UTC()
	u := &domain.User{
		ID:        id,
		Username:  "user-" + id,
		Email:     id + "@example.com",
		IsActive:  active,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, _ := repo.Create(context.Background(), u)
	return created
}

func TestIdentityResolver_Resolve(t *testing.T) {
	repo := newStubUserRepo()
	codec := security.NewTokenCodec("secret", time.Hour)
	resolver := NewIdentityResolver(codec, repo)

	user := seedUser(repo, "64f000000000000000000001", domain.RoleUser, true)
	token, err := codec.Issue(user, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	resolved, err := resolver.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("resolved wrong user: %s", resolved.ID)
	}
}

func TestIdentityResolver_BadToken(t *testing.T) {
	repo := newStubUserRepo()
	codec := security.NewTokenCodec("secret", time.Hour)
	resolver := NewIdentityResolver(codec, repo)

	if _, err := resolver.Resolve(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

// A valid token whose subject no longer exists must be indistinguishable
// from an invalid token.
func TestIdentityResolver_UserGone(t *testing.T) {
	repo := newStubUserRepo()
	codec := security.NewTokenCodec("secret", time.Hour)
	resolver := NewIdentityResolver(codec, repo)

	ghost := &domain.User{ID: "64f000000000000000000099", Email: "ghost@example.com", Role: domain.RoleUser}
	token, err := codec.Issue(ghost, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, goneErr := resolver.Resolve(context.Background(), token)
	_, badErr := resolver.Resolve(context.Background(), "not-a-token")
	if !errors.Is(goneErr, domain.ErrUnauthorized) || !errors.Is(badErr, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for both, got %v / %v", goneErr, badErr)
	}
}

func TestGuards(t *testing.T) {
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin, IsActive: true}
	regular := &domain.User{ID: "u1", Role: domain.RoleUser, IsActive: true}
	inactive := &domain.User{ID: "u2", Role: domain.RoleUser, IsActive: false}

	if err := RequireActive(regular); err != nil {
		t.Fatalf("active user rejected: %v", err)
	}
	if err := RequireActive(inactive); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}

	if err := RequireAdmin(admin); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
	if err := RequireAdmin(regular); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if err := RequireSelfOrAdmin(regular, "u1"); err != nil {
		t.Fatalf("self access rejected: %v", err)
	}
	if err := RequireSelfOrAdmin(admin, "u1"); err != nil {
		t.Fatalf("admin access rejected: %v", err)
	}
	if err := RequireSelfOrAdmin(regular, "someone-else"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
