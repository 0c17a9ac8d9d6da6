package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/userhub/user-management-api/internal/api/metrics"
	"github.com/userhub/user-management-api/internal/core/domain"
)

// UserContextKey is the Echo context key under which Auth stores the
// resolved *domain.User.
const UserContextKey = "current_user"

// IdentityResolver abstracts the token-to-user resolution performed by the
// core (validate token, re-fetch user from the directory).
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// Auth extracts the bearer token, resolves the caller through the directory
// and rejects inactive accounts. The resolved user is stored in the context
// for downstream handlers. All token failures surface as the same 401.
func Auth(resolver IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing_header").Inc()
				return domain.ErrUnauthorized
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenRejectionsTotal.WithLabelValues("bad_header").Inc()
				return domain.ErrUnauthorized
			}

			user, err := resolver.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					metrics.TokenRejectionsTotal.WithLabelValues("unauthorized").Inc()
				}
				return err
			}

			if !user.IsActive {
				metrics.TokenRejectionsTotal.WithLabelValues("inactive").Inc()
				return domain.ErrAccountInactive
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}
