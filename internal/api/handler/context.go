package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/userhub/user-management-api/internal/api/middleware"
	"github.com/userhub/user-management-api/internal/core/domain"
)

// currentUser extracts the user resolved by the Auth middleware. Its absence
// means the middleware did not run; treat that as an unauthenticated call
// rather than an internal fault.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
