package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/userhub/user-management-api/internal/core/domain"
	"github.com/userhub/user-management-api/internal/core/service"
)

// RequireAdmin rejects callers whose resolved user is not an admin. Must
// run after Auth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(UserContextKey).(*domain.User)
			if !ok {
				return domain.ErrUnauthorized
			}
			if err := service.RequireAdmin(user); err != nil {
				return err
			}
			return next(c)
		}
	}
}
