package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/todo-list/internal/api/session"
)

// UserIDKey is the echo.Context key holding the authenticated user id.
const UserIDKey = "user_id"

// RequireSession lets the request through only when sessions reports an
// authenticated user, whose id is stored under UserIDKey. Anonymous clients
// are redirected to the login page.
func RequireSession(sessions session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := sessions.CurrentUser(c)
			if !ok {
				return c.Redirect(http.StatusFound, "/login")
			}
			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the id stored by RequireSession.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(UserIDKey).(uint)
	return id, ok && id != 0
}
