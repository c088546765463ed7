package context

import (
	"catalog/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyCurrentUser is the echo.Context key of the authenticated user.
const KeyCurrentUser ContextKey = "current_user"

// SetCurrentUser stores the authenticated user for downstream handlers.
func SetCurrentUser(c echo.Context, user *entity.User) {
	c.Set(string(KeyCurrentUser), user)
}

// CurrentUser returns the authenticated user, if the auth middleware ran.
func CurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(string(KeyCurrentUser)).(*entity.User)

	return user, ok && user != nil
}
