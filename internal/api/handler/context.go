package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/inventory-api/internal/core/domain"
)

// ContextKeyUser is where the Auth middleware stores the resolved *domain.User.
const ContextKeyUser = "user"

// currentUser returns the user injected by the Auth middleware. A missing
// value means the route was registered without the middleware.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(ContextKeyUser).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
