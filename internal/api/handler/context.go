package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-api/internal/api/middleware"
	"github.com/taskhive/task-api/internal/core/domain"
)

// ctxPrincipal extracts the principal attached by the Auth middleware. Its
// presence proves the gate ran; a gated route reached without it is a wiring
// bug and fails closed with 401 rather than proceeding unauthenticated.
func ctxPrincipal(c echo.Context) (*domain.User, error) {
	user := middleware.Principal(c)
	if user == nil || user.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
