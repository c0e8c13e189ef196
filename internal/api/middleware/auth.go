package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-api/internal/api/metrics"
	"github.com/taskhive/task-api/internal/core/domain"
	"github.com/taskhive/task-api/internal/core/ports"
)

// principalKey is the context key the authenticated principal is stored
// under. Handlers read it through Principal rather than touching the key.
const principalKey = "auth.principal"

// TokenValidator is the slice of the token codec the gate needs.
type TokenValidator interface {
	Validate(tokenString string) (string, time.Time, error)
}

// Auth is the per-request access gate: it extracts the bearer token,
// validates it, resolves the principal it names, and attaches the resolved
// user to the request context. Every failure mode — missing or malformed
// header, bad signature, expired token, principal deleted since issuance —
// ends the request with the same 401 so callers learn nothing about which
// check failed.
func Auth(codec TokenValidator, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenValidationsTotal.WithLabelValues("rejected").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenValidationsTotal.WithLabelValues("rejected").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			principalID, _, err := codec.Validate(parts[1])
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("rejected").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), principalID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					// A valid token naming a deleted principal is rejected
					// with the same message as a bad token.
					metrics.TokenValidationsTotal.WithLabelValues("rejected").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				// A store fault is not a rejection: let the central handler
				// log it and answer with a generic 500.
				metrics.TokenValidationsTotal.WithLabelValues("error").Inc()
				return err
			}

			metrics.TokenValidationsTotal.WithLabelValues("success").Inc()
			SetPrincipal(c, user.Sanitized())
			return next(c)
		}
	}
}

// SetPrincipal attaches the authenticated user to the request context.
func SetPrincipal(c echo.Context, user *domain.User) {
	c.Set(principalKey, user)
}

// Principal returns the authenticated user attached by Auth, or nil when the
// middleware did not run for this request.
func Principal(c echo.Context) *domain.User {
	user, _ := c.Get(principalKey).(*domain.User)
	return user
}
