package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hostelhub/hostel-api/internal/api/metrics"
	"github.com/hostelhub/hostel-api/internal/core/domain"
	"github.com/hostelhub/hostel-api/internal/core/ports"
	"github.com/hostelhub/hostel-api/internal/core/service"
)

// AuthTokenCookie is the HTTP-only cookie carrying the session token.
const AuthTokenCookie = "authToken"

// UserKey is the echo context key under which the resolved user is stored.
const UserKey = "user"

// Auth authenticates each request in four steps: extract a token (cookie
// first, bearer header fallback), verify signature and expiry, resolve the
// user record by the token subject, and attach it to the request context.
//
// The outcomes stay distinct on purpose: a missing credential is 401, a
// present-but-invalid one is 403, and a token whose subject no longer
// exists is 404. Role is always read from the resolved record, never from
// token claims.
func Auth(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized. No token provided.")
			}

			subject, err := service.ParseSubject(token, jwtSecret)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "Invalid or expired token.")
			}

			user, err := users.FindByID(c.Request().Context(), subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.TokenVerificationsTotal.WithLabelValues("user_gone").Inc()
					return echo.NewHTTPError(http.StatusNotFound, "User not found.")
				}
				return err
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// extractToken prefers the HTTP-only cookie; the Authorization header is
// the fallback for clients that cannot carry cookies. When both are present
// the cookie wins and the header is ignored.
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(AuthTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// CurrentUser returns the user attached by Auth, or nil when the
// middleware has not run on this route.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(UserKey).(*domain.User)
	return user
}
