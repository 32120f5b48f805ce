package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"jabRental/pkg/logger"
	jsonres "jabRental/pkg/response"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// SessionIDKey is the echo context key holding the authenticated session id.
const SessionIDKey = "session_id"

// SessionAuthenticator resolves a bearer token to a session id.
type SessionAuthenticator interface {
	Authenticate(token string) (string, error)
}

// SessionMiddleware requires "Authorization: Bearer <session token>" and
// stores the session id under SessionIDKey.
func SessionMiddleware(sessions SessionAuthenticator) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: SessionIDKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return sessions.Authenticate(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extractErr *echojwt.TokenExtractionError
			if errors.As(err, &extractErr) {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing session token", nil,
				))
			}

			logger.Warn("Invalid session token", err)
			return c.JSON(http.StatusUnauthorized, jsonres.Error(
				"UNAUTHORIZED", "Invalid or expired session token", nil,
			))
		},
	})
}

// SessionID returns the session id set by SessionMiddleware.
func SessionID(c echo.Context) (string, bool) {
	id, ok := c.Get(SessionIDKey).(string)
	return id, ok && id != ""
}

// AdminKey guards catalog maintenance routes with the X-Admin-Key header.
// An empty key disables those routes.
func AdminKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if key == "" {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Admin access disabled", nil,
				))
			}

			given := c.Request().Header.Get("X-Admin-Key")
			if subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Admin access required", nil,
				))
			}

			return next(c)
		}
	}
}
