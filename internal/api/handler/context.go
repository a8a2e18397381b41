package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/job-board/internal/api/middleware"
)

// ctxToken extracts the raw bearer token injected by the Auth middleware and
// fast-fails before any service call: presence proves the middleware ran.
func ctxToken(c echo.Context) (string, error) {
	token, _ := c.Get("token").(string)
	if token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return token, nil
}

// bearerOrCookieToken returns whatever credential the request carries, bearer
// header first, session cookie second. Used by logout, which accepts either
// and treats a missing credential as a no-op.
func bearerOrCookieToken(c echo.Context) string {
	if header := c.Request().Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
