package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the single signed credential cookie shared by the auth
// endpoints (writer) and the route guard (reader).
const SessionCookieName = "jb_session"

// DeviceCookieName identifies the device's durable credential slot. It is
// not a credential itself and carries no auth weight.
const DeviceCookieName = "jb_device"

const sessionCookieMaxAge = 24 * time.Hour

// SetSessionCookie writes the credential cookie: HTTP-only, SameSite=Lax,
// path /, 24-hour max-age, Secure outside development.
func SetSessionCookie(c echo.Context, token string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the credential cookie immediately, with the
// same attributes SetSessionCookie wrote it with.
func ClearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
