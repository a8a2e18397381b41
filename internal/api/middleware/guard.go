package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/job-board/internal/api/metrics"
	"github.com/talenthub/job-board/internal/core/domain"
	"github.com/talenthub/job-board/internal/core/service"
)

const loginPath = "/auth/login"

// protectedPrefixes maps each protected path prefix to the role it requires.
var protectedPrefixes = map[string]domain.Role{
	"/employer":   domain.RoleEmployer,
	"/job-seeker": domain.RoleJobSeeker,
}

// authOnlyPaths are meant only for unauthenticated visitors.
var authOnlyPaths = map[string]struct{}{
	"/auth/login":    {},
	"/auth/register": {},
}

// skipPrefixes are never evaluated by the guard. The API carries its own
// bearer auth and the operational endpoints stay public.
var skipPrefixes = []string{"/api", "/metrics", "/health", "/favicon.ico"}

type pathClass int

const (
	classPublic pathClass = iota
	classAuthOnly
	classProtected
)

// Guard is the per-request route guard: a pure function of the request path
// and the session cookie, evaluated before any page renders. It holds no
// state across requests and never caches verification results.
//
// Decision table:
//   - anonymous + protected path: redirect to login with the original path in
//     callbackUrl
//   - anonymous + anything else: pass through
//   - invalid or expired credential: strip the cookie, then apply the
//     anonymous rules
//   - valid credential + auth-only path: redirect to the role's dashboard
//   - valid credential + protected path of the other role: redirect to the
//     credential's own dashboard, silently
//   - otherwise: pass through
func Guard(creds *service.CredentialService, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, prefix := range skipPrefixes {
				if strings.HasPrefix(path, prefix) {
					return next(c)
				}
			}

			class, requiredRole := classify(path)

			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return anonymous(c, next, class, path)
			}

			claims, err := creds.Verify(cookie.Value)
			if err != nil {
				// Dead credential: clear it so subsequent requests arrive
				// clean, then treat this request as anonymous. Never an
				// error page.
				ClearSessionCookie(c, secure)
				metrics.GuardDecisionsTotal.WithLabelValues("strip").Inc()
				return anonymous(c, next, class, path)
			}

			switch class {
			case classAuthOnly:
				metrics.GuardDecisionsTotal.WithLabelValues("role_redirect").Inc()
				return c.Redirect(http.StatusFound, claims.Role.DashboardPath())
			case classProtected:
				if claims.Role != requiredRole {
					metrics.GuardDecisionsTotal.WithLabelValues("role_redirect").Inc()
					return c.Redirect(http.StatusFound, claims.Role.DashboardPath())
				}
			}

			metrics.GuardDecisionsTotal.WithLabelValues("allow").Inc()
			return next(c)
		}
	}
}

func anonymous(c echo.Context, next echo.HandlerFunc, class pathClass, path string) error {
	if class == classProtected {
		metrics.GuardDecisionsTotal.WithLabelValues("login_redirect").Inc()
		return c.Redirect(http.StatusFound, loginPath+"?callbackUrl="+url.QueryEscape(path))
	}
	metrics.GuardDecisionsTotal.WithLabelValues("allow").Inc()
	return next(c)
}

func classify(path string) (pathClass, domain.Role) {
	if _, ok := authOnlyPaths[path]; ok {
		return classAuthOnly, ""
	}
	for prefix, role := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return classProtected, role
		}
	}
	return classPublic, ""
}
