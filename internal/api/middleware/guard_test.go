package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/job-board/internal/core/domain"
)

func runGuard(t *testing.T, path, cookie string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	passed := false
	handler := Guard(testCreds(), false)(func(c echo.Context) error {
		passed = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("guard returned error: %v", err)
	}
	return rec, passed
}

func TestGuard_NoCookie_ProtectedPathRedirectsToLogin(t *testing.T) {
	rec, passed := runGuard(t, "/employer/dashboard", "")

	if passed {
		t.Fatalf("protected page must not render for anonymous visitors")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	want := "/auth/login?callbackUrl=%2Femployer%2Fdashboard"
	if got := rec.Header().Get("Location"); got != want {
		t.Fatalf("expected redirect to %q, got %q", want, got)
	}
}

func TestGuard_NoCookie_PublicAndAuthOnlyPassThrough(t *testing.T) {
	for _, path := range []string{"/", "/jobs", "/auth/login", "/auth/register"} {
		rec, passed := runGuard(t, path, "")
		if !passed || rec.Code != http.StatusOK {
			t.Fatalf("expected %s to pass through, got %d", path, rec.Code)
		}
	}
}

func TestGuard_ValidEmployer_AuthOnlyRedirectsToEmployerHome(t *testing.T) {
	creds := testCreds()
	token := issueFor(t, creds, domain.RoleEmployer)

	rec, passed := runGuard(t, "/auth/login", token)

	if passed {
		t.Fatalf("authenticated visitor must not see the login page")
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/employer/dashboard" {
		t.Fatalf("expected redirect to employer dashboard, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGuard_ValidJobSeeker_AuthOnlyRedirectsToJobSeekerHome(t *testing.T) {
	token := issueFor(t, testCreds(), domain.RoleJobSeeker)

	rec, _ := runGuard(t, "/auth/register", token)

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/job-seeker/dashboard" {
		t.Fatalf("expected redirect to job-seeker dashboard, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGuard_CrossRole_SilentlyRedirectsHome(t *testing.T) {
	token := issueFor(t, testCreds(), domain.RoleJobSeeker)

	rec, passed := runGuard(t, "/employer/dashboard", token)

	if passed {
		t.Fatalf("cross-role access must not render the page")
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/job-seeker/dashboard" {
		t.Fatalf("expected silent redirect to own dashboard, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGuard_MatchingRole_PassesThrough(t *testing.T) {
	token := issueFor(t, testCreds(), domain.RoleEmployer)

	rec, passed := runGuard(t, "/employer/jobs/42", token)

	if !passed || rec.Code != http.StatusOK {
		t.Fatalf("expected matching role to pass, got %d", rec.Code)
	}
}

func TestGuard_ValidCredential_PublicPathPassesThrough(t *testing.T) {
	token := issueFor(t, testCreds(), domain.RoleEmployer)

	rec, passed := runGuard(t, "/jobs", token)

	if !passed || rec.Code != http.StatusOK {
		t.Fatalf("expected public path to pass, got %d", rec.Code)
	}
}

func TestGuard_InvalidCredential_StripsCookie(t *testing.T) {
	rec, passed := runGuard(t, "/jobs", "not-a-token")

	if !passed {
		t.Fatalf("public path must pass through as anonymous")
	}
	stripped := false
	for _, sc := range rec.Result().Cookies() {
		if sc.Name == SessionCookieName && sc.MaxAge < 0 {
			stripped = true
		}
	}
	if !stripped {
		t.Fatalf("expected the dead credential cookie to be cleared")
	}
}

func TestGuard_ExpiredCredential_ProtectedPathTreatedAsAnonymous(t *testing.T) {
	token := expiredToken(t, "secret", domain.RoleEmployer)

	rec, passed := runGuard(t, "/employer/dashboard", token)

	if passed {
		t.Fatalf("expired credential must not open a protected page")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected login redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/auth/login?callbackUrl=") {
		t.Fatalf("expected login redirect with callback, got %q", loc)
	}
}

func TestGuard_SkipsAPIAndOperationalPaths(t *testing.T) {
	// A garbage cookie must not be touched on skipped prefixes: the API has
	// its own bearer auth and never reads it.
	for _, path := range []string{"/api/auth/me", "/metrics", "/health"} {
		rec, passed := runGuard(t, path, "garbage")
		if !passed {
			t.Fatalf("expected %s to bypass the guard", path)
		}
		for _, sc := range rec.Result().Cookies() {
			if sc.Name == SessionCookieName {
				t.Fatalf("guard must not rewrite cookies on %s", path)
			}
		}
	}
}
