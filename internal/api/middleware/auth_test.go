package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/talenthub/job-board/internal/core/domain"
	"github.com/talenthub/job-board/internal/core/service"
)

func testCreds() *service.CredentialService {
	return service.NewCredentialService("secret", time.Hour)
}

func issueFor(t *testing.T, creds *service.CredentialService, role domain.Role) string {
	t.Helper()
	token, _, err := creds.Issue(&domain.Identity{ID: "u1", Email: "alice@a.test", Role: role})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// expiredToken hand-signs a credential whose expiry is already in the past.
func expiredToken(t *testing.T, secret string, role domain.Role) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   "u1",
		"email": "alice@a.test",
		"role":  string(role),
		"iat":   time.Now().Add(-2 * time.Hour).Unix(),
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}
	return signed
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	creds := testCreds()
	signed := issueFor(t, creds, domain.RoleEmployer)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(creds)
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get("token") != signed {
			t.Fatalf("token not set")
		}
		if c.Get("email") != "alice@a.test" {
			t.Fatalf("email not set")
		}
		if c.Get("role") != string(domain.RoleEmployer) {
			t.Fatalf("role not set")
		}
		if c.Get("subject") != "u1" {
			t.Fatalf("subject not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(testCreds())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(testCreds())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	e := echo.New()
	signed := expiredToken(t, "secret", domain.RoleJobSeeker)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(testCreds())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
