package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/job-board/internal/api/metrics"
	"github.com/talenthub/job-board/internal/api/middleware"
	"github.com/talenthub/job-board/internal/core/domain"
	"github.com/talenthub/job-board/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	audit       ports.AuditSink
	secure      bool
}

func NewAuthHandler(authService ports.AuthService, audit ports.AuditSink, secure bool) *AuthHandler {
	return &AuthHandler{authService: authService, audit: audit, secure: secure}
}

// Register creates a new account and issues a credential.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "role must be job-seeker or employer"})
	}

	token, identity, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		Company:   req.Company,
		Title:     req.Title,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrUserExists):
			status = http.StatusConflict
		case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnknownRole):
			status = http.StatusBadRequest
		}
		metrics.RegistrationsTotal.WithLabelValues(resultLabel(status)).Inc()
		return c.JSON(status, errorResponse{Error: err.Error()})
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	h.record(c, domain.AuthEventRegister, identity)
	return c.JSON(http.StatusCreated, authResponse{Token: token, User: identity})
}

// Login authenticates a user, returns the credential and sets the session
// cookie read by the route guard.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	token, identity, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		msg := "Invalid email or password"
		switch {
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrInvalidCredentials):
			// Same answer for both: do not reveal which accounts exist.
		default:
			status = http.StatusInternalServerError
			msg = "internal server error"
		}
		metrics.LoginsTotal.WithLabelValues(resultLabel(status)).Inc()
		return c.JSON(status, errorResponse{Error: msg})
	}

	middleware.SetSessionCookie(c, token, h.secure)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.record(c, domain.AuthEventLogin, identity)
	return c.JSON(http.StatusOK, authResponse{Token: token, User: identity})
}

// Me resolves the bearer credential to its identity. Requires the Auth
// middleware.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	identity, err := h.authService.Me(c.Request().Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenRevoked):
			metrics.SessionRestoresTotal.WithLabelValues("revoked").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUserNotFound):
			metrics.SessionRestoresTotal.WithLabelValues("invalid").Inc()
		default:
			metrics.SessionRestoresTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		}
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid or expired session"})
	}

	metrics.SessionRestoresTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, meResponse{User: identity})
}

// Logout revokes the presented credential and clears the session cookie.
// Always answers 200: clearing an already-dead session is not an error.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := bearerOrCookieToken(c)
	if token != "" {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			// Best effort: the cookie is cleared regardless.
			c.Logger().Warn("token revocation failed: ", err)
		}
	}

	middleware.ClearSessionCookie(c, h.secure)
	h.record(c, domain.AuthEventLogout, nil)
	return c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}

func (h *AuthHandler) record(c echo.Context, typ domain.AuthEventType, identity *domain.Identity) {
	if h.audit == nil {
		return
	}
	event := domain.AuthEvent{
		Type:      typ,
		RemoteIP:  c.RealIP(),
		Timestamp: time.Now().UTC(),
	}
	if identity != nil {
		event.Subject = identity.Email
		event.Role = identity.Role
	} else if email, ok := c.Get("email").(string); ok {
		event.Subject = email
	}
	h.audit.Enqueue(event)
}

func resultLabel(status int) string {
	if status >= http.StatusInternalServerError {
		return "error"
	}
	return "rejected"
}
