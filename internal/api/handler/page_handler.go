package handler

import (
	"html/template"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/talenthub/job-board/internal/api/middleware"
	"github.com/talenthub/job-board/internal/core/domain"
	"github.com/talenthub/job-board/internal/core/ports"
	"github.com/talenthub/job-board/internal/core/service"
)

// PageHandler renders the thin server-side pages of the board. All auth
// decisions live in the session controller and the route guard; these
// handlers are presentational glue around them.
type PageHandler struct {
	api    ports.AuthAPI
	stores func(deviceID string) ports.CredentialStore
	log    zerolog.Logger
	secure bool
}

func NewPageHandler(api ports.AuthAPI, stores func(deviceID string) ports.CredentialStore, log zerolog.Logger, secure bool) *PageHandler {
	return &PageHandler{api: api, stores: stores, log: log, secure: secure}
}

type pageData struct {
	Title    string
	Identity *domain.Identity
	Err      string
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}} · TalentHub</title></head>
<body>
<h1>{{.Title}}</h1>
{{if .Err}}<p class="error">{{.Err}}</p>{{end}}
{{if .Identity}}<p>Signed in as {{.Identity.FirstName}} {{.Identity.LastName}} ({{.Identity.Role}})</p>
<form method="post" action="/auth/logout"><button type="submit">Log out</button></form>
{{else}}<p><a href="/auth/login">Log in</a> or <a href="/auth/register">register</a>.</p>{{end}}
</body>
</html>`))

var loginTmpl = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Log in · TalentHub</title></head>
<body>
<h1>Log in</h1>
{{if .Err}}<p class="error">{{.Err}}</p>{{end}}
<form method="post" action="/auth/login">
<input name="email" type="email" placeholder="Email" value="">
<input name="password" type="password" placeholder="Password">
<button type="submit">Log in</button>
</form>
</body>
</html>`))

var registerTmpl = template.Must(template.New("register").Parse(`<!DOCTYPE html>
<html>
<head><title>Register · TalentHub</title></head>
<body>
<h1>Register</h1>
{{if .Err}}<p class="error">{{.Err}}</p>{{end}}
<form method="post" action="/auth/register">
<input name="firstName" placeholder="First name">
<input name="lastName" placeholder="Last name">
<input name="email" type="email" placeholder="Email">
<input name="password" type="password" placeholder="Password">
<input name="confirmPassword" type="password" placeholder="Confirm password">
<select name="role"><option value="job-seeker">Job seeker</option><option value="employer">Employer</option></select>
<input name="company" placeholder="Company (employers)">
<input name="title" placeholder="Title (job seekers)">
<button type="submit">Create account</button>
</form>
</body>
</html>`))

// session builds the request's controller and its backing store. One
// controller per request; durable state lives in the per-device store.
func (h *PageHandler) session(c echo.Context) (*service.SessionController, ports.CredentialStore) {
	store := h.stores(h.deviceID(c))
	return service.NewSessionController(h.api, store, h.log), store
}

// deviceID reads the device cookie, minting one on first visit.
func (h *PageHandler) deviceID(c echo.Context) string {
	if cookie, err := c.Cookie(middleware.DeviceCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     middleware.DeviceCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// Home is the landing page. Authenticated visitors are sent to their
// dashboard; this is the only place restore triggers a redirect.
func (h *PageHandler) Home(c echo.Context) error {
	ctrl, _ := h.session(c)
	ctrl.Restore(c.Request().Context())
	if state := ctrl.State(); state.Authenticated() {
		return c.Redirect(http.StatusFound, state.Identity.Role.DashboardPath())
	}
	return h.render(c, pageTmpl, pageData{Title: "Find your next role"})
}

func (h *PageHandler) LoginForm(c echo.Context) error {
	return h.render(c, loginTmpl, pageData{})
}

func (h *PageHandler) LoginSubmit(c echo.Context) error {
	ctrl, store := h.session(c)
	ctx := c.Request().Context()

	target := ctrl.Login(ctx, c.FormValue("email"), c.FormValue("password"))
	if target == "" {
		return h.render(c, loginTmpl, pageData{Err: ctrl.State().Err})
	}

	// Carry the fresh credential to the browser so the route guard sees it.
	if token, _, err := store.Load(ctx); err == nil && token != "" {
		middleware.SetSessionCookie(c, token, h.secure)
	}
	return c.Redirect(http.StatusSeeOther, target)
}

func (h *PageHandler) RegisterForm(c echo.Context) error {
	return h.render(c, registerTmpl, pageData{})
}

func (h *PageHandler) RegisterSubmit(c echo.Context) error {
	ctrl, _ := h.session(c)

	role, err := domain.ParseRole(c.FormValue("role"))
	if err != nil {
		return h.render(c, registerTmpl, pageData{Err: "role must be job-seeker or employer"})
	}
	in := ports.RegisterInput{
		Email:     c.FormValue("email"),
		Password:  c.FormValue("password"),
		FirstName: c.FormValue("firstName"),
		LastName:  c.FormValue("lastName"),
		Role:      role,
		Company:   c.FormValue("company"),
		Title:     c.FormValue("title"),
	}

	target, err := ctrl.Register(c.Request().Context(), in, c.FormValue("confirmPassword"))
	if err != nil {
		// Input validation failure: shown in the form, no network call made.
		return h.render(c, registerTmpl, pageData{Err: err.Error()})
	}
	if target == "" {
		return h.render(c, registerTmpl, pageData{Err: ctrl.State().Err})
	}
	return c.Redirect(http.StatusSeeOther, target)
}

func (h *PageHandler) Logout(c echo.Context) error {
	ctrl, _ := h.session(c)
	ctrl.Logout(c.Request().Context())
	middleware.ClearSessionCookie(c, h.secure)
	return c.Redirect(http.StatusSeeOther, "/")
}

// EmployerDashboard renders the employer home. The route guard has already
// established the visitor's role; restore only resolves the identity.
func (h *PageHandler) EmployerDashboard(c echo.Context) error {
	ctrl, _ := h.session(c)
	ctrl.Restore(c.Request().Context())
	return h.render(c, pageTmpl, pageData{Title: "Employer dashboard", Identity: ctrl.State().Identity})
}

func (h *PageHandler) JobSeekerDashboard(c echo.Context) error {
	ctrl, _ := h.session(c)
	ctrl.Restore(c.Request().Context())
	return h.render(c, pageTmpl, pageData{Title: "Job seeker dashboard", Identity: ctrl.State().Identity})
}

func (h *PageHandler) render(c echo.Context, tmpl *template.Template, data pageData) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return tmpl.Execute(c.Response(), data)
}
