// Package backend implements the HTTP client for the auth endpoints of the
// job-board backend. It is the single ingestion point for identity payloads:
// role normalization and success/failure discrimination happen here, never in
// consumers.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/talenthub/job-board/internal/core/domain"
	"github.com/talenthub/job-board/internal/core/ports"
)

const defaultHTTPTimeout = 10 * time.Second

type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultHTTPTimeout},
		log:     log,
	}
}

// identityPayload tolerates both shapes the backend has been observed to
// emit: a singular "role" and a "roles" array. The singular field is
// canonical; the array is a fallback only.
type identityPayload struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      string   `json:"role"`
	Roles     []string `json:"roles"`
	Company   string   `json:"company"`
	Title     string   `json:"title"`
}

type authPayload struct {
	User  *identityPayload `json:"user"`
	Token string           `json:"token"`
	Error string           `json:"error"`
}

func (p *identityPayload) toIdentity() (*domain.Identity, error) {
	raw := p.Role
	if raw == "" && len(p.Roles) > 0 {
		raw = p.Roles[0]
	}
	role, err := domain.ParseRole(raw)
	if err != nil {
		return nil, fmt.Errorf("identity %s: %w", p.ID, err)
	}
	return &domain.Identity{
		ID:        p.ID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Role:      role,
		Company:   p.Company,
		Title:     p.Title,
	}, nil
}

// Login authenticates against the backend. A refused credential comes back
// as *domain.AuthRejectedError with the server message; a 200 body missing
// either the token or the user is treated as a failure too, never as a
// partial success.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	payload, err := c.postAuth(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return payload.toResult("login")
}

func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	payload, err := c.postAuth(ctx, "/auth/register", map[string]string{
		"email":     in.Email,
		"password":  in.Password,
		"firstName": in.FirstName,
		"lastName":  in.LastName,
		"role":      string(in.Role),
		"company":   in.Company,
		"title":     in.Title,
	})
	if err != nil {
		return nil, err
	}
	return payload.toResult("register")
}

// Me verifies a stored token against the backend and returns the identity it
// belongs to.
func (c *Client) Me(ctx context.Context, token string) (*domain.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	payload, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &domain.AuthRejectedError{Reason: payload.Error}
	}
	if payload.User == nil {
		return nil, fmt.Errorf("me: response missing user")
	}
	return payload.User.toIdentity()
}

// Logout asks the backend to revoke the token and clear its cookie. Callers
// treat failures as best effort.
func (c *Client) Logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/logout", nil)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("logout: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) postAuth(ctx context.Context, path string, body map[string]string) (*authPayload, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*authPayload, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	var payload authPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s %s: decode response: %w", req.Method, req.URL.Path, err)
	}

	if payload.Error == "" && resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%s %s: unexpected status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	return &payload, nil
}

// toResult converts the wire payload into an explicit outcome: either a
// complete Identity+Token pair or an error. Success is never inferred from
// partial data.
func (p *authPayload) toResult(op string) (*ports.AuthResult, error) {
	if p.Error != "" {
		return nil, &domain.AuthRejectedError{Reason: p.Error}
	}
	if p.Token == "" || p.User == nil {
		return nil, fmt.Errorf("%s: response missing token or user", op)
	}
	identity, err := p.User.toIdentity()
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Identity: identity, Token: p.Token}, nil
}
