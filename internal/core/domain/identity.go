package domain

import (
	"errors"
	"strings"
	"time"
)

// Role tags an identity as one of the two account kinds the board supports.
// It is fixed at registration and never changes afterwards.
type Role string

const (
	RoleJobSeeker Role = "job-seeker"
	RoleEmployer  Role = "employer"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrTokenRevoked = errors.New("token revoked")
var ErrUnknownRole = errors.New("unknown role")

// ParseRole normalizes the role strings observed on the wire to one of the
// two canonical values. Upstream payloads are inconsistent about spelling
// ("jobseeker", "job_seeker", plural forms), so every ingestion path must go
// through here instead of comparing raw strings.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "job-seeker", "jobseeker", "job_seeker", "job-seekers":
		return RoleJobSeeker, nil
	case "employer", "employers":
		return RoleEmployer, nil
	}
	return "", ErrUnknownRole
}

// Valid reports whether the role is one of the canonical values.
func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

// DashboardPath returns the home page of the role's dashboard. Unknown roles
// fall back to the job-seeker home, mirroring the redirect rules of the
// route guard.
func (r Role) DashboardPath() string {
	if r == RoleEmployer {
		return "/employer/dashboard"
	}
	return "/job-seeker/dashboard"
}

// Identity models an authenticated principal. Company is only meaningful for
// employers, Title only for job seekers; both default to the empty string.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         Role      `json:"role"`
	Company      string    `json:"company,omitempty"`
	Title        string    `json:"title,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AuthRejectedError carries the server-provided reason for a refused login,
// registration or session restore. It is distinct from transport failures,
// which surface as plain errors and are shown to users as a generic message.
type AuthRejectedError struct {
	Reason string
}

func (e *AuthRejectedError) Error() string { return e.Reason }
