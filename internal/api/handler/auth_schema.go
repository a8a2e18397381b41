package handler

import "github.com/talenthub/job-board/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"omitempty,eqfield=Password"`
	FirstName       string `json:"firstName"       validate:"required"`
	LastName        string `json:"lastName"        validate:"required"`
	Role            string `json:"role"            validate:"required"`
	Company         string `json:"company"`
	Title           string `json:"title"`
}

type authResponse struct {
	Token string           `json:"token,omitempty"`
	User  *domain.Identity `json:"user,omitempty"`
}

type meResponse struct {
	User *domain.Identity `json:"user"`
}

type statusResponse struct {
	Status string `json:"status"`
}
