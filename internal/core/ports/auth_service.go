package ports

import (
	"context"

	"github.com/talenthub/job-board/internal/core/domain"
)

// RegisterInput carries the fields required to create an account. Company and
// Title are role-dependent and default to the empty string.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role
	Company   string
	Title     string
}

// AuthService is the server-side credential lifecycle: account creation,
// password login, bearer-token introspection and revocation.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.Identity, error)
	Login(ctx context.Context, email, password string) (string, *domain.Identity, error)
	Me(ctx context.Context, token string) (*domain.Identity, error)
	Logout(ctx context.Context, token string) error
}
