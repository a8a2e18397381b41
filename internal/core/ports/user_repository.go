package ports

import (
	"context"

	"github.com/talenthub/job-board/internal/core/domain"
)

// UserRepository defines the interface for identity persistence.
// Email is the natural key; Create must fail with domain.ErrUserExists when
// the email is already taken.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
}
