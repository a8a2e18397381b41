package ports

import (
	"context"
	"time"

	"github.com/talenthub/job-board/internal/core/domain"
)

// AuthResult is the successful outcome of a login or registration call
// against the backend. Both fields are always set: callers never have to
// infer success from the presence of one but not the other.
type AuthResult struct {
	Identity *domain.Identity
	Token    string
}

// AuthAPI is the client-side view of the backend auth endpoints. A refused
// credential comes back as *domain.AuthRejectedError carrying the server
// message; any other error is a transport or decode failure.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Me(ctx context.Context, token string) (*domain.Identity, error)
	Logout(ctx context.Context, token string) error
}

// CredentialStore is the durable per-device slot holding the bearer token and
// the serialized identity. Load returns empty values, not an error, when the
// slot is vacant. ClearToken invalidates the token alone; it exists for the
// restore path, which discards a token the backend refused while leaving the
// rest of the slot to be overwritten by the next successful login.
type CredentialStore interface {
	Save(ctx context.Context, token string, identity *domain.Identity) error
	Load(ctx context.Context) (string, *domain.Identity, error)
	ClearToken(ctx context.Context) error
	Clear(ctx context.Context) error
}

// AuditSink accepts auth events for asynchronous recording. Enqueue must not
// block the request path beyond channel capacity.
type AuditSink interface {
	Enqueue(event domain.AuthEvent)
}

// AuditRecorder persists auth events.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuthEvent) error
}

// RevocationList tracks credentials invalidated before their natural expiry.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
