package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/talenthub/job-board/internal/core/domain"
	"github.com/talenthub/job-board/internal/core/ports"
)

// AuthService implements registration, login, token introspection and
// revocation against the user repository.
type AuthService struct {
	users   ports.UserRepository
	creds   *CredentialService
	revoked ports.RevocationList
}

func NewAuthService(users ports.UserRepository, creds *CredentialService, revoked ports.RevocationList) *AuthService {
	return &AuthService{users: users, creds: creds, revoked: revoked}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.Identity, error) {
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !in.Role.Valid() {
		return "", nil, domain.ErrUnknownRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	identity := &domain.Identity{
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		Company:      in.Company,
		Title:        in.Title,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, identity)
	if err != nil {
		return "", nil, err
	}

	token, _, err := s.creds.Issue(created)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	identity, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, _, err := s.creds.Issue(identity)
	if err != nil {
		return "", nil, err
	}
	return token, identity, nil
}

// Me resolves a bearer token to the identity it was issued for. Revoked
// tokens are rejected even when their signature and expiry still check out.
func (s *AuthService) Me(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := s.creds.Verify(token)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("revocation check: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	return s.users.FindByEmail(ctx, claims.Email)
}

// Logout revokes the token until its natural expiry. Invalid tokens are a
// no-op: the client is clearing a credential the server already rejects.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.creds.Verify(token)
	if err != nil {
		return nil
	}
	return s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}
