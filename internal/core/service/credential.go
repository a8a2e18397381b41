package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/talenthub/job-board/internal/core/domain"
)

const DefaultCredentialTTL = 24 * time.Hour

// Claims is the payload of a session credential: the identity id in Subject,
// plus email and role so the route guard can decide redirects without a
// database lookup.
type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// CredentialService issues and verifies the signed session credential shared
// by the auth endpoints and the route guard. HS256 with a single secret;
// tokens expire ttl after issuance and are rejected thereafter.
type CredentialService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCredentialService(secret string, ttl time.Duration) *CredentialService {
	if ttl <= 0 {
		ttl = DefaultCredentialTTL
	}
	return &CredentialService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a credential for the identity. The token id (jti) is unique per
// issuance so individual credentials can be revoked.
func (s *CredentialService) Issue(identity *domain.Identity) (string, *Claims, error) {
	now := s.now().UTC()
	claims := &Claims{
		Email: identity.Email,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign credential: %w", err)
	}
	return signed, claims, nil
}

// Verify checks signature and expiry and returns the embedded claims.
func (s *CredentialService) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return nil, fmt.Errorf("verify credential: %w", err)
	}
	if !tkn.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if !claims.Role.Valid() {
		return nil, domain.ErrUnknownRole
	}
	return claims, nil
}
