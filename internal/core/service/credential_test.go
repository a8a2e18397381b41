package service

import (
	"testing"
	"time"

	"github.com/talenthub/job-board/internal/core/domain"
)

func TestCredentialService_IssueVerifyRoundTrip(t *testing.T) {
	svc := NewCredentialService("secret", time.Hour)
	identity := employerIdentity()

	token, issued, err := svc.Issue(identity)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" || issued.ID == "" {
		t.Fatalf("expected signed token with token id")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != identity.ID {
		t.Fatalf("expected subject %q, got %q", identity.ID, claims.Subject)
	}
	if claims.Email != identity.Email || claims.Role != domain.RoleEmployer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("expected 1h lifetime, got %v", got)
	}
}

func TestCredentialService_DefaultTTLIs24Hours(t *testing.T) {
	svc := NewCredentialService("secret", 0)
	token, _, err := svc.Issue(seekerIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 24*time.Hour {
		t.Fatalf("expected 24h lifetime, got %v", got)
	}
}

func TestCredentialService_RejectsExpiredToken(t *testing.T) {
	svc := NewCredentialService("secret", time.Hour)
	token, _, err := svc.Issue(seekerIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Move the verifier's clock past expiry.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := svc.Verify(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestCredentialService_RejectsWrongSecret(t *testing.T) {
	issuer := NewCredentialService("secret-a", time.Hour)
	verifier := NewCredentialService("secret-b", time.Hour)

	token, _, err := issuer.Issue(seekerIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Fatalf("expected signature mismatch to be rejected")
	}
}

func TestCredentialService_RejectsForeignRole(t *testing.T) {
	svc := NewCredentialService("secret", time.Hour)
	token, _, err := svc.Issue(&domain.Identity{ID: "x", Email: "x@y.test", Role: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Verify(token); err == nil {
		t.Fatalf("expected unknown role to be rejected")
	}
}

func TestCredentialService_UniqueTokenIDs(t *testing.T) {
	svc := NewCredentialService("secret", time.Hour)
	_, a, err := svc.Issue(seekerIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, b, err := svc.Issue(seekerIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct token ids")
	}
}
