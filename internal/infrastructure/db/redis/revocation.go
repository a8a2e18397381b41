package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList marks logged-out credentials as dead until their natural
// expiry. Key format: revoked:<token_id>
type RevocationList struct {
	client *redis.Client
}

func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

// Revoke records the token id until the given time; already-expired tokens
// need no entry.
func (l *RevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return l.client.Set(ctx, l.key(tokenID), "1", ttl).Err()
}

// IsRevoked reports whether the token id has been revoked.
func (l *RevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (l *RevocationList) key(tokenID string) string {
	return "revoked:" + tokenID
}
