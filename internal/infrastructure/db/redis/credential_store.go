package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/talenthub/job-board/internal/core/domain"
)

const credentialTTL = 24 * time.Hour

// CredentialStore is the durable per-device credential slot backed by Redis.
// Two keys per device, written and cleared together: the opaque bearer token
// and the serialized identity. Keys expire with the credential itself.
type CredentialStore struct {
	client   *redis.Client
	deviceID string
}

// NewCredentialStore binds a store to one device id. The controller owning it
// is the sole writer; the route guard reads the same credential through the
// request cookie, never through this store.
func NewCredentialStore(client *redis.Client, deviceID string) *CredentialStore {
	return &CredentialStore{client: client, deviceID: deviceID}
}

func (s *CredentialStore) Save(ctx context.Context, token string, identity *domain.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.tokenKey(), token, credentialTTL)
	pipe.Set(ctx, s.identityKey(), raw, credentialTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) Load(ctx context.Context) (string, *domain.Identity, error) {
	token, err := s.client.Get(ctx, s.tokenKey()).Result()
	if err == redis.Nil {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("load token: %w", err)
	}

	raw, err := s.client.Get(ctx, s.identityKey()).Bytes()
	if err == redis.Nil {
		return token, nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("load identity: %w", err)
	}

	var identity domain.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return token, nil, nil
	}
	return token, &identity, nil
}

// ClearToken invalidates the token alone, leaving the identity record in
// place. Used when the backend rejects a stored token during restore.
func (s *CredentialStore) ClearToken(ctx context.Context) error {
	return s.client.Del(ctx, s.tokenKey()).Err()
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.tokenKey(), s.identityKey()).Err()
}

func (s *CredentialStore) tokenKey() string {
	return fmt.Sprintf("cred:%s:token", s.deviceID)
}

func (s *CredentialStore) identityKey() string {
	return fmt.Sprintf("cred:%s:identity", s.deviceID)
}
