package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
)

const keyPrefix = "assistant:session:"

// unlockScript deletes the lock only while it holds the caller's token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisStore implements adapter.SessionStore on Redis.
type redisStore struct {
	client  *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

// NewRedisStore creates a Redis-backed session store. Sessions expire after ttl
// of inactivity and an abandoned input lock frees itself after lockTTL.
func NewRedisStore(client *redis.Client, ttl, lockTTL time.Duration) adapter.SessionStore {
	return &redisStore{
		client:  client,
		ttl:     ttl,
		lockTTL: lockTTL,
	}
}

func sessionKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

func lockKey(id uuid.UUID) string {
	return keyPrefix + id.String() + ":lock"
}

// Save creates or replaces a session and refreshes its expiry.
func (s *redisStore) Save(ctx context.Context, session *entity.Session) error {
	payload, err := json.Marshal(recordFromEntity(session))
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get retrieves a session.
func (s *redisStore) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainerror.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return record.toEntity(), nil
}

// Delete removes a session and its lock.
func (s *redisStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, sessionKey(id), lockKey(id)).Err()
}

// Lock acquires the session input lock.
func (s *redisStore) Lock(ctx context.Context, id uuid.UUID) (string, bool, error) {
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, lockKey(id), token, s.lockTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to lock session: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Unlock releases the session input lock. A lock that expired and was taken
// by another request is left alone.
func (s *redisStore) Unlock(ctx context.Context, id uuid.UUID, token string) error {
	if err := unlockScript.Run(ctx, s.client, []string{lockKey(id)}, token).Err(); err != nil {
		return fmt.Errorf("failed to unlock session: %w", err)
	}
	return nil
}
