package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps Redis transport failures.
var ErrRedisUnavailable = errors.New("redis unavailable")

// ErrDuplicateToken is returned when Persist finds an existing record under
// the same token string. Collisions are not expected given signed-token
// entropy, but an attempted overwrite of another session must fail loudly
// rather than silently rebind the token.
var ErrDuplicateToken = errors.New("refresh token already persisted")

// ErrAlreadyExpired is returned when Persist is called with an expiry in the
// past.
var ErrAlreadyExpired = errors.New("refresh token already expired")

// Record is the stored refresh-session state: the owning user and when the
// token was issued. Expiry is carried by the Redis TTL.
type Record struct {
	UserID   string `json:"uid"`
	IssuedAt int64  `json:"iat"`
}

// Store is the Redis-backed refresh-token store.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a [Store]. prefix namespaces all keys.
func NewStore(redisClient redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "agrt"
	}
	return &Store{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *Store) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return s.prefix + ":" + hex.EncodeToString(sum[:])
}

// Persist stores the refresh token record with a TTL matching its expiry.
// The write is insert-only: an existing record under the same token fails
// with [ErrDuplicateToken] and is left untouched.
func (s *Store) Persist(ctx context.Context, token, userID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return ErrAlreadyExpired
	}

	data, err := json.Marshal(Record{
		UserID:   userID,
		IssuedAt: time.Now().Unix(),
	})
	if err != nil {
		return err
	}

	ok, err := s.redis.SetNX(ctx, s.key(token), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if !ok {
		return ErrDuplicateToken
	}

	return nil
}

// Exists reports whether the token still has an active session record.
func (s *Store) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.redis.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return n == 1, nil
}

// Get returns the session record for the token, or nil when absent.
func (s *Store) Get(ctx context.Context, token string) (*Record, error) {
	data, err := s.redis.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("corrupt session record: %w", err)
	}
	return &rec, nil
}

// Delete revokes the token's session record. Deleting an absent record is a
// no-op, never an error: logout is idempotent.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.redis.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
