package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenStore keeps the server-side copy of issued session tokens, so a
// token can be invalidated without waiting for its JWT expiry.
type TokenStore interface {
	Save(ctx context.Context, userID, token string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

// ErrSessionNotFound is returned when no live session exists for a user.
var ErrSessionNotFound = errors.New("session not found")

// RedisTokenStore stores sessions in Redis with the token TTL.
type RedisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

func sessionKey(userID string) string {
	return fmt.Sprintf("session:%s", userID)
}

func (s *RedisTokenStore) Save(ctx context.Context, userID, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(userID), token, ttl).Err()
}

func (s *RedisTokenStore) Get(ctx context.Context, userID string) (string, error) {
	token, err := s.rdb.Get(ctx, sessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return token, nil
}

func (s *RedisTokenStore) Delete(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, sessionKey(userID)).Err()
}

// MemoryTokenStore is an in-process TokenStore used by tests and the
// in-memory composition.
type MemoryTokenStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

type memorySession struct {
	token   string
	expires time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{sessions: make(map[string]memorySession)}
}

func (s *MemoryTokenStore) Save(ctx context.Context, userID, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = memorySession{token: token, expires: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) Get(ctx context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[userID]
	if !ok || time.Now().After(session.expires) {
		delete(s.sessions, userID)
		return "", ErrSessionNotFound
	}
	return session.token, nil
}

func (s *MemoryTokenStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}
