package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionPrefix = "session:"
	statePrefix   = "oauth_state:"
)

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (r *redisStore) SaveSession(ctx context.Context, s *Session, ttl time.Duration) error {
	jsonData, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionPrefix+s.ID, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *redisStore) GetSession(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, sessionPrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *redisStore) DeleteSession(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionPrefix+id).Err()
}

func (r *redisStore) ParkState(ctx context.Context, state string, ttl time.Duration) error {
	return r.client.Set(ctx, statePrefix+state, "1", ttl).Err()
}

func (r *redisStore) ClaimState(ctx context.Context, state string) (bool, error) {
	n, err := r.client.Del(ctx, statePrefix+state).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim state: %w", err)
	}
	return n > 0, nil
}
