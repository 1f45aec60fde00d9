package assistant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const statePrefix = "assistant:state:"

// StateStore persists conversation state between turns, keyed by user.
type StateStore interface {
	Get(ctx context.Context, userID string) (*ConvState, error)
	Set(ctx context.Context, userID string, st *ConvState) error
	Clear(ctx context.Context, userID string) error
}

// RedisStateStore keeps conversation state in Redis with a sliding TTL.
type RedisStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStateStore(client *redis.Client, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{client: client, ttl: ttl}
}

// Get returns the stored state, or nil when no conversation exists yet.
func (s *RedisStateStore) Get(ctx context.Context, userID string) (*ConvState, error) {
	data, err := s.client.Get(ctx, statePrefix+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st ConvState
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *RedisStateStore) Set(ctx context.Context, userID string, st *ConvState) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statePrefix+userID, b, s.ttl).Err()
}

func (s *RedisStateStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, statePrefix+userID).Err()
}
