package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jordanlanch/leadpulse/pkg/domain"
)

// RedisStore persists each lead's history as a Redis list of JSON-encoded
// messages under "conversation:<leadID>".
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and returns a store. ttl bounds how long
// an idle conversation is kept; zero means no expiry.
func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed connecting to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

// NewRedisStoreWithClient wraps an existing client. Used in tests.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func key(leadID string) string {
	return "conversation:" + leadID
}

func (s *RedisStore) Append(ctx context.Context, leadID string, msg domain.Message) error {
	encoded, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	k := key(leadID)
	if err := s.client.RPush(ctx, k, encoded).Err(); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, k, s.ttl).Err(); err != nil {
			return fmt.Errorf("failed to refresh conversation ttl: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) History(ctx context.Context, leadID string) ([]domain.Message, error) {
	raw, err := s.client.LRange(ctx, key(leadID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	history := make([]domain.Message, 0, len(raw))
	for _, entry := range raw {
		var msg domain.Message
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		history = append(history, msg)
	}
	return history, nil
}

func (s *RedisStore) Clear(ctx context.Context, leadID string) error {
	if err := s.client.Del(ctx, key(leadID)).Err(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
