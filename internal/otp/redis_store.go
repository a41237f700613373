package otp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps OTP state in Redis with native key expiry.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{Client: client}, nil
}

func otpKey(phone string) string       { return "otp:" + phone }
func rateLimitKey(phone string) string { return "otp_rate_limit:" + phone }

func (s *RedisStore) GetEntry(ctx context.Context, phone string) (*Entry, error) {
	val, err := s.Client.Get(ctx, otpKey(phone)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var e Entry
	if err := json.Unmarshal([]byte(val), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *RedisStore) SetEntry(ctx context.Context, phone string, e *Entry, ttl time.Duration) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, otpKey(phone), data, ttl).Err()
}

func (s *RedisStore) DeleteEntry(ctx context.Context, phone string) error {
	return s.Client.Del(ctx, otpKey(phone)).Err()
}

func (s *RedisStore) RateLimited(ctx context.Context, phone string) (bool, error) {
	n, err := s.Client.Exists(ctx, rateLimitKey(phone)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) MarkRateLimit(ctx context.Context, phone string, ttl time.Duration) error {
	return s.Client.Set(ctx, rateLimitKey(phone), "1", ttl).Err()
}
