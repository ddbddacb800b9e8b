package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"adtrack/internal/config/configs"
)

const keyPrefix = "adtrack:webhook:"

// DeliveryStore implements port.DeliveryStore with SET NX so concurrent
// redeliveries of the same webhook race on a single key.
type DeliveryStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewDeliveryStore wraps an existing client.
func NewDeliveryStore(client goredis.UniversalClient, ttl time.Duration) *DeliveryStore {
	return &DeliveryStore{client: client, ttl: ttl}
}

// NewClient connects to the configured server and pings it.
func NewClient(ctx context.Context, cfg configs.Redis) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctxPing).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Claim sets the delivery key if absent and reports whether it did.
func (s *DeliveryStore) Claim(ctx context.Context, id string) (bool, error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+id, time.Now().UTC().Format(time.RFC3339), s.ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Release deletes the delivery key.
func (s *DeliveryStore) Release(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}
