// Package presence tracks driver online state. Drivers heartbeat
// periodically; a key that outlives its TTL means the driver went offline
// without saying goodbye.
package presence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "driver:online:"

// DefaultTTL is how long a heartbeat keeps a driver online.
const DefaultTTL = 90 * time.Second

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// Heartbeat marks the driver online for the TTL window.
func (s *Store) Heartbeat(ctx context.Context, email string) error {
	if err := s.client.Set(ctx, keyPrefix+email, "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to record heartbeat for %s: %w", email, err)
	}
	return nil
}

// SetOffline removes the driver's presence key immediately.
func (s *Store) SetOffline(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, keyPrefix+email).Err(); err != nil {
		return fmt.Errorf("failed to clear presence for %s: %w", email, err)
	}
	return nil
}

// IsOnline reports whether the driver has a live heartbeat.
func (s *Store) IsOnline(ctx context.Context, email string) (bool, error) {
	err := s.client.Get(ctx, keyPrefix+email).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read presence for %s: %w", email, err)
	}
	return true, nil
}
