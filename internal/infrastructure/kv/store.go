// Package kv provides a small durable key-value abstraction with fallback
// tiers: writes land in the first tier that accepts them, reads probe tiers
// in order and promote hits back into earlier tiers.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no tier holds the key.
var ErrNotFound = errors.New("kv: key not found")

// Store is a single storage tier.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// SetNX stores the value only if the key is absent. Used as a
	// cheap distributed lock.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
}
