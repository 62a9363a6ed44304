package kv

import (
	"context"
	"log"
	"time"
)

// Tiered composes storage tiers. Writes go to the first tier that accepts
// them, reads probe tiers in order; a hit in a later tier is promoted back
// into the earlier ones so the primary heals itself. Tier failures are
// logged, never propagated: losing scratch data must not break the flow.
type Tiered struct {
	tiers []Store
	ttl   time.Duration
}

// NewTiered builds a tiered store. The first tier is primary.
func NewTiered(ttl time.Duration, tiers ...Store) *Tiered {
	return &Tiered{tiers: tiers, ttl: ttl}
}

// Set writes to the first healthy tier.
func (t *Tiered) Set(ctx context.Context, key string, value []byte) error {
	for i, tier := range t.tiers {
		if err := tier.Set(ctx, key, value, t.ttl); err != nil {
			log.Printf("KV_TIER_WRITE_FAILED: tier=%d key=%s error=%v", i, key, err)
			continue
		}
		return nil
	}
	return ErrNotFound
}

// Get probes tiers in order, promoting a late hit into all earlier tiers
// and removing it from the tier it was found in.
func (t *Tiered) Get(ctx context.Context, key string) ([]byte, error) {
	for i, tier := range t.tiers {
		value, err := tier.Get(ctx, key)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			log.Printf("KV_TIER_READ_FAILED: tier=%d key=%s error=%v", i, key, err)
			continue
		}
		if i > 0 {
			t.promote(ctx, key, value, i)
		}
		return value, nil
	}
	return nil, ErrNotFound
}

// Delete removes the key from every tier.
func (t *Tiered) Delete(ctx context.Context, key string) {
	for i, tier := range t.tiers {
		if err := tier.Delete(ctx, key); err != nil {
			log.Printf("KV_TIER_DELETE_FAILED: tier=%d key=%s error=%v", i, key, err)
		}
	}
}

func (t *Tiered) promote(ctx context.Context, key string, value []byte, foundAt int) {
	promoted := false
	for i := 0; i < foundAt; i++ {
		if err := t.tiers[i].Set(ctx, key, value, t.ttl); err != nil {
			log.Printf("KV_TIER_PROMOTE_FAILED: tier=%d key=%s error=%v", i, key, err)
			continue
		}
		promoted = true
	}
	if promoted {
		if err := t.tiers[foundAt].Delete(ctx, key); err != nil {
			log.Printf("KV_TIER_EVICT_FAILED: tier=%d key=%s error=%v", foundAt, key, err)
		}
	}
}
