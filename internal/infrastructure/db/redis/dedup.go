package redis

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDedupTTL = 24 * time.Hour

// DeliveryDedup records which newsletters were already handed to a recipient.
// Key format: newsletter:<recipient>:<sha1(subject)>
type DeliveryDedup struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDeliveryDedup creates a DeliveryDedup wrapping the given Redis client.
// A non-positive ttl falls back to defaultDedupTTL.
func NewDeliveryDedup(client *redis.Client, ttl time.Duration) *DeliveryDedup {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	return &DeliveryDedup{client: client, ttl: ttl}
}

// Claim atomically records the (recipient, key) pair and reports whether it was new.
func (d *DeliveryDedup) Claim(ctx context.Context, recipient, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(recipient, key), "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup claim: %w", err)
	}
	return ok, nil
}

// Release deletes the pair so the recipient can be claimed again.
func (d *DeliveryDedup) Release(ctx context.Context, recipient, key string) error {
	if err := d.client.Del(ctx, d.key(recipient, key)).Err(); err != nil {
		return fmt.Errorf("dedup release: %w", err)
	}
	return nil
}

func (d *DeliveryDedup) key(recipient, key string) string {
	sum := sha1.Sum([]byte(key))
	return fmt.Sprintf("newsletter:%s:%s", recipient, hex.EncodeToString(sum[:]))
}
