package memory

import (
	"context"
	"sync"
	"time"
)

// DeliveryDedup is an in-process ports.DeliveryDedup with a fixed TTL.
type DeliveryDedup struct {
	mu   sync.Mutex
	ttl  time.Duration
	seen map[string]time.Time
	now  func() time.Time
}

func NewDeliveryDedup(ttl time.Duration) *DeliveryDedup {
	return &DeliveryDedup{ttl: ttl, seen: make(map[string]time.Time), now: time.Now}
}

func (d *DeliveryDedup) Claim(_ context.Context, recipient, key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	k := recipient + "\x00" + key
	now := d.now()
	if until, ok := d.seen[k]; ok && now.Before(until) {
		return false, nil
	}
	d.seen[k] = now.Add(d.ttl)
	return true, nil
}

func (d *DeliveryDedup) Release(_ context.Context, recipient, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, recipient+"\x00"+key)
	return nil
}
