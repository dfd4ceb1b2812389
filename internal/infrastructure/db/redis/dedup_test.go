package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestDedup(t *testing.T, ttl time.Duration) (*DeliveryDedup, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewDeliveryDedup(client, ttl), mr
}

func TestDeliveryDedup_Claim(t *testing.T) {
	d, _ := newTestDedup(t, time.Hour)
	ctx := context.Background()

	first, err := d.Claim(ctx, "anna@uni.test", "Weekly digest")
	if err != nil || !first {
		t.Fatalf("first claim = %v, %v", first, err)
	}
	again, err := d.Claim(ctx, "anna@uni.test", "Weekly digest")
	if err != nil || again {
		t.Fatalf("second claim = %v, %v", again, err)
	}
	other, err := d.Claim(ctx, "bob@uni.test", "Weekly digest")
	if err != nil || !other {
		t.Fatalf("claim for another recipient = %v, %v", other, err)
	}
}

func TestDeliveryDedup_Expires(t *testing.T) {
	d, mr := newTestDedup(t, time.Minute)
	ctx := context.Background()

	if ok, _ := d.Claim(ctx, "anna@uni.test", "Digest"); !ok {
		t.Fatalf("expected first claim to succeed")
	}
	mr.FastForward(2 * time.Minute)
	if ok, err := d.Claim(ctx, "anna@uni.test", "Digest"); err != nil || !ok {
		t.Fatalf("expected claim after expiry, got %v, %v", ok, err)
	}
}

func TestDeliveryDedup_Release(t *testing.T) {
	d, _ := newTestDedup(t, time.Minute)
	ctx := context.Background()

	if ok, _ := d.Claim(ctx, "anna@uni.test", "Digest"); !ok {
		t.Fatalf("expected first claim to succeed")
	}
	if err := d.Release(ctx, "anna@uni.test", "Digest"); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if ok, err := d.Claim(ctx, "anna@uni.test", "Digest"); err != nil || !ok {
		t.Fatalf("expected claim after release, got %v, %v", ok, err)
	}
}

func TestDeliveryDedup_ConnectionError(t *testing.T) {
	d, mr := newTestDedup(t, time.Minute)
	mr.Close()

	if _, err := d.Claim(context.Background(), "anna@uni.test", "Digest"); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	ping := Ping(client)
	if err := ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	mr.Close()
	if err := ping(context.Background()); err == nil {
		t.Fatalf("expected readiness ping to fail once redis is gone")
	}
	_ = client.Close()
	if _, err := Connect(context.Background(), Config{Addr: mr.Addr(), Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatalf("expected ping failure")
	}
}
