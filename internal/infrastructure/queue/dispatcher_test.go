package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/unihub/portal/internal/core/ports"
)

type stubMailer struct {
	mu   sync.Mutex
	sent []ports.Message
	err  error
	done chan struct{}
}

func (m *stubMailer) Send(_ context.Context, msg ports.Message) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	if m.done != nil {
		m.done <- struct{}{}
	}
	return m.err
}

func waitFor(t *testing.T, ch <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d deliveries", i, n)
		}
	}
}

func TestDispatcher_DeliversInOrderPerRecipient(t *testing.T) {
	mailer := &stubMailer{done: make(chan struct{}, 8)}
	d := NewDispatcher(3, mailer, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	subjects := []string{"one", "two", "three"}
	for _, s := range subjects {
		if err := d.Notify(ctx, ports.Message{To: "anna@uni.test", Subject: s}); err != nil {
			t.Fatalf("Notify: %v", err)
		}
	}
	waitFor(t, mailer.done, len(subjects))

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	for i, s := range subjects {
		if mailer.sent[i].Subject != s {
			t.Fatalf("message %d: expected %q, got %q", i, s, mailer.sent[i].Subject)
		}
	}
}

func TestDispatcher_FailureIsNotFatal(t *testing.T) {
	mailer := &stubMailer{err: errors.New("smtp down"), done: make(chan struct{}, 4)}
	d := NewDispatcher(1, mailer, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	if err := d.Notify(ctx, ports.Message{To: "a@uni.test"}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if err := d.Notify(ctx, ports.Message{To: "a@uni.test"}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	waitFor(t, mailer.done, 2)
}

func TestDispatcher_NotifyNeverBlocks(t *testing.T) {
	d := NewDispatcher(1, &stubMailer{}, zerolog.Nop())

	var err error
	for i := 0; i <= channelBuffer; i++ {
		err = d.Notify(context.Background(), ports.Message{To: "a@uni.test"})
	}
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull once the buffer is exhausted, got %v", err)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &stubMailer{}, zerolog.Nop())
	if d.shardIndex("Anna@Uni.test") != d.shardIndex("anna@uni.test") {
		t.Fatalf("recipient sharding must ignore case")
	}
	if d.shardIndex("x") < 0 || d.shardIndex("x") >= 8 {
		t.Fatalf("shard out of range")
	}
}
