package ports

import "context"

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers one message synchronously.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Notifier hands a message off for delivery without waiting for it.
// An error means the message was not accepted; delivery failures after
// acceptance are only logged.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// DeliveryDedup remembers which (recipient, key) pairs were already sent.
type DeliveryDedup interface {
	// Claim reports true when the pair was not seen before and is now recorded.
	Claim(ctx context.Context, recipient, key string) (bool, error)
	// Release forgets a claimed pair so a later Claim succeeds again.
	Release(ctx context.Context, recipient, key string) error
}
