package ports

import (
	"context"
	"time"

	"github.com/unihub/portal/internal/core/domain"
)

// EventInput carries the editable event fields.
type EventInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
	Type        string
	TeacherID   string
}

// EventService manages campus events.
type EventService interface {
	List(ctx context.Context) ([]*domain.Event, error)
	Upcoming(ctx context.Context) ([]*domain.Event, error)
	Past(ctx context.Context) ([]*domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	Create(ctx context.Context, in EventInput) (*domain.Event, error)
	Update(ctx context.Context, id string, in EventInput) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}

// NewsInput carries the editable article fields.
type NewsInput struct {
	Title   string
	Content string
}

// NewsService manages news articles. authorID is the caller's account id.
type NewsService interface {
	List(ctx context.Context) ([]*domain.News, error)
	Get(ctx context.Context, id string) (*domain.News, error)
	Create(ctx context.Context, authorID string, in NewsInput) (*domain.News, error)
	Update(ctx context.Context, id, authorID string, in NewsInput) (*domain.News, error)
	Delete(ctx context.Context, id string) error
}

// NewsletterService manages subscriptions and broadcasts.
type NewsletterService interface {
	Subscribe(ctx context.Context, email string) error
	Unsubscribe(ctx context.Context, email string) error
	// Send enqueues the newsletter for every subscriber and returns how many were enqueued.
	Send(ctx context.Context, subject, message string) (int, error)
}
