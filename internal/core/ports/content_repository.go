package ports

import (
	"context"
	"time"

	"github.com/unihub/portal/internal/core/domain"
)

// EventRepository persists campus events.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	// StartingAfter returns events whose start time is after t.
	StartingAfter(ctx context.Context, t time.Time) ([]*domain.Event, error)
	// EndedBefore returns events whose end time is before t.
	EndedBefore(ctx context.Context, t time.Time) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
}

// NewsRepository persists news articles.
type NewsRepository interface {
	Create(ctx context.Context, n *domain.News) (*domain.News, error)
	FindByID(ctx context.Context, id string) (*domain.News, error)
	List(ctx context.Context) ([]*domain.News, error)
	Update(ctx context.Context, n *domain.News) error
	Delete(ctx context.Context, id string) error
}
