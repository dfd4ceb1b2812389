package memory

import (
	"context"
	"sync"
	"time"

	"github.com/unihub/portal/internal/core/domain"
)

// EventRepository is a map-backed ports.EventRepository.
type EventRepository struct {
	mu     sync.RWMutex
	events map[string]*domain.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string]*domain.Event)}
}

func cloneEvent(e *domain.Event) *domain.Event {
	out := *e
	return &out
}

func byStartTime(a, b *domain.Event) bool {
	if !a.StartTime.Equal(b.StartTime) {
		return a.StartTime.Before(b.StartTime)
	}
	return a.ID < b.ID
}

func (r *EventRepository) Create(_ context.Context, e *domain.Event) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneEvent(e)
	if stored.ID == "" {
		stored.ID = newID()
	}
	r.events[stored.ID] = stored
	return cloneEvent(stored), nil
}

func (r *EventRepository) FindByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return cloneEvent(e), nil
}

func (r *EventRepository) List(_ context.Context) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedValues(r.events, cloneEvent, byStartTime), nil
}

func (r *EventRepository) StartingAfter(ctx context.Context, t time.Time) ([]*domain.Event, error) {
	return r.filter(ctx, func(e *domain.Event) bool { return e.StartTime.After(t) })
}

func (r *EventRepository) EndedBefore(ctx context.Context, t time.Time) ([]*domain.Event, error) {
	return r.filter(ctx, func(e *domain.Event) bool { return e.EndTime.Before(t) })
}

func (r *EventRepository) filter(ctx context.Context, keep func(*domain.Event) bool) ([]*domain.Event, error) {
	all, _ := r.List(ctx)
	out := make([]*domain.Event, 0, len(all))
	for _, e := range all {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *EventRepository) Update(_ context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[e.ID]; !ok {
		return domain.ErrEventNotFound
	}
	r.events[e.ID] = cloneEvent(e)
	return nil
}

func (r *EventRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

// NewsRepository is a map-backed ports.NewsRepository.
type NewsRepository struct {
	mu   sync.RWMutex
	news map[string]*domain.News
}

func NewNewsRepository() *NewsRepository {
	return &NewsRepository{news: make(map[string]*domain.News)}
}

func cloneNews(n *domain.News) *domain.News {
	out := *n
	return &out
}

func (r *NewsRepository) Create(_ context.Context, n *domain.News) (*domain.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneNews(n)
	if stored.ID == "" {
		stored.ID = newID()
	}
	r.news[stored.ID] = stored
	return cloneNews(stored), nil
}

func (r *NewsRepository) FindByID(_ context.Context, id string) (*domain.News, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.news[id]
	if !ok {
		return nil, domain.ErrNewsNotFound
	}
	return cloneNews(n), nil
}

// List returns the newest articles first.
func (r *NewsRepository) List(_ context.Context) ([]*domain.News, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedValues(r.news, cloneNews, func(a, b *domain.News) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	}), nil
}

func (r *NewsRepository) Update(_ context.Context, n *domain.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.news[n.ID]; !ok {
		return domain.ErrNewsNotFound
	}
	r.news[n.ID] = cloneNews(n)
	return nil
}

func (r *NewsRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.news[id]; !ok {
		return domain.ErrNewsNotFound
	}
	delete(r.news, id)
	return nil
}
