package ports

import (
	"context"

	"github.com/unihub/portal/internal/core/domain"
)

// CourseRepository persists courses.
type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) (*domain.Course, error)
	// FindByID returns domain.ErrCourseNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context) ([]*domain.Course, error)
	// Save writes c only if the stored version equals c.Version, then bumps
	// c.Version. A mismatch yields domain.ErrVersionConflict and no write.
	Save(ctx context.Context, c *domain.Course) error
	Delete(ctx context.Context, id string) error
}
