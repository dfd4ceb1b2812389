package memory

import (
	"context"
	"sync"

	"github.com/unihub/portal/internal/core/domain"
)

// CourseRepository is a map-backed ports.CourseRepository with version checks on Save.
type CourseRepository struct {
	mu      sync.Mutex
	courses map[string]*domain.Course
}

func NewCourseRepository() *CourseRepository {
	return &CourseRepository{courses: make(map[string]*domain.Course)}
}

func cloneCourse(c *domain.Course) *domain.Course {
	if c == nil {
		return nil
	}
	out := *c
	out.StudentIDs = append([]string{}, c.StudentIDs...)
	return &out
}

func (r *CourseRepository) Create(_ context.Context, c *domain.Course) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneCourse(c)
	if stored.ID == "" {
		stored.ID = newID()
	}
	stored.Version = 1
	r.courses[stored.ID] = stored
	return cloneCourse(stored), nil
}

func (r *CourseRepository) FindByID(_ context.Context, id string) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	return cloneCourse(c), nil
}

func (r *CourseRepository) List(_ context.Context) ([]*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return sortedValues(r.courses, cloneCourse, func(a, b *domain.Course) bool {
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	}), nil
}

func (r *CourseRepository) Save(_ context.Context, c *domain.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.courses[c.ID]
	if !ok {
		return domain.ErrCourseNotFound
	}
	if stored.Version != c.Version {
		return domain.ErrVersionConflict
	}
	c.Version++
	r.courses[c.ID] = cloneCourse(c)
	return nil
}

func (r *CourseRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}
