package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/ports"
)

// maxSaveAttempts bounds optimistic-concurrency retries on a single course.
const maxSaveAttempts = 3

type courseService struct {
	courses  ports.CourseRepository
	accounts ports.AccountRepository
	log      zerolog.Logger
}

// NewCourseService returns a CourseService implementation.
func NewCourseService(courses ports.CourseRepository, accounts ports.AccountRepository, log zerolog.Logger) ports.CourseService {
	return &courseService{courses: courses, accounts: accounts, log: log}
}

func (s *courseService) List(ctx context.Context) ([]*domain.Course, error) {
	return s.courses.List(ctx)
}

func (s *courseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	return s.courses.FindByID(ctx, id)
}

func (s *courseService) Create(ctx context.Context, in ports.CourseInput) (*domain.Course, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	created, err := s.courses.Create(ctx, &domain.Course{
		Title:       title,
		Description: in.Description,
		StudentIDs:  []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	s.log.Info().Str("course_id", created.ID).Str("title", created.Title).Msg("course created")
	return created, nil
}

func (s *courseService) Update(ctx context.Context, id string, in ports.CourseInput) (*domain.Course, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	return s.mutate(ctx, id, func(c *domain.Course) (bool, error) {
		c.Title = title
		c.Description = in.Description
		return true, nil
	})
}

func (s *courseService) Delete(ctx context.Context, id string) error {
	if _, err := s.courses.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	s.log.Info().Str("course_id", id).Msg("course deleted")
	return nil
}

// RemoveStudent drops studentID from the course roster. Removing a student
// who is not enrolled leaves the course unchanged.
func (s *courseService) RemoveStudent(ctx context.Context, courseID, studentID string) (*domain.Course, error) {
	course, err := s.mutate(ctx, courseID, func(c *domain.Course) (bool, error) {
		if _, err := s.accounts.FindByID(ctx, studentID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return false, domain.ErrStudentNotFound
			}
			return false, err
		}
		return c.RemoveStudent(studentID), nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("course_id", courseID).Str("student_id", studentID).Msg("student removed from course")
	return course, nil
}

// AssignTeacher makes teacherID the owning teacher of the course.
func (s *courseService) AssignTeacher(ctx context.Context, courseID, teacherID string) (*domain.Course, error) {
	course, err := s.mutate(ctx, courseID, func(c *domain.Course) (bool, error) {
		teacher, err := s.accounts.FindByID(ctx, teacherID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return false, domain.ErrTeacherNotFound
			}
			return false, err
		}
		if !teacher.HasRole(domain.RoleTeacher) {
			return false, domain.ErrNotATeacher
		}
		c.TeacherID = teacher.ID
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("course_id", courseID).Str("teacher_id", teacherID).Msg("teacher assigned")
	return course, nil
}

// mutate loads the course, applies fn and saves it with a version check,
// reloading and reapplying fn on a concurrent-write conflict. fn returns
// false when nothing changed and no write is needed.
func (s *courseService) mutate(ctx context.Context, id string, fn func(*domain.Course) (bool, error)) (*domain.Course, error) {
	for attempt := 1; ; attempt++ {
		course, err := s.courses.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		changed, err := fn(course)
		if err != nil {
			return nil, err
		}
		if !changed {
			return course, nil
		}

		err = s.courses.Save(ctx, course)
		if err == nil {
			return course, nil
		}
		if errors.Is(err, domain.ErrVersionConflict) && attempt < maxSaveAttempts {
			s.log.Debug().Str("course_id", id).Int("attempt", attempt).Msg("course version conflict, retrying")
			continue
		}
		return nil, fmt.Errorf("save course: %w", err)
	}
}
