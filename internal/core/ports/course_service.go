package ports

import (
	"context"

	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/security"
)

// CourseInput carries the editable course fields.
type CourseInput struct {
	Title       string
	Description string
}

// CourseService covers course CRUD and roster administration.
type CourseService interface {
	List(ctx context.Context) ([]*domain.Course, error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	Create(ctx context.Context, in CourseInput) (*domain.Course, error)
	Update(ctx context.Context, id string, in CourseInput) (*domain.Course, error)
	Delete(ctx context.Context, id string) error
	RemoveStudent(ctx context.Context, courseID, studentID string) (*domain.Course, error)
	AssignTeacher(ctx context.Context, courseID, teacherID string) (*domain.Course, error)
}

// EnrollmentService runs the ordered enrollment precondition pipeline.
type EnrollmentService interface {
	Enroll(ctx context.Context, courseID, studentID string, caller *security.Principal) (*domain.Course, error)
}
