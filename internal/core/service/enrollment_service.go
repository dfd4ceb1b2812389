package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/ports"
	"github.com/unihub/portal/internal/core/security"
)

const enrollmentSubject = "Course enrollment"

type enrollmentService struct {
	courses  ports.CourseRepository
	accounts ports.AccountRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewEnrollmentService returns the enrollment workflow.
func NewEnrollmentService(
	courses ports.CourseRepository,
	accounts ports.AccountRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) ports.EnrollmentService {
	return &enrollmentService{courses: courses, accounts: accounts, notifier: notifier, log: log}
}

// Enroll adds studentID to the course on behalf of caller.
//
// Preconditions are checked in a fixed order and the first failure wins:
// course exists, student exists, caller owns the course or is ADMIN,
// student holds STUDENT, student not yet enrolled. Only then is the course
// written. A version conflict on the write restarts the checks, so a losing
// concurrent enrollment of the same pair ends in ErrAlreadyEnrolled.
//
// The notification is sent after the write and its failure never fails the call.
func (s *enrollmentService) Enroll(ctx context.Context, courseID, studentID string, caller *security.Principal) (*domain.Course, error) {
	var (
		course  *domain.Course
		student *domain.Account
		err     error
	)
	for attempt := 1; ; attempt++ {
		course, student, err = s.check(ctx, courseID, studentID, caller)
		if err != nil {
			return nil, err
		}

		course.AddStudent(student.ID)
		err = s.courses.Save(ctx, course)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrVersionConflict) && attempt < maxSaveAttempts {
			s.log.Debug().Str("course_id", courseID).Int("attempt", attempt).Msg("enrollment version conflict, rechecking")
			continue
		}
		return nil, fmt.Errorf("enroll: save course: %w", err)
	}

	s.log.Info().
		Str("course_id", course.ID).
		Str("student_id", student.ID).
		Str("caller", caller.Username).
		Msg("student enrolled")

	s.notify(ctx, course, student)
	return course, nil
}

// check runs the read-only preconditions.
func (s *enrollmentService) check(ctx context.Context, courseID, studentID string, caller *security.Principal) (*domain.Course, *domain.Account, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			return nil, nil, domain.ErrCourseNotFound
		}
		return nil, nil, fmt.Errorf("enroll: load course: %w", err)
	}

	student, err := s.accounts.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrStudentNotFound
		}
		return nil, nil, fmt.Errorf("enroll: load student: %w", err)
	}

	if err := security.Evaluate(caller, security.RequireOwnerOrAdmin(course.TeacherID)); err != nil {
		s.log.Warn().
			Str("course_id", courseID).
			Str("caller", callerName(caller)).
			Msg("caller may not enroll students in this course")
		return nil, nil, err
	}

	if !student.HasRole(domain.RoleStudent) {
		return nil, nil, domain.ErrNotAStudent
	}
	if course.HasStudent(student.ID) {
		return nil, nil, domain.ErrAlreadyEnrolled
	}
	return course, student, nil
}

func (s *enrollmentService) notify(ctx context.Context, course *domain.Course, student *domain.Account) {
	if student.Email == "" {
		s.log.Warn().Str("student_id", student.ID).Msg("student has no email, enrollment notification skipped")
		return
	}
	msg := ports.Message{
		To:      student.Email,
		Subject: enrollmentSubject,
		Body:    fmt.Sprintf("You have been enrolled in the course %q.", course.Title),
	}
	if err := s.notifier.Notify(ctx, msg); err != nil {
		s.log.Error().
			Err(fmt.Errorf("%w: %w", domain.ErrNotificationDeliveryFailed, err)).
			Str("student_id", student.ID).
			Str("course_id", course.ID).
			Msg("enrollment notification not sent")
	}
}

func callerName(p *security.Principal) string {
	if p == nil {
		return ""
	}
	return p.Username
}
