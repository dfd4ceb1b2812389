package domain

import "errors"

// Authentication and authorization.
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Enrollment workflow.
var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrNotAStudent     = errors.New("user is not a student")
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this course")
)

// Accounts.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username is already taken")
	ErrDuplicateEmail    = errors.New("email is already in use")
	ErrInvalidRole       = errors.New("unknown role")
	ErrTeacherNotFound   = errors.New("teacher not found")
	ErrNotATeacher       = errors.New("user is not a teacher")
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNewsNotFound  = errors.New("news not found")
	ErrInvalidInput  = errors.New("invalid input")

	// ErrVersionConflict signals a concurrent write on the same course record.
	ErrVersionConflict = errors.New("concurrent modification")

	// ErrNotificationDeliveryFailed is recovered locally and never reaches a caller.
	ErrNotificationDeliveryFailed = errors.New("notification delivery failed")
)
