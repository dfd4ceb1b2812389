package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/unihub/portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// errorMapping binds a domain sentinel to its HTTP status. When detail is
// true the full wrapped message is shown; otherwise only the sentinel text.
type errorMapping struct {
	target error
	status int
	detail bool
}

// Order matters: the first match wins, and authentication errors come first
// so a wrapped ErrUnauthenticated never leaks its cause.
var errorMappings = []errorMapping{
	{domain.ErrUnauthenticated, http.StatusUnauthorized, false},
	{domain.ErrInvalidToken, http.StatusUnauthorized, false},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, false},
	{domain.ErrForbidden, http.StatusForbidden, false},

	{domain.ErrCourseNotFound, http.StatusNotFound, false},
	{domain.ErrStudentNotFound, http.StatusNotFound, false},
	{domain.ErrUserNotFound, http.StatusNotFound, false},
	{domain.ErrTeacherNotFound, http.StatusNotFound, false},
	{domain.ErrEventNotFound, http.StatusNotFound, false},
	{domain.ErrNewsNotFound, http.StatusNotFound, false},

	{domain.ErrAlreadyEnrolled, http.StatusConflict, false},
	{domain.ErrDuplicateUsername, http.StatusConflict, false},
	{domain.ErrDuplicateEmail, http.StatusConflict, false},
	{domain.ErrVersionConflict, http.StatusConflict, false},

	{domain.ErrNotAStudent, http.StatusBadRequest, false},
	{domain.ErrNotATeacher, http.StatusBadRequest, false},
	{domain.ErrInvalidRole, http.StatusBadRequest, true},
	{domain.ErrInvalidInput, http.StatusBadRequest, true},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, validation, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.detail {
				return m.status, err.Error()
			}
			return m.status, m.target.Error()
		}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
