package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/unihub/portal/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if decodeErr := json.Unmarshal(rec.Body.Bytes(), &body); decodeErr != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), decodeErr)
	}
	return rec.Code, body.Error
}

func TestErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{domain.ErrCourseNotFound, http.StatusNotFound, "course not found"},
		{domain.ErrStudentNotFound, http.StatusNotFound, "student not found"},
		{domain.ErrAlreadyEnrolled, http.StatusConflict, "student is already enrolled in this course"},
		{domain.ErrNotAStudent, http.StatusBadRequest, "user is not a student"},
		{domain.ErrDuplicateEmail, http.StatusConflict, "email is already in use"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{fmt.Errorf("%w: title is required", domain.ErrInvalidInput), http.StatusBadRequest, "invalid input: title is required"},
		{echo.NewHTTPError(http.StatusBadRequest, "username is required"), http.StatusBadRequest, "username is required"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			status, msg := renderError(t, tt.err)
			if status != tt.status || msg != tt.msg {
				t.Fatalf("got %d %q, want %d %q", status, msg, tt.status, tt.msg)
			}
		})
	}
}

func TestErrorHandler_AuthFailuresHideCause(t *testing.T) {
	wrapped := fmt.Errorf("%w: %w", domain.ErrUnauthenticated, fmt.Errorf("%w: token has invalid signature", domain.ErrInvalidToken))

	status, msg := renderError(t, wrapped)
	if status != http.StatusUnauthorized || msg != "authentication required" {
		t.Fatalf("got %d %q", status, msg)
	}
}

func TestErrorHandler_UnknownErrorIsGeneric(t *testing.T) {
	status, msg := renderError(t, errors.New("mongo: server selection timeout"))
	if status != http.StatusInternalServerError || msg != "internal server error" {
		t.Fatalf("got %d %q", status, msg)
	}
}
