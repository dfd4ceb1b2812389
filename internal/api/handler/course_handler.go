package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/unihub/portal/internal/api/metrics"
	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/ports"
)

type CourseHandler struct {
	courses    ports.CourseService
	enrollment ports.EnrollmentService
}

func NewCourseHandler(courses ports.CourseService, enrollment ports.EnrollmentService) *CourseHandler {
	return &CourseHandler{courses: courses, enrollment: enrollment}
}

// List returns all courses.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Course
// @Failure      401  {object}  map[string]string
// @Router       /courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.courses.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

// Get returns one course.
//
// @Summary      Get course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  domain.Course
// @Failure      404  {object}  map[string]string
// @Router       /courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.courses.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// Create adds a course.
//
// @Summary      Create course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      courseRequest  true  "Course"
// @Success      201   {object}  domain.Course
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	var req courseRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	course, err := h.courses.Create(c.Request().Context(), ports.CourseInput{Title: req.Title, Description: req.Description})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, course)
}

// Update changes title and description.
//
// @Summary      Update course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Course id"
// @Param        body  body      courseRequest  true  "Course"
// @Success      200   {object}  domain.Course
// @Failure      404   {object}  map[string]string
// @Router       /courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	var req courseRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	course, err := h.courses.Update(c.Request().Context(), c.Param("id"), ports.CourseInput{Title: req.Title, Description: req.Description})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// Delete removes a course.
//
// @Summary      Delete course
// @Tags         courses
// @Security     BearerAuth
// @Param        id   path  string  true  "Course id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	if err := h.courses.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Enroll adds a student to a course. Teachers may only enroll into courses they own.
//
// @Summary      Enroll student
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true  "Course id"
// @Param        studentId  path      string  true  "Student account id"
// @Success      200        {object}  domain.Course
// @Failure      400        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string
// @Router       /courses/{id}/students/{studentId} [post]
func (h *CourseHandler) Enroll(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}

	course, err := h.enrollment.Enroll(c.Request().Context(), c.Param("id"), c.Param("studentId"), caller)
	metrics.EnrollmentsTotal.WithLabelValues(enrollmentOutcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// RemoveStudent drops a student from a course roster.
//
// @Summary      Remove student
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true  "Course id"
// @Param        studentId  path      string  true  "Student account id"
// @Success      200        {object}  domain.Course
// @Failure      404        {object}  map[string]string
// @Router       /courses/{id}/students/{studentId} [delete]
func (h *CourseHandler) RemoveStudent(c echo.Context) error {
	course, err := h.courses.RemoveStudent(c.Request().Context(), c.Param("id"), c.Param("studentId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// AssignTeacher sets the owning teacher of a course.
//
// @Summary      Assign teacher
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true  "Course id"
// @Param        teacherId  path      string  true  "Teacher account id"
// @Success      200        {object}  domain.Course
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /courses/{id}/teacher/{teacherId} [put]
func (h *CourseHandler) AssignTeacher(c echo.Context) error {
	course, err := h.courses.AssignTeacher(c.Request().Context(), c.Param("id"), c.Param("teacherId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

func enrollmentOutcome(err error) string {
	switch {
	case err == nil:
		return "enrolled"
	case errors.Is(err, domain.ErrCourseNotFound):
		return "course_not_found"
	case errors.Is(err, domain.ErrStudentNotFound):
		return "student_not_found"
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUnauthenticated):
		return "forbidden"
	case errors.Is(err, domain.ErrNotAStudent):
		return "not_a_student"
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		return "already_enrolled"
	default:
		return "error"
	}
}
