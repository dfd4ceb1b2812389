package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/ports"
	"github.com/unihub/portal/internal/core/security"
	"github.com/unihub/portal/internal/core/service"
	"github.com/unihub/portal/internal/infrastructure/db/memory"
)

type captureNotifier struct {
	mu   sync.Mutex
	msgs []ports.Message
}

func (n *captureNotifier) Notify(_ context.Context, msg ports.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
	return nil
}

type testServer struct {
	t        *testing.T
	e        *echo.Echo
	accounts *memory.AccountRepository
	notifier *captureNotifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zerolog.Nop()
	accounts := memory.NewAccountRepository()
	courses := memory.NewCourseRepository()
	notifier := &captureNotifier{}

	codec := security.NewTokenCodec("integration-secret-0123456789abcdef", time.Hour)
	resolver := security.NewPrincipalResolver(codec, accounts)

	e := NewRouter(Services{
		Auth:       service.NewAuthService(accounts, resolver, codec, log),
		Accounts:   service.NewAccountService(accounts, log),
		Courses:    service.NewCourseService(courses, accounts, log),
		Enrollment: service.NewEnrollmentService(courses, accounts, notifier, log),
		Events:     service.NewEventService(memory.NewEventRepository(), accounts, log),
		News:       service.NewNewsService(memory.NewNewsRepository(), log),
		Newsletter: service.NewNewsletterService(accounts, notifier, memory.NewDeliveryDedup(time.Hour), log),
	}, Options{
		Resolver:   resolver,
		Log:        log,
		Registerer: prometheus.NewRegistry(),
	})
	return &testServer{t: t, e: e, accounts: accounts, notifier: notifier}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) expect(rec *httptest.ResponseRecorder, status int) {
	s.t.Helper()
	if rec.Code != status {
		s.t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
}

type session struct {
	Token string          `json:"token"`
	User  *domain.Account `json:"user"`
}

func (s *testServer) register(path, username string) session {
	s.t.Helper()
	rec := s.do(http.MethodPost, path, "", map[string]string{
		"username": username, "email": username + "@uni.test", "password": "pass123",
	})
	s.expect(rec, http.StatusCreated)
	var out session
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		s.t.Fatalf("decode session: %v", err)
	}
	return out
}

func (s *testServer) login(username string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/auth/login", "", map[string]string{"username": username, "password": "pass123"})
	s.expect(rec, http.StatusOK)
	var out session
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return out.Token
}

func (s *testServer) createUser(adminToken, username, role string) *domain.Account {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/users", adminToken, map[string]any{
		"username": username, "email": username + "@uni.test", "password": "pass123", "roles": []string{role},
	})
	s.expect(rec, http.StatusCreated)
	var a domain.Account
	_ = json.Unmarshal(rec.Body.Bytes(), &a)
	return &a
}

func TestRouter_EnrollmentScenario(t *testing.T) {
	s := newTestServer(t)
	admin := s.register("/auth/register-admin", "admin")
	student := s.register("/auth/register", "student1")

	t1 := s.createUser(admin.Token, "teacher1", domain.RoleTeacher)
	s.createUser(admin.Token, "teacher2", domain.RoleTeacher)
	t1Token, t2Token := s.login("teacher1"), s.login("teacher2")

	rec := s.do(http.MethodPost, "/courses", admin.Token, map[string]string{"title": "C1"})
	s.expect(rec, http.StatusCreated)
	var course domain.Course
	_ = json.Unmarshal(rec.Body.Bytes(), &course)

	s.expect(s.do(http.MethodPut, "/courses/"+course.ID+"/teacher/"+t1.ID, admin.Token, nil), http.StatusOK)

	enrollPath := "/courses/" + course.ID + "/students/" + student.User.ID
	s.expect(s.do(http.MethodPost, enrollPath, t1Token, nil), http.StatusOK)
	s.expect(s.do(http.MethodPost, enrollPath, t1Token, nil), http.StatusConflict)
	s.expect(s.do(http.MethodPost, enrollPath, t2Token, nil), http.StatusForbidden)

	s.expect(s.do(http.MethodDelete, enrollPath, admin.Token, nil), http.StatusOK)
	rec = s.do(http.MethodPost, enrollPath, admin.Token, nil)
	s.expect(rec, http.StatusOK)

	_ = json.Unmarshal(rec.Body.Bytes(), &course)
	if len(course.StudentIDs) != 1 || course.StudentIDs[0] != student.User.ID {
		t.Fatalf("expected roster {student1}, got %v", course.StudentIDs)
	}
	if len(s.notifier.msgs) != 2 {
		t.Fatalf("expected two enrollment notifications, got %d", len(s.notifier.msgs))
	}
}

func TestRouter_Policies(t *testing.T) {
	s := newTestServer(t)
	admin := s.register("/auth/register-admin", "admin")
	student := s.register("/auth/register", "student1")

	s.expect(s.do(http.MethodGet, "/health", "", nil), http.StatusOK)
	s.expect(s.do(http.MethodGet, "/courses", "", nil), http.StatusUnauthorized)
	s.expect(s.do(http.MethodGet, "/courses", "garbage", nil), http.StatusUnauthorized)
	s.expect(s.do(http.MethodGet, "/courses", student.Token, nil), http.StatusOK)

	for i := 0; i < 3; i++ {
		s.expect(s.do(http.MethodPost, "/courses", student.Token, map[string]string{"title": "X"}), http.StatusForbidden)
	}
	s.expect(s.do(http.MethodGet, "/users", student.Token, nil), http.StatusForbidden)
	s.expect(s.do(http.MethodGet, "/users/students", admin.Token, nil), http.StatusOK)
	s.expect(s.do(http.MethodPost, "/newsletter/send", student.Token, map[string]string{"subject": "s", "message": "m"}), http.StatusForbidden)
}

func TestRouter_RolesAreReadFromStore(t *testing.T) {
	s := newTestServer(t)
	admin := s.register("/auth/register-admin", "admin")
	user := s.register("/auth/register", "user01")

	s.expect(s.do(http.MethodGet, "/users", user.Token, nil), http.StatusForbidden)

	s.expect(s.do(http.MethodPut, "/users/"+user.User.ID, admin.Token, map[string]any{"roles": []string{domain.RoleTeacher}}), http.StatusOK)
	s.expect(s.do(http.MethodGet, "/users", user.Token, nil), http.StatusOK)

	s.expect(s.do(http.MethodDelete, "/users/"+user.User.ID, admin.Token, nil), http.StatusNoContent)
	s.expect(s.do(http.MethodGet, "/courses", user.Token, nil), http.StatusUnauthorized)
}

func TestRouter_LoginFailuresLookAlike(t *testing.T) {
	s := newTestServer(t)
	s.register("/auth/register", "alice")

	wrong := s.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "alice", "password": "nope"})
	unknown := s.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "mallory", "password": "nope"})
	s.expect(wrong, http.StatusUnauthorized)
	s.expect(unknown, http.StatusUnauthorized)
	if wrong.Body.String() != unknown.Body.String() {
		t.Fatalf("responses differ: %s vs %s", wrong.Body.String(), unknown.Body.String())
	}
}

func TestRouter_DuplicateRegistration(t *testing.T) {
	s := newTestServer(t)
	s.register("/auth/register", "alice")

	rec := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"username": "alice", "email": "other@uni.test", "password": "pass123",
	})
	s.expect(rec, http.StatusConflict)
}
