package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/ports"
	"github.com/unihub/portal/internal/core/security"
	"github.com/unihub/portal/internal/infrastructure/db/memory"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []ports.Message
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, msg ports.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) messages() []ports.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.Message(nil), n.sent...)
}

var errMailDown = errors.New("smtp: connection refused")

type fixture struct {
	accounts *memory.AccountRepository
	courses  *memory.CourseRepository
	notifier *recordingNotifier
	log      zerolog.Logger
}

func newFixture() *fixture {
	return &fixture{
		accounts: memory.NewAccountRepository(),
		courses:  memory.NewCourseRepository(),
		notifier: &recordingNotifier{},
		log:      zerolog.Nop(),
	}
}

func (f *fixture) account(t *testing.T, username string, roles ...string) *domain.Account {
	t.Helper()
	a, err := f.accounts.Create(context.Background(), &domain.Account{
		Username:  username,
		Email:     username + "@uni.test",
		Roles:     roles,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create account %s: %v", username, err)
	}
	return a
}

func (f *fixture) course(t *testing.T, title, teacherID string) *domain.Course {
	t.Helper()
	c, err := f.courses.Create(context.Background(), &domain.Course{Title: title, TeacherID: teacherID, StudentIDs: []string{}})
	if err != nil {
		t.Fatalf("create course %s: %v", title, err)
	}
	return c
}

func (f *fixture) students(t *testing.T, courseID string) []string {
	t.Helper()
	c, err := f.courses.FindByID(context.Background(), courseID)
	if err != nil {
		t.Fatalf("load course: %v", err)
	}
	return c.StudentIDs
}

func principalOf(a *domain.Account) *security.Principal {
	return security.NewPrincipal(a)
}
