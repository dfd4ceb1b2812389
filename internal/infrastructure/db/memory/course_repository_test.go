package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/ports"
)

func TestCourseRepository_SaveChecksVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository()

	created, err := repo.Create(ctx, &domain.Course{Title: "Algebra"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, _ := repo.FindByID(ctx, created.ID)
	second, _ := repo.FindByID(ctx, created.ID)

	first.AddStudent("s1")
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if first.Version != created.Version+1 {
		t.Fatalf("expected version bump, got %d", first.Version)
	}

	second.AddStudent("s2")
	if err := repo.Save(ctx, second); !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	stored, _ := repo.FindByID(ctx, created.ID)
	if len(stored.StudentIDs) != 1 || stored.StudentIDs[0] != "s1" {
		t.Fatalf("stale save leaked into store: %v", stored.StudentIDs)
	}
}

func TestCourseRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository()
	created, _ := repo.Create(ctx, &domain.Course{Title: "Physics"})

	loaded, _ := repo.FindByID(ctx, created.ID)
	loaded.StudentIDs = append(loaded.StudentIDs, "intruder")

	again, _ := repo.FindByID(ctx, created.ID)
	if again.HasStudent("intruder") {
		t.Fatalf("mutating a loaded course changed the store")
	}
}

func TestAccountRepository_ListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()
	for _, a := range []*domain.Account{
		{Username: "anna", Email: "anna@uni.test", Roles: []string{domain.RoleStudent}},
		{Username: "bob", Email: "bob@uni.test", Roles: []string{domain.RoleTeacher}},
		{Username: "hannah", Email: "hannah@uni.test", Roles: []string{domain.RoleStudent}},
		{Username: "joanna", Email: "joanna@uni.test", Roles: []string{domain.RoleStudent}},
	} {
		if _, err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create %s: %v", a.Username, err)
		}
	}

	got, total, err := repo.List(ctx, ports.AccountFilter{Role: domain.RoleStudent, UsernameLike: "ANN", Size: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 matches, got %d", total)
	}
	if len(got) != 2 || got[0].Username != "anna" || got[1].Username != "hannah" {
		t.Fatalf("unexpected first page: %+v", got)
	}

	got, _, _ = repo.List(ctx, ports.AccountFilter{Role: domain.RoleStudent, UsernameLike: "ann", Page: 1, Size: 2})
	if len(got) != 1 || got[0].Username != "joanna" {
		t.Fatalf("unexpected second page: %+v", got)
	}
}

func TestAccountRepository_CreateRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()
	if _, err := repo.Create(ctx, &domain.Account{Username: "anna", Email: "anna@uni.test"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.Account{Username: "anna", Email: "other@uni.test"}); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	if _, err := repo.Create(ctx, &domain.Account{Username: "other", Email: "anna@uni.test"}); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}
