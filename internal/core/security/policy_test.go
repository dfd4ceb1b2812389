package security

import (
	"context"
	"errors"
	"testing"

	"github.com/unihub/portal/internal/core/domain"
)

func principal(id string, roles ...string) *Principal {
	return NewPrincipal(&domain.Account{ID: id, Username: id, Roles: roles})
}

func TestEvaluate(t *testing.T) {
	admin := principal("a1", domain.RoleAdmin)
	teacher := principal("t1", domain.RoleTeacher)
	student := principal("s1", domain.RoleStudent)
	roleless := principal("n1")

	tests := []struct {
		name string
		p    *Principal
		rule Rule
		want error
	}{
		{"public anonymous", nil, Public(), nil},
		{"authenticated anonymous", nil, Authenticated(), domain.ErrUnauthenticated},
		{"authenticated roleless", roleless, Authenticated(), nil},
		{"any role anonymous", nil, RequireAnyRole(domain.RoleAdmin), domain.ErrUnauthenticated},
		{"any role match", teacher, RequireAnyRole(domain.RoleAdmin, domain.RoleTeacher), nil},
		{"any role mismatch", student, RequireAnyRole(domain.RoleAdmin, domain.RoleTeacher), domain.ErrForbidden},
		{"any role roleless", roleless, RequireAnyRole(domain.RoleUser), domain.ErrForbidden},
		{"role names are case-sensitive", principal("x", "admin"), RequireAnyRole(domain.RoleAdmin), domain.ErrForbidden},
		{"owner admin", admin, RequireOwnerOrAdmin("t1"), nil},
		{"owner match", teacher, RequireOwnerOrAdmin("t1"), nil},
		{"owner other teacher", principal("t2", domain.RoleTeacher), RequireOwnerOrAdmin("t1"), domain.ErrForbidden},
		{"owner unassigned", teacher, RequireOwnerOrAdmin(""), domain.ErrForbidden},
		{"owner anonymous", nil, RequireOwnerOrAdmin("t1"), domain.ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Evaluate(tt.p, tt.rule)
			if !errors.Is(err, tt.want) || (tt.want == nil && err != nil) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEvaluate_DenialIsStable(t *testing.T) {
	student := principal("s1", domain.RoleStudent)
	for i := 0; i < 5; i++ {
		if err := Evaluate(student, RequireAnyRole(domain.RoleAdmin)); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("attempt %d: expected ErrForbidden, got %v", i, err)
		}
	}
}

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()
	if PrincipalFrom(ctx) != nil {
		t.Fatalf("expected no principal on a bare context")
	}
	p := principal("u1", domain.RoleUser)
	if got := PrincipalFrom(WithPrincipal(ctx, p)); got != p {
		t.Fatalf("expected attached principal, got %+v", got)
	}
}
