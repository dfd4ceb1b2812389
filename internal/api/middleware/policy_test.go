package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/security"
)

func newPolicyContext(p *security.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/courses", nil)
	if p != nil {
		req = req.WithContext(security.WithPrincipal(req.Context(), p))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func principalWith(roles ...string) *security.Principal {
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return &security.Principal{AccountID: "acc-1", Username: "someone", Roles: set}
}

func TestRequire_Allows(t *testing.T) {
	c, rec := newPolicyContext(principalWith(domain.RoleTeacher))

	called := false
	handler := RequireRoles(domain.RoleAdmin, domain.RoleTeacher)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected next to run with 200, got called=%v code=%d", called, rec.Code)
	}
}

func TestRequire_Denials(t *testing.T) {
	tests := []struct {
		name string
		p    *security.Principal
		rule security.Rule
		want error
	}{
		{"anonymous on authenticated", nil, security.Authenticated(), domain.ErrUnauthenticated},
		{"anonymous on admin", nil, security.RequireAnyRole(domain.RoleAdmin), domain.ErrUnauthenticated},
		{"student on admin", principalWith(domain.RoleStudent), security.RequireAnyRole(domain.RoleAdmin), domain.ErrForbidden},
		{"no roles on teacher", principalWith(), security.RequireAnyRole(domain.RoleTeacher), domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newPolicyContext(tt.p)
			handler := Require(tt.rule)(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})
			if err := handler(c); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRequire_DenialIsRepeatable(t *testing.T) {
	handler := RequireRoles(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	for i := 0; i < 5; i++ {
		c, _ := newPolicyContext(principalWith(domain.RoleTeacher))
		if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("attempt %d: expected ErrForbidden, got %v", i, err)
		}
	}
}

func TestRequire_PublicNeedsNoPrincipal(t *testing.T) {
	c, _ := newPolicyContext(nil)
	called := false
	handler := Require(security.Public())(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := handler(c); err != nil || !called {
		t.Fatalf("expected public rule to pass, err=%v called=%v", err, called)
	}
}
