package security

import (
	"context"

	"github.com/unihub/portal/internal/core/domain"
)

// Principal is the resolved identity of the current request.
type Principal struct {
	AccountID string
	Username  string
	Roles     map[string]struct{}
}

// NewPrincipal builds a Principal from an account snapshot.
func NewPrincipal(a *domain.Account) *Principal {
	roles := make(map[string]struct{}, len(a.Roles))
	for _, r := range a.Roles {
		roles[r] = struct{}{}
	}
	return &Principal{AccountID: a.ID, Username: a.Username, Roles: roles}
}

// HasRole reports whether the principal holds role.
func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	_, ok := p.Roles[role]
	return ok
}

// HasAnyRole reports whether the principal holds at least one of roles.
func (p *Principal) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}

type principalKey struct{}

// WithPrincipal returns a child context carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal attached to ctx, or nil.
func PrincipalFrom(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
