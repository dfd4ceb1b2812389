package security

import (
	"fmt"

	"github.com/unihub/portal/internal/core/domain"
)

type ruleKind int

const (
	rulePublic ruleKind = iota
	ruleAuthenticated
	ruleAnyRole
	ruleOwnerOrAdmin
)

// Rule is a declarative authorization rule attached to an endpoint or
// evaluated against a loaded resource.
type Rule struct {
	kind    ruleKind
	roles   []string
	ownerID string
}

// Public needs no principal.
func Public() Rule { return Rule{kind: rulePublic} }

// Authenticated needs a principal but no particular role.
func Authenticated() Rule { return Rule{kind: ruleAuthenticated} }

// RequireAnyRole permits a principal holding at least one of roles.
func RequireAnyRole(roles ...string) Rule {
	return Rule{kind: ruleAnyRole, roles: roles}
}

// RequireOwnerOrAdmin permits ADMIN, or the principal whose account id is ownerID.
// An empty ownerID matches nobody.
func RequireOwnerOrAdmin(ownerID string) Rule {
	return Rule{kind: ruleOwnerOrAdmin, ownerID: ownerID}
}

func (r Rule) String() string {
	switch r.kind {
	case rulePublic:
		return "public"
	case ruleAuthenticated:
		return "authenticated"
	case ruleAnyRole:
		return fmt.Sprintf("any_role%v", r.roles)
	case ruleOwnerOrAdmin:
		return "owner_or_admin"
	}
	return "unknown"
}

// Evaluate applies rule to p. Presence is checked first (domain.ErrUnauthenticated),
// then the predicate (domain.ErrForbidden). A nil result means allow.
func Evaluate(p *Principal, rule Rule) error {
	if rule.kind == rulePublic {
		return nil
	}
	if p == nil {
		return domain.ErrUnauthenticated
	}
	switch rule.kind {
	case ruleAuthenticated:
		return nil
	case ruleAnyRole:
		if p.HasAnyRole(rule.roles...) {
			return nil
		}
	case ruleOwnerOrAdmin:
		if p.HasRole(domain.RoleAdmin) {
			return nil
		}
		if rule.ownerID != "" && p.AccountID == rule.ownerID {
			return nil
		}
	}
	return domain.ErrForbidden
}
