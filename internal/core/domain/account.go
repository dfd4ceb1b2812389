package domain

import "time"

// Role names are compared exactly.
const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleStudent = "STUDENT"
	RoleUser    = "USER"
)

// KnownRole reports whether name is one of the fixed role names.
func KnownRole(name string) bool {
	switch name {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleUser:
		return true
	}
	return false
}

// Account models a registered portal user.
type Account struct {
	ID                     string    `json:"id"`
	Username               string    `json:"username"`
	Email                  string    `json:"email"`
	PasswordHash           string    `json:"-"`
	FirstName              string    `json:"first_name"`
	LastName               string    `json:"last_name"`
	Roles                  []string  `json:"roles"`
	SubscribedToNewsletter bool      `json:"subscribed_to_newsletter"`
	CreatedAt              time.Time `json:"created_at"`
}

// HasRole reports whether the account currently holds role.
func (a *Account) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// NormalizeRoles drops duplicates while keeping first-seen order.
func NormalizeRoles(roles []string) []string {
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
