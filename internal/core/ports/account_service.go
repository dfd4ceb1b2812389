package ports

import (
	"context"

	"github.com/unihub/portal/internal/core/domain"
)

// CreateAccountInput is used by administrators to create accounts directly.
type CreateAccountInput struct {
	RegisterInput
	Roles []string // defaults to USER when empty
}

// UpdateAccountInput carries optional changes; nil fields are left untouched.
type UpdateAccountInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Password  *string
	Roles     []string // replaced when non-nil
}

// Page is one slice of a paginated listing.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
}

// AccountService manages accounts on behalf of administrators and teachers.
type AccountService interface {
	List(ctx context.Context, page, size int) (*Page[*domain.Account], error)
	ListStudents(ctx context.Context, page int, nameLike string) (*Page[*domain.Account], error)
	Get(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, in CreateAccountInput) (*domain.Account, error)
	Update(ctx context.Context, id string, in UpdateAccountInput) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
}
