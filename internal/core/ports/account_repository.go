package ports

import (
	"context"

	"github.com/unihub/portal/internal/core/domain"
)

// AccountFilter narrows List. Zero values disable the corresponding filter.
type AccountFilter struct {
	Role         string // exact role name
	UsernameLike string // case-insensitive substring
	Page         int    // 0-based
	Size         int
}

// AccountRepository persists accounts. Lookups return domain.ErrUserNotFound when absent.
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, a *domain.Account) error
	Delete(ctx context.Context, id string) error

	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	List(ctx context.Context, filter AccountFilter) ([]*domain.Account, int64, error)
	ListSubscribers(ctx context.Context) ([]*domain.Account, error)
}
