package ports

import (
	"context"

	"github.com/unihub/portal/internal/core/domain"
)

// RegisterInput carries the fields of a self-service or admin registration.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService registers accounts and issues session tokens.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.Account, error)
	RegisterAdmin(ctx context.Context, in RegisterInput) (string, *domain.Account, error)
	Login(ctx context.Context, username, password string) (string, *domain.Account, error)
}
