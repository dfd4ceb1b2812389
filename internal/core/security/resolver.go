package security

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/unihub/portal/internal/core/domain"
)

// AccountLookup is the slice of the account store the resolver needs.
type AccountLookup interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
}

// PrincipalResolver authenticates raw credentials against the account store.
// Roles are always taken from the stored account, never from the token.
type PrincipalResolver struct {
	codec    *TokenCodec
	accounts AccountLookup
}

func NewPrincipalResolver(codec *TokenCodec, accounts AccountLookup) *PrincipalResolver {
	return &PrincipalResolver{codec: codec, accounts: accounts}
}

// ResolveFromToken verifies token and loads its subject. Any failure,
// including a subject whose account has since been deleted, wraps
// domain.ErrUnauthenticated.
func (r *PrincipalResolver) ResolveFromToken(ctx context.Context, token string) (*Principal, error) {
	subject, err := r.codec.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	account, err := r.accounts.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: account %q no longer exists", domain.ErrUnauthenticated, subject)
		}
		return nil, fmt.Errorf("resolve principal: %w", err)
	}
	return NewPrincipal(account), nil
}

// ResolveFromCredentials checks username/password. Unknown user and wrong
// password both yield domain.ErrInvalidCredentials.
func (r *PrincipalResolver) ResolveFromCredentials(ctx context.Context, username, password string) (*Principal, *domain.Account, error) {
	if username == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}
	account, err := r.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Equalize timing with the wrong-password path.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("resolve credentials: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	return NewPrincipal(account), account, nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("unihub-portal"), bcrypt.DefaultCost)
