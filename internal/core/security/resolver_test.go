package security

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/unihub/portal/internal/core/domain"
)

type stubLookup struct {
	accounts map[string]*domain.Account
	err      error
	calls    int
}

func (s *stubLookup) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.accounts[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *a
	return &clone, nil
}

func newResolverWith(t *testing.T, accounts ...*domain.Account) (*PrincipalResolver, *TokenCodec, *stubLookup) {
	t.Helper()
	lookup := &stubLookup{accounts: make(map[string]*domain.Account)}
	for _, a := range accounts {
		lookup.accounts[a.Username] = a
	}
	codec := NewTokenCodec("resolver-test-secret", time.Hour)
	return NewPrincipalResolver(codec, lookup), codec, lookup
}

func TestResolveFromToken_LoadsCurrentRoles(t *testing.T) {
	account := &domain.Account{ID: "u1", Username: "alice", Roles: []string{domain.RoleStudent}}
	resolver, codec, lookup := newResolverWith(t, account)

	token, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	p, err := resolver.ResolveFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.AccountID != "u1" || p.Username != "alice" || !p.HasRole(domain.RoleStudent) {
		t.Fatalf("unexpected principal: %+v", p)
	}

	// Promote the account; the same token must now carry the new role.
	lookup.accounts["alice"].Roles = []string{domain.RoleTeacher}
	p, err = resolver.ResolveFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve after role change: %v", err)
	}
	if p.HasRole(domain.RoleStudent) || !p.HasRole(domain.RoleTeacher) {
		t.Fatalf("expected roles re-read from store, got %+v", p.Roles)
	}
}

func TestResolveFromToken_DeletedAccount(t *testing.T) {
	resolver, codec, _ := newResolverWith(t)
	token, _ := codec.Issue("ghost")

	if _, err := resolver.ResolveFromToken(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestResolveFromToken_InvalidToken(t *testing.T) {
	resolver, _, lookup := newResolverWith(t)

	_, err := resolver.ResolveFromToken(context.Background(), "garbage")
	if !errors.Is(err, domain.ErrUnauthenticated) || !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrUnauthenticated wrapping ErrInvalidToken, got %v", err)
	}
	if lookup.calls != 0 {
		t.Fatalf("store must not be consulted for an invalid token")
	}
}

func TestResolveFromToken_StoreFailure(t *testing.T) {
	resolver, codec, lookup := newResolverWith(t)
	lookup.err = errors.New("mongo down")
	token, _ := codec.Issue("alice")

	_, err := resolver.ResolveFromToken(context.Background(), token)
	if err == nil || errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
}

func TestResolveFromCredentials(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	account := &domain.Account{ID: "u1", Username: "alice", PasswordHash: hash, Roles: []string{domain.RoleAdmin}}
	resolver, _, _ := newResolverWith(t, account)
	ctx := context.Background()

	p, got, err := resolver.ResolveFromCredentials(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !p.HasRole(domain.RoleAdmin) || got.ID != "u1" {
		t.Fatalf("unexpected result: %+v %+v", p, got)
	}

	if _, _, err := resolver.ResolveFromCredentials(ctx, "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := resolver.ResolveFromCredentials(ctx, "nobody", "s3cret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, _, err := resolver.ResolveFromCredentials(ctx, "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty input, got %v", err)
	}
}
