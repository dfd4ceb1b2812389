package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/ports"
	"github.com/unihub/portal/internal/core/security"
)

// AuthService implements registration and login.
type AuthService struct {
	accounts ports.AccountRepository
	resolver *security.PrincipalResolver
	codec    *security.TokenCodec
	log      zerolog.Logger
}

func NewAuthService(
	accounts ports.AccountRepository,
	resolver *security.PrincipalResolver,
	codec *security.TokenCodec,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{accounts: accounts, resolver: resolver, codec: codec, log: log}
}

// Register creates a STUDENT account and returns a session token for it.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.Account, error) {
	return s.register(ctx, in, domain.RoleStudent)
}

// RegisterAdmin bootstraps an ADMIN account and returns a session token for it.
func (s *AuthService) RegisterAdmin(ctx context.Context, in ports.RegisterInput) (string, *domain.Account, error) {
	return s.register(ctx, in, domain.RoleAdmin)
}

func (s *AuthService) register(ctx context.Context, in ports.RegisterInput, role string) (string, *domain.Account, error) {
	created, err := createAccount(ctx, s.accounts, in, []string{role})
	if err != nil {
		s.log.Warn().Err(err).Str("username", in.Username).Str("role", role).Msg("registration rejected")
		return "", nil, err
	}

	token, err := s.codec.Issue(created.Username)
	if err != nil {
		return "", nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.log.Info().Str("username", created.Username).Str("role", role).Msg("account registered")
	return token, created, nil
}

// Login checks credentials and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	_, account, err := s.resolver.ResolveFromCredentials(ctx, strings.TrimSpace(username), password)
	if err != nil {
		s.log.Debug().Str("username", username).Msg("login failed")
		return "", nil, err
	}

	token, err := s.codec.Issue(account.Username)
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}
	return token, account, nil
}

// createAccount validates input, enforces username then email uniqueness,
// hashes the password and persists the account with roles.
func createAccount(ctx context.Context, repo ports.AccountRepository, in ports.RegisterInput, roles []string) (*domain.Account, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}
	roles = domain.NormalizeRoles(roles)
	if len(roles) == 0 {
		return nil, fmt.Errorf("%w: at least one role is required", domain.ErrInvalidInput)
	}
	for _, r := range roles {
		if !domain.KnownRole(r) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, r)
		}
	}

	taken, err := repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateUsername
	}
	taken, err = repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return repo.Create(ctx, &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Roles:        roles,
		CreatedAt:    time.Now().UTC(),
	})
}
