package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/ports"
	"github.com/unihub/portal/internal/core/security"
)

const (
	defaultPageSize  = 10
	maxPageSize      = 100
	studentsPageSize = 10
)

type accountService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

// NewAccountService returns an AccountService implementation.
func NewAccountService(repo ports.AccountRepository, log zerolog.Logger) ports.AccountService {
	return &accountService{repo: repo, log: log}
}

func (s *accountService) List(ctx context.Context, page, size int) (*ports.Page[*domain.Account], error) {
	return s.list(ctx, ports.AccountFilter{Page: page, Size: size})
}

func (s *accountService) ListStudents(ctx context.Context, page int, nameLike string) (*ports.Page[*domain.Account], error) {
	return s.list(ctx, ports.AccountFilter{
		Role:         domain.RoleStudent,
		UsernameLike: strings.TrimSpace(nameLike),
		Page:         page,
		Size:         studentsPageSize,
	})
}

func (s *accountService) list(ctx context.Context, f ports.AccountFilter) (*ports.Page[*domain.Account], error) {
	if f.Page < 0 {
		f.Page = 0
	}
	if f.Size <= 0 {
		f.Size = defaultPageSize
	}
	if f.Size > maxPageSize {
		f.Size = maxPageSize
	}
	if f.Page > math.MaxInt32/f.Size {
		return nil, fmt.Errorf("%w: page %d out of range", domain.ErrInvalidInput, f.Page)
	}

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return &ports.Page[*domain.Account]{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		Size:       f.Size,
		TotalPages: int((total + int64(f.Size) - 1) / int64(f.Size)),
	}, nil
}

func (s *accountService) Get(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *accountService) Create(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error) {
	roles := in.Roles
	if len(roles) == 0 {
		roles = []string{domain.RoleUser}
	}
	created, err := createAccount(ctx, s.repo, in.RegisterInput, roles)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("id", created.ID).Str("username", created.Username).Strs("roles", created.Roles).Msg("account created")
	return created, nil
}

func (s *accountService) Update(ctx context.Context, id string, in ports.UpdateAccountInput) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", domain.ErrInvalidInput)
		}
		if email != account.Email {
			taken, err := s.repo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("check email: %w", err)
			}
			if taken {
				return nil, domain.ErrDuplicateEmail
			}
			account.Email = email
		}
	}
	if in.FirstName != nil {
		account.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		account.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, fmt.Errorf("%w: password cannot be empty", domain.ErrInvalidInput)
		}
		hash, err := security.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		account.PasswordHash = hash
	}
	if in.Roles != nil {
		roles := domain.NormalizeRoles(in.Roles)
		if len(roles) == 0 {
			return nil, fmt.Errorf("%w: at least one role is required", domain.ErrInvalidInput)
		}
		for _, r := range roles {
			if !domain.KnownRole(r) {
				return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, r)
			}
		}
		account.Roles = roles
	}

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	s.log.Info().Str("id", account.ID).Strs("roles", account.Roles).Msg("account updated")
	return account, nil
}

// Delete hard-deletes the account. Outstanding tokens for it stop resolving.
func (s *accountService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	s.log.Info().Str("id", id).Msg("account deleted")
	return nil
}
