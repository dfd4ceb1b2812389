package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/ports"
)

// AccountRepository is a map-backed ports.AccountRepository.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	c := *a
	c.Roles = append([]string(nil), a.Roles...)
	return &c
}

func (r *AccountRepository) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Username == a.Username {
			return nil, domain.ErrDuplicateUsername
		}
		if existing.Email == a.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	stored := cloneAccount(a)
	if stored.ID == "" {
		stored.ID = newID()
	}
	r.accounts[stored.ID] = stored
	return cloneAccount(stored), nil
}

func (r *AccountRepository) Update(_ context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[a.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, existing := range r.accounts {
		if id != a.ID && existing.Email == a.Email {
			return domain.ErrDuplicateEmail
		}
	}
	r.accounts[a.ID] = cloneAccount(a)
	return nil
}

func (r *AccountRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *AccountRepository) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneAccount(a), nil
}

func (r *AccountRepository) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	return r.findOne(func(a *domain.Account) bool { return a.Username == username })
}

func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	return r.findOne(func(a *domain.Account) bool { return a.Email == email })
}

func (r *AccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return err == nil, nil
}

func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *AccountRepository) List(_ context.Context, f ports.AccountFilter) ([]*domain.Account, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(f.UsernameLike)
	matched := make([]*domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		if f.Role != "" && !a.HasRole(f.Role) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(a.Username), needle) {
			continue
		}
		matched = append(matched, cloneAccount(a))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Username < matched[j].Username })

	total := int64(len(matched))
	if f.Size <= 0 {
		return matched, total, nil
	}
	start := f.Page * f.Size
	if start < 0 || start >= len(matched) {
		return []*domain.Account{}, total, nil
	}
	end := start + f.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *AccountRepository) ListSubscribers(_ context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Account, 0)
	for _, a := range r.accounts {
		if a.SubscribedToNewsletter {
			out = append(out, cloneAccount(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *AccountRepository) findOne(match func(*domain.Account) bool) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if match(a) {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrUserNotFound
}
