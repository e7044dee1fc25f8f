package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/account"
)

type AccountsRepo struct{ s *Store }

func (r *AccountsRepo) GetByEmail(_ context.Context, email string) (account.Account, error) {
	email = account.NormalizeEmail(email)

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return account.Account{}, account.ErrNotFound
}

func (r *AccountsRepo) GetByID(_ context.Context, id string) (account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return a, nil
}

func (r *AccountsRepo) Create(_ context.Context, a account.Account) error {
	a.Email = account.NormalizeEmail(a.Email)

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.accounts {
		if existing.Email == a.Email {
			return account.ErrEmailAlreadyUsed
		}
	}
	r.s.accounts[a.ID] = a
	return nil
}

// Delete exists for tests that need an account to vanish after login.
func (r *AccountsRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[id]; !ok {
		return account.ErrNotFound
	}
	delete(r.s.accounts, id)
	return nil
}

func (r *AccountsRepo) ListIDs(_ context.Context) ([]string, error) {
	r.s.mu.RLock()
	all := values(r.s.accounts)
	r.s.mu.RUnlock()

	slices.SortFunc(all, func(a, b account.Account) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})

	ids := make([]string, 0, len(all))
	for _, a := range all {
		ids = append(ids, a.ID)
	}
	return ids, nil
}
