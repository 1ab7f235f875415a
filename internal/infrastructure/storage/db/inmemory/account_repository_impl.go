package inmemory

import (
	"context"
	"sync"

	"github.com/eureka-network/eurekalite-daemon/internal/core/domain"
)

type accountRepositoryImpl struct {
	lock     sync.RWMutex
	accounts map[string][]domain.Account
}

// NewAccountRepositoryImpl returns an in-memory domain.AccountRepository,
// used by tests and as reference implementation.
func NewAccountRepositoryImpl() domain.AccountRepository {
	return &accountRepositoryImpl{
		accounts: make(map[string][]domain.Account),
	}
}

func (r *accountRepositoryImpl) GetAccounts(
	_ context.Context, network string,
) ([]domain.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	accounts := make([]domain.Account, len(r.accounts[network]))
	copy(accounts, r.accounts[network])
	return accounts, nil
}

func (r *accountRepositoryImpl) AddAccount(
	_ context.Context, account *domain.Account,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, a := range r.accounts[account.Network] {
		if a.Name == account.Name {
			return domain.ErrAccountAlreadyExists
		}
	}
	r.accounts[account.Network] = append(r.accounts[account.Network], *account)
	return nil
}
