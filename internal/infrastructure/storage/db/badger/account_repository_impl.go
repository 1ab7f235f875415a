package dbbadger

import (
	"context"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/eureka-network/eurekalite-daemon/internal/core/domain"
)

type accountRepositoryImpl struct {
	db *DbManager
}

// NewAccountRepositoryImpl returns a badger-backed domain.AccountRepository.
func NewAccountRepositoryImpl(db *DbManager) domain.AccountRepository {
	return accountRepositoryImpl{db: db}
}

func (r accountRepositoryImpl) GetAccounts(
	_ context.Context, network string,
) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0)
	if err := r.db.AccountStore.Find(
		&accounts,
		badgerhold.Where("Network").Eq(network),
	); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r accountRepositoryImpl) AddAccount(
	_ context.Context, account *domain.Account,
) error {
	key := accountKey(account.Network, account.Name)
	if err := r.db.AccountStore.Insert(key, *account); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrAccountAlreadyExists
		}
		return err
	}
	return nil
}

func accountKey(network, name string) string {
	return fmt.Sprintf("%s:%s", network, name)
}
