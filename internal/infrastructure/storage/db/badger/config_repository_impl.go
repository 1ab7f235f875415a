package dbbadger

import (
	"context"
	"strconv"

	"github.com/timshannon/badgerhold/v4"

	"github.com/eureka-network/eurekalite-daemon/internal/core/domain"
)

const (
	networkIndexKey = "networkIndex"
	appSaltKey      = "appSalt"
	appVersionKey   = "appVersion"
)

type configEntry struct {
	Key   string
	Value string
}

type configRepositoryImpl struct {
	db *DbManager
}

// NewConfigRepositoryImpl returns a badger-backed domain.ConfigRepository.
func NewConfigRepositoryImpl(db *DbManager) domain.ConfigRepository {
	return configRepositoryImpl{db: db}
}

func (r configRepositoryImpl) GetNetworkIndex(_ context.Context) (int, error) {
	value, err := r.get(networkIndexKey)
	if err != nil {
		return -1, err
	}
	if len(value) <= 0 {
		return -1, nil
	}
	return strconv.Atoi(value)
}

func (r configRepositoryImpl) UpdateNetworkIndex(
	_ context.Context, index int,
) error {
	return r.set(networkIndexKey, strconv.Itoa(index))
}

func (r configRepositoryImpl) GetAppSalt(_ context.Context) (string, error) {
	return r.get(appSaltKey)
}

func (r configRepositoryImpl) UpdateAppSalt(
	_ context.Context, salt string,
) error {
	return r.set(appSaltKey, salt)
}

func (r configRepositoryImpl) GetAppVersion(_ context.Context) (string, error) {
	return r.get(appVersionKey)
}

func (r configRepositoryImpl) UpdateAppVersion(
	_ context.Context, version string,
) error {
	return r.set(appVersionKey, version)
}

func (r configRepositoryImpl) get(key string) (string, error) {
	entry := configEntry{}
	if err := r.db.ConfigStore.Get(key, &entry); err != nil {
		if err == badgerhold.ErrNotFound {
			return "", nil
		}
		return "", err
	}
	return entry.Value, nil
}

func (r configRepositoryImpl) set(key, value string) error {
	return r.db.ConfigStore.Upsert(key, configEntry{Key: key, Value: value})
}
