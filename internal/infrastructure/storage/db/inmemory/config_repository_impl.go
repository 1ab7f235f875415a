package inmemory

import (
	"context"
	"sync"

	"github.com/eureka-network/eurekalite-daemon/internal/core/domain"
)

type configRepositoryImpl struct {
	lock         sync.RWMutex
	networkIndex int
	hasNetwork   bool
	appSalt      string
	appVersion   string
}

// NewConfigRepositoryImpl returns an in-memory domain.ConfigRepository.
func NewConfigRepositoryImpl() domain.ConfigRepository {
	return &configRepositoryImpl{}
}

func (r *configRepositoryImpl) GetNetworkIndex(_ context.Context) (int, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if !r.hasNetwork {
		return -1, nil
	}
	return r.networkIndex, nil
}

func (r *configRepositoryImpl) UpdateNetworkIndex(
	_ context.Context, index int,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.networkIndex = index
	r.hasNetwork = true
	return nil
}

func (r *configRepositoryImpl) GetAppSalt(_ context.Context) (string, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.appSalt, nil
}

func (r *configRepositoryImpl) UpdateAppSalt(
	_ context.Context, salt string,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.appSalt = salt
	return nil
}

func (r *configRepositoryImpl) GetAppVersion(_ context.Context) (string, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.appVersion, nil
}

func (r *configRepositoryImpl) UpdateAppVersion(
	_ context.Context, version string,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.appVersion = version
	return nil
}
