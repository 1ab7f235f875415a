package domain

import "context"

// AccountRepository gives access to the persisted account partitions.
// Records are stored pruned, without any runtime wallet state.
type AccountRepository interface {
	// GetAccounts returns all accounts of one network partition.
	GetAccounts(ctx context.Context, network string) ([]Account, error)
	// AddAccount appends an account to its partition.
	AddAccount(ctx context.Context, account *Account) error
}

// ConfigRepository persists the handful of daemon-level settings that must
// survive restarts.
type ConfigRepository interface {
	// GetNetworkIndex returns the persisted active network index, or -1 if
	// none was ever stored.
	GetNetworkIndex(ctx context.Context) (int, error)
	UpdateNetworkIndex(ctx context.Context, index int) error

	// GetAppSalt returns the persisted password-hashing salt, or an empty
	// string if none was generated yet.
	GetAppSalt(ctx context.Context) (string, error)
	UpdateAppSalt(ctx context.Context, salt string) error

	// GetAppVersion returns the version recorded by the previous run, or an
	// empty string on first install.
	GetAppVersion(ctx context.Context) (string, error)
	UpdateAppVersion(ctx context.Context, version string) error
}
