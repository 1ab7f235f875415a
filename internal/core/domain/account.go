package domain

// Account is a named wallet account belonging to one network partition.
// The runtime wallet handle is never part of the persisted record: it is
// reconstructed from PrivateKeyHash at login time and lives only for the
// duration of the session.
type Account struct {
	// Name is unique within the account's network partition.
	Name string
	// PrivateKeyHash is the encrypted private key blob produced by the
	// wallet library. It is deterministic for a given key and password
	// hash, which makes it usable as a duplicate-import check.
	PrivateKeyHash string
	// Network is the name of the partition the account belongs to.
	Network string
}

// NewAccount returns a new account record for the given partition.
func NewAccount(name, privateKeyHash, network string) (*Account, error) {
	if len(name) <= 0 {
		return nil, ErrAccountInvalidName
	}
	if len(privateKeyHash) <= 0 {
		return nil, ErrAccountInvalidPrivateKeyHash
	}
	if len(network) <= 0 {
		return nil, ErrAccountInvalidNetwork
	}
	return &Account{
		Name:           name,
		PrivateKeyHash: privateKeyHash,
		Network:        network,
	}, nil
}
