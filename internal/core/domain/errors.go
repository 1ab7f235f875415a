package domain

import "errors"

var (
	// ErrAccountInvalidName ...
	ErrAccountInvalidName = errors.New("account name must not be empty")
	// ErrAccountInvalidPrivateKeyHash ...
	ErrAccountInvalidPrivateKeyHash = errors.New("account private key hash must not be empty")
	// ErrAccountInvalidNetwork ...
	ErrAccountInvalidNetwork = errors.New("account network must not be empty")
	// ErrAccountNotFound is thrown when looking up an account by name that
	// does not exist in the active partition.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists is thrown when importing a wallet whose
	// private key hash is already known to the active partition.
	ErrAccountAlreadyExists = errors.New("account already exists")
	// ErrNetworkInvalidIndex is thrown when selecting a network profile out
	// of the fixed range.
	ErrNetworkInvalidIndex = errors.New("network index out of range")
)
