package application

import "errors"

var (
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	// ErrInvalidPrivateKey ...
	ErrInvalidPrivateKey = errors.New("invalid private key")
	// ErrNoWalletInstance is thrown by operations requiring a live session
	// wallet. It is fatal to the operation, not to the process.
	ErrNoWalletInstance = errors.New("cannot perform operation with no wallet instance")
	// ErrNoAccountToValidate is thrown when validating a password while no
	// account exists in any partition.
	ErrNoAccountToValidate = errors.New("trying to validate password without existing account")
	// ErrFeeRateNotSet ...
	ErrFeeRateNotSet = errors.New("fee rate not set for transaction speed")
	// ErrWalletInfoTimeout is thrown when a balance fetch exceeds its
	// deadline, the explorer api may be down.
	ErrWalletInfoTimeout = errors.New("wallet info fetch timed out, explorer api may be down")
)
