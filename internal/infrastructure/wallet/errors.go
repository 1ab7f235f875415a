package wallet

import "errors"

var (
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidWIF ...
	ErrInvalidWIF = errors.New("private key is not a valid WIF string")
	// ErrNullPlainText ...
	ErrNullPlainText = errors.New("missing plaintext")
	// ErrNullPassphrase ...
	ErrNullPassphrase = errors.New("missing passphrase")
	// ErrNullCypherText ...
	ErrNullCypherText = errors.New("missing cyphertext")
	// ErrInvalidCypherText ...
	ErrInvalidCypherText = errors.New("cyphertext is malformed")
	// ErrWrongPassphrase ...
	ErrWrongPassphrase = errors.New("passphrase does not match")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New("insufficient funds to cover amount and fee")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address is not valid for this network")
)
