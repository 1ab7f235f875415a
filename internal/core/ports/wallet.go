package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/eureka-network/eurekalite-daemon/internal/core/domain"
)

// ScryptParams are the key-derivation parameters used when sealing and
// unsealing private key blobs. They must never change once accounts exist,
// otherwise stored key hashes become undecryptable.
type ScryptParams struct {
	N int
	R int
	P int
}

// DefaultScryptParams matches the parameters every persisted account was
// encrypted with.
var DefaultScryptParams = ScryptParams{N: 8192, R: 8, P: 1}

// WalletInfo is the balance/address snapshot returned by the explorer for a
// wallet address. Field names mirror the insight API payload.
type WalletInfo struct {
	AddrStr            string          `json:"addrStr"`
	Balance            decimal.Decimal `json:"balance"`
	UnconfirmedBalance decimal.Decimal `json:"unconfirmedBalance"`
	TotalReceived      decimal.Decimal `json:"totalReceived"`
	TotalSent          decimal.Decimal `json:"totalSent"`
	TxCount            int             `json:"txApperances"`
}

// RawScriptPubKey is the output script info of a raw ledger transaction.
type RawScriptPubKey struct {
	Addresses []string `json:"addresses"`
}

// RawVin is an input of a raw ledger transaction.
type RawVin struct {
	Addr string `json:"addr"`
}

// RawVout is an output of a raw ledger transaction.
type RawVout struct {
	Value        string          `json:"value"`
	ScriptPubKey RawScriptPubKey `json:"scriptPubKey"`
}

// RawTransaction is a ledger entry as returned by the explorer.
type RawTransaction struct {
	Txid          string    `json:"txid"`
	Time          int64     `json:"time"`
	Confirmations int       `json:"confirmations"`
	Vin           []RawVin  `json:"vin"`
	Vout          []RawVout `json:"vout"`
}

// RawTxPage is one page of raw ledger transactions along with the total
// number of pages known to the explorer.
type RawTxPage struct {
	PagesTotal int              `json:"pagesTotal"`
	Txs        []RawTransaction `json:"txs"`
}

// Wallet is the consumed interface of the external wallet library. Key
// derivation, coin selection and signing happen behind it and are not
// reimplemented by the daemon.
type Wallet interface {
	// Address returns the wallet's receiving address.
	Address() string
	// ToEncryptedPrivateKey seals the wallet's private key under the given
	// password hash. The blob is deterministic for a given key and password
	// hash, the duplicate-import check depends on that.
	ToEncryptedPrivateKey(passwordHash string, params ScryptParams) (string, error)
	// GetInfo fetches the current balance snapshot from the explorer.
	GetInfo(ctx context.Context) (*WalletInfo, error)
	// GetTransactions fetches one page of ledger transactions, newest first.
	GetTransactions(ctx context.Context, pageNum int) (*RawTxPage, error)
	// EstimateMaxSend returns the maximum spendable amount in whole coins.
	// The target address only selects the output type, its content does not
	// affect the estimate.
	EstimateMaxSend(ctx context.Context, toAddress string) (decimal.Decimal, error)
	// Send submits a payment of the given amount in satoshis and returns
	// the transaction id.
	Send(ctx context.Context, toAddress string, amountSats int64, feeRate int) (string, error)
}

// WalletFactory builds wallet instances for one network profile.
type WalletFactory interface {
	FromMnemonic(mnemonic string) (Wallet, error)
	FromWIF(wif string) (Wallet, error)
	FromEncryptedPrivateKey(
		privateKeyHash, passwordHash string, params ScryptParams,
	) (Wallet, error)
}

// WalletFactoryProvider returns the wallet factory bound to a network
// profile.
type WalletFactoryProvider interface {
	FactoryFor(profile domain.NetworkProfile) WalletFactory
}
