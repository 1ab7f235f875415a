package application

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/eureka-network/eurekalite-daemon/internal/core/ports"
)

var satoshisPerCoin = decimal.New(1, 8)

// Wallet is the runtime-only wrapper around a wallet-library instance. It
// caches the latest balance snapshot along with the values derived from it
// and lives exactly as long as the logged-in session.
type Wallet struct {
	handle ports.Wallet

	lock         sync.RWMutex
	info         *ports.WalletInfo
	eurekaUSD    decimal.Decimal
	hasEurekaUSD bool
	maxSend      decimal.Decimal
	hasMaxSend   bool
}

// NewWallet wraps a wallet-library instance.
func NewWallet(handle ports.Wallet) *Wallet {
	return &Wallet{handle: handle}
}

// Address returns the wallet's receiving address.
func (w *Wallet) Address() string {
	return w.handle.Address()
}

// Info returns the cached balance snapshot, nil if no fetch succeeded yet.
func (w *Wallet) Info() *ports.WalletInfo {
	w.lock.RLock()
	defer w.lock.RUnlock()
	return w.info
}

// EurekaUSD returns the cached fiat value of the balance and whether it has
// been computed at least once.
func (w *Wallet) EurekaUSD() (decimal.Decimal, bool) {
	w.lock.RLock()
	defer w.lock.RUnlock()
	return w.eurekaUSD, w.hasEurekaUSD
}

// SetEurekaUSD caches the fiat value of the balance.
func (w *Wallet) SetEurekaUSD(value decimal.Decimal) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.eurekaUSD = value
	w.hasEurekaUSD = true
}

// MaxSend returns the cached maximum sendable amount and whether it has been
// computed at least once.
func (w *Wallet) MaxSend() (decimal.Decimal, bool) {
	w.lock.RLock()
	defer w.lock.RUnlock()
	return w.maxSend, w.hasMaxSend
}

// UpdateInfo fetches a fresh balance snapshot, bounded by the given timeout.
// It returns true if the snapshot differs from the cached one, in which case
// the cache is replaced. On timeout or fetch failure the stale snapshot is
// preserved and an error is returned; the in-flight library call cannot be
// aborted, timing out merely stops waiting for it.
func (w *Wallet) UpdateInfo(
	ctx context.Context, timeout time.Duration,
) (bool, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type fetchResult struct {
		info *ports.WalletInfo
		err  error
	}
	resChan := make(chan fetchResult, 1)
	go func() {
		info, err := w.handle.GetInfo(fetchCtx)
		resChan <- fetchResult{info, err}
	}()

	var newInfo *ports.WalletInfo
	select {
	case res := <-resChan:
		if res.err != nil {
			return false, res.err
		}
		newInfo = res.info
	case <-fetchCtx.Done():
		// The library call keeps running and its eventual result is
		// discarded.
		return false, ErrWalletInfoTimeout
	}

	w.lock.Lock()
	defer w.lock.Unlock()
	if reflect.DeepEqual(w.info, newInfo) {
		return false, nil
	}
	w.info = newInfo
	return true, nil
}

// CalcMaxSend recomputes the maximum sendable amount. It depends on the
// spendable unconfirmed outputs, which can change even when the balance
// snapshot has not, so callers recompute it unconditionally after every
// refresh cycle.
func (w *Wallet) CalcMaxSend(
	ctx context.Context, networkName string,
) (decimal.Decimal, error) {
	w.lock.RLock()
	hasInfo := w.info != nil
	w.lock.RUnlock()
	if !hasInfo {
		return decimal.Zero, ErrNoWalletInstance
	}

	max, err := w.handle.EstimateMaxSend(
		ctx, maxSendEstimateAddress(networkName),
	)
	if err != nil {
		return decimal.Zero, err
	}

	w.lock.Lock()
	w.maxSend = max
	w.hasMaxSend = true
	w.lock.Unlock()
	return max, nil
}

// Send submits a payment of the given amount in whole coins, converting to
// satoshis for the wallet library.
func (w *Wallet) Send(
	ctx context.Context, toAddress string, amount decimal.Decimal, feeRate int,
) (string, error) {
	amountSats := amount.Mul(satoshisPerCoin).IntPart()
	return w.handle.Send(ctx, toAddress, amountSats, feeRate)
}

// GetTransactions fetches one page of raw ledger transactions.
func (w *Wallet) GetTransactions(
	ctx context.Context, pageNum int,
) (*ports.RawTxPage, error) {
	return w.handle.GetTransactions(ctx, pageNum)
}

// ToEncryptedPrivateKey seals the wallet's private key under the given
// password hash.
func (w *Wallet) ToEncryptedPrivateKey(
	passwordHash string, params ports.ScryptParams,
) (string, error) {
	return w.handle.ToEncryptedPrivateKey(passwordHash, params)
}
