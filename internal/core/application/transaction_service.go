package application

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/eureka-network/eurekalite-daemon/internal/core/domain"
	"github.com/eureka-network/eurekalite-daemon/internal/core/ports"
	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
	"github.com/eureka-network/eurekalite-daemon/pkg/poller"
)

const (
	transactionControllerName = "transaction"
	timestampFormat           = "01-02-2006, 15:04"
)

// TransactionService owns the paginated transaction history and its refresh
// loop. Growth is append-only one page at a time; the periodic refresh
// instead re-fetches every page up to the cursor and replaces the list
// wholesale, since new ledger entries shift items across page boundaries.
type TransactionService struct {
	registry    *Registry
	broadcaster ports.Broadcaster

	lock         sync.RWMutex
	transactions []domain.Transaction
	pageNum      int
	// pagesTotal is the upper bound learned from the most recent fetch,
	// 0 while unknown.
	pagesTotal int

	txPoller *poller.Poller
}

// TransactionServiceOpts defines the dependencies needed to create a
// TransactionService with NewTransactionService.
type TransactionServiceOpts struct {
	Registry    *Registry
	Broadcaster ports.Broadcaster
	Dispatcher  bus.Dispatcher
	// Interval is the period of the history refresh loop.
	Interval time.Duration
	// RateLimiter, if set, bounds explorer-backed poll runs across the
	// pollers sharing it.
	RateLimiter *rate.Limiter
}

// NewTransactionService registers the transaction controller. It has no
// asynchronous setup and initializes immediately.
func NewTransactionService(opts TransactionServiceOpts) *TransactionService {
	svc := &TransactionService{
		registry:    opts.Registry,
		broadcaster: opts.Broadcaster,
	}
	svc.txPoller = poller.New(poller.Opts{
		Name:     "transactions",
		Interval: opts.Interval,
		Task: func() {
			svc.refreshTransactions(context.Background())
		},
		RateLimiter: opts.RateLimiter,
	})

	opts.Registry.RegisterController(transactionControllerName)
	opts.Registry.transaction = svc
	svc.registerHandlers(opts.Dispatcher)
	opts.Registry.ControllerInitialized(transactionControllerName)

	return svc
}

// Transactions returns a copy of the current visible history.
func (t *TransactionService) Transactions() []domain.Transaction {
	t.lock.RLock()
	defer t.lock.RUnlock()
	txs := make([]domain.Transaction, len(t.transactions))
	copy(txs, t.transactions)
	return txs
}

// PageNum returns the zero-based page cursor.
func (t *TransactionService) PageNum() int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.pageNum
}

// HasMore holds iff the total page count is known and lies strictly beyond
// the current cursor.
func (t *TransactionService) HasMore() bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.hasMore()
}

// hasMore must be called with the lock held.
func (t *TransactionService) hasMore() bool {
	return t.pagesTotal > 0 && t.pagesTotal > t.pageNum+1
}

// FetchFirst resets the cursor to page zero and replaces the visible
// history with that page.
func (t *TransactionService) FetchFirst(ctx context.Context) {
	txs := t.fetchTransactions(ctx, 0)

	t.lock.Lock()
	t.pageNum = 0
	t.transactions = txs
	t.lock.Unlock()

	t.sendTransactionsMessage()
}

// FetchMore advances the cursor by one page and appends only that page to
// the visible history; earlier pages are never re-fetched.
func (t *TransactionService) FetchMore(ctx context.Context) {
	t.lock.Lock()
	t.pageNum++
	pageNum := t.pageNum
	t.lock.Unlock()

	txs := t.fetchTransactions(ctx, pageNum)

	t.lock.Lock()
	t.transactions = append(t.transactions, txs...)
	t.lock.Unlock()

	t.sendTransactionsMessage()
}

// StartPolling fetches the first page and starts the refresh loop. Starting
// twice without stopping results in exactly one active timer.
func (t *TransactionService) StartPolling(ctx context.Context) {
	t.FetchFirst(ctx)
	t.txPoller.Start()
}

// StopPolling stops the refresh loop and resets the cursor. Stopping an
// already stopped loop is a no-op.
func (t *TransactionService) StopPolling() {
	if !t.txPoller.IsRunning() {
		return
	}
	t.txPoller.Stop()

	t.lock.Lock()
	t.pageNum = 0
	t.lock.Unlock()
}

// refreshTransactions re-fetches every page from zero through the current
// cursor inclusive and replaces the visible history wholesale.
//
// Known limitation: when a new transaction enters the ledger, items shift
// across page boundaries (the last item of a page moves onto the next one)
// and the bottom-most transaction can disappear from the visible set, since
// the window does not grow to compensate.
func (t *TransactionService) refreshTransactions(ctx context.Context) {
	t.lock.RLock()
	pageNum := t.pageNum
	t.lock.RUnlock()

	pages := make([][]domain.Transaction, pageNum+1)
	eg := &errgroup.Group{}
	for i := 0; i <= pageNum; i++ {
		page := i
		eg.Go(func() error {
			pages[page] = t.fetchTransactions(ctx, page)
			return nil
		})
	}
	// Page fetches never fail the group, a failed page is just empty for
	// this cycle.
	eg.Wait()

	refreshed := make([]domain.Transaction, 0)
	for _, page := range pages {
		refreshed = append(refreshed, page...)
	}

	t.lock.Lock()
	t.transactions = refreshed
	t.lock.Unlock()

	t.sendTransactionsMessage()
}

// fetchTransactions fetches one page of raw ledger entries and derives the
// UI transactions from them. Without a live session wallet it returns an
// empty page.
func (t *TransactionService) fetchTransactions(
	ctx context.Context, pageNum int,
) []domain.Transaction {
	wallet := t.registry.Account().SessionWallet()
	if wallet == nil {
		log.Error("transaction: cannot get transactions without wallet instance")
		return nil
	}

	page, err := wallet.GetTransactions(ctx, pageNum)
	if err != nil {
		log.WithError(err).Warnf("transaction: failed to fetch page %d", pageNum)
		return nil
	}

	t.lock.Lock()
	t.pagesTotal = page.PagesTotal
	t.lock.Unlock()

	address := wallet.Address()
	txs := make([]domain.Transaction, 0, len(page.Txs))
	for _, rawTx := range page.Txs {
		txs = append(txs, deriveTransaction(rawTx, address))
	}
	return txs
}

// deriveTransaction computes the signed amount of a raw ledger entry by
// partitioning its outputs into mine vs other by address match: when the
// wallet is an input the amount is what left to the other partition,
// otherwise it is what the mine partition received. Amounts are rounded to
// 8 decimal places.
func deriveTransaction(
	rawTx ports.RawTransaction, ownAddress string,
) domain.Transaction {
	isSender := false
	for _, vin := range rawTx.Vin {
		if vin.Addr == ownAddress {
			isSender = true
			break
		}
	}

	amount := decimal.Zero
	for _, vout := range rawTx.Vout {
		mine := false
		for _, addr := range vout.ScriptPubKey.Addresses {
			if addr == ownAddress {
				mine = true
				break
			}
		}

		value, err := decimal.NewFromString(vout.Value)
		if err != nil {
			continue
		}
		if isSender && !mine {
			amount = amount.Add(value)
		}
		if !isSender && mine {
			amount = amount.Add(value)
		}
	}
	amount = amount.Round(8)
	if isSender {
		amount = amount.Neg()
	}

	return domain.Transaction{
		ID:            rawTx.Txid,
		Timestamp:     time.Unix(rawTx.Time, 0).Format(timestampFormat),
		Confirmations: rawTx.Confirmations,
		Amount:        amount,
	}
}

// sendTransactionsMessage broadcasts the visible history along with the
// pagination state.
func (t *TransactionService) sendTransactionsMessage() {
	t.lock.RLock()
	payload := transactionsPayload{
		Transactions: t.transactions,
		HasMore:      t.hasMore(),
	}
	if payload.Transactions == nil {
		payload.Transactions = []domain.Transaction{}
	}
	t.lock.RUnlock()

	t.broadcaster.Broadcast(bus.MustNewMessage(bus.GetTxsReturn, payload))
}

/**** message handlers ****/

type transactionsPayload struct {
	Transactions []domain.Transaction `json:"transactions"`
	HasMore      bool                 `json:"hasMore"`
}

func (t *TransactionService) registerHandlers(dispatcher bus.Dispatcher) {
	dispatcher.RegisterHandler(bus.StartTxPolling,
		func(ctx context.Context, _ json.RawMessage) (interface{}, error) {
			t.StartPolling(ctx)
			return nil, nil
		})

	dispatcher.RegisterHandler(bus.StopTxPolling,
		func(_ context.Context, _ json.RawMessage) (interface{}, error) {
			t.StopPolling()
			return nil, nil
		})

	dispatcher.RegisterHandler(bus.GetMoreTxs,
		func(ctx context.Context, _ json.RawMessage) (interface{}, error) {
			t.FetchMore(ctx)
			return nil, nil
		})
}
