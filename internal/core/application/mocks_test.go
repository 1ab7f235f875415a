package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/eureka-network/eurekalite-daemon/internal/core/domain"
	"github.com/eureka-network/eurekalite-daemon/internal/core/ports"
	"github.com/eureka-network/eurekalite-daemon/internal/infrastructure/storage/db/inmemory"
	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var errMockWrongPassword = errors.New("mock: password hash does not match")

type mockBroadcaster struct {
	lock     sync.Mutex
	messages []bus.Message
}

func (m *mockBroadcaster) Broadcast(msg bus.Message) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *mockBroadcaster) count(mtype bus.MessageType) int {
	m.lock.Lock()
	defer m.lock.Unlock()
	n := 0
	for _, msg := range m.messages {
		if msg.Type == mtype {
			n++
		}
	}
	return n
}

func (m *mockBroadcaster) last(mtype bus.MessageType) (bus.Message, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Type == mtype {
			return m.messages[i], true
		}
	}
	return bus.Message{}, false
}

func (m *mockBroadcaster) waitFor(
	t *testing.T, mtype bus.MessageType, timeout time.Duration,
) {
	t.Helper()
	require.Eventually(t, func() bool {
		return m.count(mtype) > 0
	}, timeout, 5*time.Millisecond, "no %s broadcast observed", mtype)
}

type mockWallet struct {
	address   string
	info      *ports.WalletInfo
	infoErr   error
	infoDelay time.Duration
	pages     map[int]*ports.RawTxPage
	pagesErr  error
	maxSend   decimal.Decimal
	sendTxid  string
	sendErr   error

	lock      sync.Mutex
	sentSats  []int64
	infoCalls int
}

func newMockWallet(address string) *mockWallet {
	return &mockWallet{
		address: address,
		info: &ports.WalletInfo{
			AddrStr: address,
			Balance: decimal.NewFromInt(10),
		},
		pages:    map[int]*ports.RawTxPage{},
		sendTxid: "txid",
	}
}

func (m *mockWallet) Address() string { return m.address }

func (m *mockWallet) ToEncryptedPrivateKey(
	passwordHash string, _ ports.ScryptParams,
) (string, error) {
	return fmt.Sprintf("sealed|%s|%s", m.address, passwordHash), nil
}

func (m *mockWallet) GetInfo(ctx context.Context) (*ports.WalletInfo, error) {
	m.lock.Lock()
	m.infoCalls++
	delay, info, err := m.infoDelay, m.info, m.infoErr
	m.lock.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	snapshot := *info
	return &snapshot, nil
}

func (m *mockWallet) setInfo(info *ports.WalletInfo) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.info = info
}

func (m *mockWallet) GetTransactions(
	_ context.Context, pageNum int,
) (*ports.RawTxPage, error) {
	if m.pagesErr != nil {
		return nil, m.pagesErr
	}
	page, ok := m.pages[pageNum]
	if !ok {
		return &ports.RawTxPage{PagesTotal: len(m.pages)}, nil
	}
	return page, nil
}

func (m *mockWallet) EstimateMaxSend(
	_ context.Context, _ string,
) (decimal.Decimal, error) {
	return m.maxSend, nil
}

func (m *mockWallet) Send(
	_ context.Context, _ string, amountSats int64, _ int,
) (string, error) {
	if m.sendErr != nil {
		return "", m.sendErr
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.sentSats = append(m.sentSats, amountSats)
	return m.sendTxid, nil
}

type mockWalletFactory struct {
	lock   sync.Mutex
	wallet *mockWallet
}

func (m *mockWalletFactory) setWallet(w *mockWallet) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.wallet = w
}

func (m *mockWalletFactory) current() *mockWallet {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.wallet
}

func (m *mockWalletFactory) FromMnemonic(mnemonic string) (ports.Wallet, error) {
	if mnemonic == "bad" {
		return nil, ErrInvalidMnemonic
	}
	return m.current(), nil
}

func (m *mockWalletFactory) FromWIF(wif string) (ports.Wallet, error) {
	if wif == "bad" {
		return nil, ErrInvalidPrivateKey
	}
	return m.current(), nil
}

func (m *mockWalletFactory) FromEncryptedPrivateKey(
	privateKeyHash, passwordHash string, _ ports.ScryptParams,
) (ports.Wallet, error) {
	parts := strings.Split(privateKeyHash, "|")
	if len(parts) != 3 || parts[2] != passwordHash {
		return nil, errMockWrongPassword
	}
	return m.current(), nil
}

type mockWalletProvider struct {
	factory *mockWalletFactory
}

func (m *mockWalletProvider) FactoryFor(
	_ domain.NetworkProfile,
) ports.WalletFactory {
	return m.factory
}

type mockPriceSource struct {
	lock  sync.Mutex
	price decimal.Decimal
	err   error
}

func (m *mockPriceSource) GetUSDPrice(_ context.Context) (decimal.Decimal, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.price, m.err
}

func (m *mockPriceSource) set(price decimal.Decimal, err error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.price = price
	m.err = err
}

type mockPort struct {
	id   string
	name string

	lock    sync.Mutex
	msgs    []bus.Message
	sendErr error
}

func (m *mockPort) ID() string   { return m.id }
func (m *mockPort) Name() string { return m.name }

func (m *mockPort) Send(msg bus.Message) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *mockPort) received() []bus.Message {
	m.lock.Lock()
	defer m.lock.Unlock()
	msgs := make([]bus.Message, len(m.msgs))
	copy(msgs, m.msgs)
	return msgs
}

type mockTab struct {
	url string

	lock sync.Mutex
	msgs []bus.Message
	err  error
}

func (m *mockTab) URL() string { return m.url }

func (m *mockTab) Notify(msg bus.Message) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.err != nil {
		return m.err
	}
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *mockTab) notified() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.msgs)
}

type mockTabManager struct {
	tabs []ports.Tab
}

func (m *mockTabManager) ListTabs() []ports.Tab { return m.tabs }

/**** harness ****/

type testHarness struct {
	registry    *Registry
	dispatcher  bus.Dispatcher
	broadcaster *mockBroadcaster
	accountRepo domain.AccountRepository
	configRepo  domain.ConfigRepository
	factory     *mockWalletFactory
	priceSource *mockPriceSource
	tabManager  *mockTabManager

	account     *AccountService
	network     *NetworkService
	transaction *TransactionService
	external    *ExternalService
	inpage      *InpageAccountService
	onInstall   *OnInstallService
}

func newTestHarness(t *testing.T, w *mockWallet) *testHarness {
	t.Helper()

	h := &testHarness{
		registry:    NewRegistry(),
		dispatcher:  bus.NewDispatcher(),
		broadcaster: &mockBroadcaster{},
		accountRepo: inmemory.NewAccountRepositoryImpl(),
		configRepo:  inmemory.NewConfigRepositoryImpl(),
		factory:     &mockWalletFactory{wallet: w},
		priceSource: &mockPriceSource{price: decimal.NewFromInt(2)},
		tabManager:  &mockTabManager{},
	}

	profiles := []domain.NetworkProfile{
		{Name: domain.Mainnet},
		{Name: domain.Testnet},
		{Name: domain.Regtest},
	}

	h.inpage = NewInpageAccountService(InpageAccountServiceOpts{
		Registry: h.registry,
	})
	h.network = NewNetworkService(NetworkServiceOpts{
		Registry:       h.registry,
		ConfigRepo:     h.configRepo,
		Broadcaster:    h.broadcaster,
		Dispatcher:     h.dispatcher,
		WalletProvider: &mockWalletProvider{factory: h.factory},
		Profiles:       profiles,
	})
	// Shared across the explorer-backed pollers like in the daemon wiring,
	// unbounded so tests never wait on it.
	insightLimiter := rate.NewLimiter(rate.Inf, 0)
	h.account = NewAccountService(AccountServiceOpts{
		Registry:     h.registry,
		AccountRepo:  h.accountRepo,
		ConfigRepo:   h.configRepo,
		Broadcaster:  h.broadcaster,
		Dispatcher:   h.dispatcher,
		InfoInterval: time.Hour,
		InfoTimeout:  time.Second,
		RateLimiter:  insightLimiter,
	})
	h.transaction = NewTransactionService(TransactionServiceOpts{
		Registry:    h.registry,
		Broadcaster: h.broadcaster,
		Dispatcher:  h.dispatcher,
		Interval:    time.Hour,
		RateLimiter: insightLimiter,
	})
	h.external = NewExternalService(ExternalServiceOpts{
		Registry:    h.registry,
		Broadcaster: h.broadcaster,
		PriceSource: h.priceSource,
		Interval:    time.Hour,
	})
	h.onInstall = NewOnInstallService(OnInstallServiceOpts{
		Registry:   h.registry,
		ConfigRepo: h.configRepo,
		TabManager: h.tabManager,
		Version:    "1.0.0",
	})
	h.registry.Seal()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.registry.WaitReady(ctx))

	t.Cleanup(func() {
		h.account.StopPolling()
		h.external.StopPolling()
		h.transaction.StopPolling()
	})

	return h
}

// loginAndImport opens a session the way a new user would: master password
// login followed by a mnemonic import.
func (h *testHarness) loginAndImport(
	t *testing.T, accountName string,
) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, h.account.Login(ctx, "correct horse"))
	require.NoError(t, h.account.ImportMnemonic(ctx, accountName, "some mnemonic"))
	require.NotNil(t, h.account.LoggedInAccount())
}
