package application

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/thanhpk/randstr"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/time/rate"

	"github.com/eureka-network/eurekalite-daemon/internal/core/domain"
	"github.com/eureka-network/eurekalite-daemon/internal/core/ports"
	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
	"github.com/eureka-network/eurekalite-daemon/pkg/poller"
)

const accountControllerName = "account"

// AccountService owns the account records, the logged-in session and the
// wallet-info refresh loop. It is the only component mutating the account
// partitions and the session state.
type AccountService struct {
	registry    *Registry
	accountRepo domain.AccountRepository
	configRepo  domain.ConfigRepository
	broadcaster ports.Broadcaster

	infoTimeout time.Duration

	lock            sync.RWMutex
	loggedInAccount *domain.Account
	wallet          *Wallet
	passwordHash    string

	infoPoller *poller.Poller
}

// AccountServiceOpts defines the dependencies needed to create an
// AccountService with NewAccountService.
type AccountServiceOpts struct {
	Registry    *Registry
	AccountRepo domain.AccountRepository
	ConfigRepo  domain.ConfigRepository
	Broadcaster ports.Broadcaster
	Dispatcher  bus.Dispatcher
	// InfoInterval is the period of the wallet-info refresh loop.
	InfoInterval time.Duration
	// InfoTimeout bounds a single balance fetch.
	InfoTimeout time.Duration
	// RateLimiter, if set, bounds explorer-backed poll runs across the
	// pollers sharing it.
	RateLimiter *rate.Limiter
}

// NewAccountService registers the account controller with the registry and
// starts its asynchronous initialization.
func NewAccountService(opts AccountServiceOpts) *AccountService {
	svc := &AccountService{
		registry:    opts.Registry,
		accountRepo: opts.AccountRepo,
		configRepo:  opts.ConfigRepo,
		broadcaster: opts.Broadcaster,
		infoTimeout: opts.InfoTimeout,
	}
	svc.infoPoller = poller.New(poller.Opts{
		Name:     "wallet-info",
		Interval: opts.InfoInterval,
		Task: func() {
			svc.getWalletInfo(context.Background(), true)
		},
		RateLimiter: opts.RateLimiter,
	})

	opts.Registry.RegisterController(accountControllerName)
	opts.Registry.account = svc
	svc.registerHandlers(opts.Dispatcher)

	go func() {
		// Warm the partitions so that a corrupt store surfaces at startup
		// instead of on the first login attempt.
		ctx := context.Background()
		for _, network := range []string{
			domain.Mainnet, domain.Testnet, domain.Regtest,
		} {
			if _, err := svc.accountRepo.GetAccounts(ctx, network); err != nil {
				log.WithError(err).Errorf(
					"account: failed to load %s accounts", network,
				)
			}
		}
		opts.Registry.ControllerInitialized(accountControllerName)
	}()

	return svc
}

// Accounts returns the accounts of the active network partition.
func (a *AccountService) Accounts(ctx context.Context) []domain.Account {
	accounts, err := a.accountRepo.GetAccounts(
		ctx, a.registry.Network().Name(),
	)
	if err != nil {
		log.WithError(err).Error("account: failed to read active partition")
		return nil
	}
	return accounts
}

// HasAccounts reports whether any partition holds at least one account.
func (a *AccountService) HasAccounts(ctx context.Context) bool {
	for _, network := range []string{
		domain.Mainnet, domain.Testnet, domain.Regtest,
	} {
		accounts, err := a.accountRepo.GetAccounts(ctx, network)
		if err != nil {
			log.WithError(err).Errorf(
				"account: failed to read %s accounts", network,
			)
			continue
		}
		if len(accounts) > 0 {
			return true
		}
	}
	return false
}

// IsWalletNameTaken checks if the wallet name is already used by another
// account of the active partition.
func (a *AccountService) IsWalletNameTaken(
	ctx context.Context, name string,
) bool {
	for _, account := range a.Accounts(ctx) {
		if account.Name == name {
			return true
		}
	}
	return false
}

// LoggedInAccount returns a copy of the logged-in account record, nil when
// no session is active.
func (a *AccountService) LoggedInAccount() *domain.Account {
	a.lock.RLock()
	defer a.lock.RUnlock()
	if a.loggedInAccount == nil {
		return nil
	}
	account := *a.loggedInAccount
	return &account
}

// SessionWallet returns the runtime wallet of the logged-in session, nil
// when no session is active. Callers must re-check for nil at every use, a
// logout may race any in-flight operation.
func (a *AccountService) SessionWallet() *Wallet {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.wallet
}

// Login performs the initial unlock with the master password: it derives
// the password hash from the persisted app salt and routes to the correct
// account page. With no stored accounts anywhere there is nothing to
// validate and the flow goes straight to account creation.
func (a *AccountService) Login(ctx context.Context, password string) error {
	salt, err := a.ensureAppSalt(ctx)
	if err != nil {
		return err
	}

	passwordHash, err := derivePasswordHash(password, salt)
	if err != nil {
		return err
	}
	a.lock.Lock()
	a.passwordHash = passwordHash
	a.lock.Unlock()

	if !a.HasAccounts(ctx) {
		// New user, no created wallets yet, no need to validate.
		a.routeToAccountPage(ctx)
		return nil
	}

	if a.validatePassword(ctx) {
		a.routeToAccountPage(ctx)
		return nil
	}

	a.broadcaster.Broadcast(bus.Message{Type: bus.LoginFailure})
	return nil
}

// ImportMnemonic imports a new wallet from a recovery phrase and logs in.
// An already-known wallet yields a duplicate-import failure signal and no
// write occurs.
func (a *AccountService) ImportMnemonic(
	ctx context.Context, accountName, mnemonic string,
) error {
	if len(mnemonic) <= 0 {
		return ErrInvalidMnemonic
	}

	wallet, err := a.registry.Network().Factory().FromMnemonic(mnemonic)
	if err != nil {
		return err
	}
	return a.importWallet(ctx, accountName, wallet)
}

// ImportPrivateKey imports a new wallet from a raw private key and logs in.
func (a *AccountService) ImportPrivateKey(
	ctx context.Context, accountName, privateKey string,
) error {
	if len(privateKey) <= 0 {
		return ErrInvalidPrivateKey
	}

	wallet, err := a.registry.Network().Factory().FromWIF(privateKey)
	if err != nil {
		return err
	}
	return a.importWallet(ctx, accountName, wallet)
}

func (a *AccountService) importWallet(
	ctx context.Context, accountName string, handle ports.Wallet,
) error {
	privateKeyHash, err := handle.ToEncryptedPrivateKey(
		a.currentPasswordHash(), ports.DefaultScryptParams,
	)
	if err != nil {
		return err
	}

	if a.walletAlreadyExists(ctx, privateKeyHash) {
		a.broadcaster.Broadcast(
			bus.Message{Type: bus.ImportMnemonicPrKeyFailure},
		)
		return nil
	}

	return a.addAccountAndLogin(ctx, accountName, privateKeyHash, handle)
}

// addAccountAndLogin creates the account record, persists it pruned of any
// runtime wallet state and opens the session.
func (a *AccountService) addAccountAndLogin(
	ctx context.Context, accountName, privateKeyHash string,
	handle ports.Wallet,
) error {
	networkName := a.registry.Network().Name()
	account, err := domain.NewAccount(accountName, privateKeyHash, networkName)
	if err != nil {
		return err
	}

	if err := a.accountRepo.AddAccount(ctx, account); err != nil {
		return err
	}
	log.Debugf("%s account added: %s", networkName, account.Name)

	a.lock.Lock()
	a.loggedInAccount = account
	a.wallet = NewWallet(handle)
	a.lock.Unlock()

	return a.onAccountLoggedIn(ctx)
}

// LoginAccount looks up the stored record by name and reconstructs its
// wallet instance. On any reconstruction failure the session rolls back to
// the unauthenticated state before the failure is re-raised.
func (a *AccountService) LoginAccount(
	ctx context.Context, accountName string,
) error {
	var account *domain.Account
	for _, acc := range a.Accounts(ctx) {
		if acc.Name == accountName {
			found := acc
			account = &found
			break
		}
	}
	if account == nil {
		return domain.ErrAccountNotFound
	}

	handle, err := a.registry.Network().Factory().FromEncryptedPrivateKey(
		account.PrivateKeyHash,
		a.currentPasswordHash(),
		ports.DefaultScryptParams,
	)
	if err != nil {
		a.resetAccount()
		return err
	}

	a.lock.Lock()
	a.loggedInAccount = account
	a.wallet = NewWallet(handle)
	a.lock.Unlock()

	if err := a.onAccountLoggedIn(ctx); err != nil {
		a.resetAccount()
		return err
	}
	return nil
}

// Logout clears every per-session timer and the session state, then routes
// back to the account-selection entry point.
func (a *AccountService) Logout(ctx context.Context) {
	a.StopPolling()
	a.registry.External().StopPolling()
	a.registry.Transaction().StopPolling()

	a.resetAccount()
	a.registry.InpageAccount().BroadcastAccount(ReasonLogout)
	a.routeToAccountPage(ctx)
}

// StopPolling stops the wallet-info refresh loop. Stopping twice is a no-op.
func (a *AccountService) StopPolling() {
	a.infoPoller.Stop()
}

// SendTokens submits a payment. The speed selector maps to the fee-rate
// table; on failure the error is both broadcast and returned so a caller
// awaiting the operation observes it too.
func (a *AccountService) SendTokens(
	ctx context.Context, receiverAddress string, amount decimal.Decimal,
	speed TransactionSpeed,
) error {
	wallet := a.SessionWallet()
	if wallet == nil {
		return ErrNoWalletInstance
	}

	feeRate, ok := feeRates[speed]
	if !ok {
		return ErrFeeRateNotSet
	}

	if _, err := wallet.Send(ctx, receiverAddress, amount, feeRate); err != nil {
		a.broadcaster.Broadcast(bus.MustNewMessage(
			bus.SendTokensFailure, errorPayload{Error: err.Error()},
		))
		return err
	}

	a.broadcaster.Broadcast(bus.Message{Type: bus.SendTokensSuccess})
	return nil
}

// UpdateMaxSendAmount recomputes the maximum sendable amount and broadcasts
// it. The recompute is unconditional: available utxos can change even when
// the balance snapshot has not, e.g. while a sent transaction is still
// unconfirmed.
func (a *AccountService) UpdateMaxSendAmount(ctx context.Context) error {
	wallet := a.SessionWallet()
	if wallet == nil {
		return ErrNoWalletInstance
	}

	max, err := wallet.CalcMaxSend(ctx, a.registry.Network().Name())
	if err != nil {
		return err
	}

	a.broadcaster.Broadcast(bus.MustNewMessage(
		bus.GetMaxEurekaCoinSendReturn,
		maxSendPayload{MaxEurekaCoinAmount: max},
	))
	return nil
}

// resetAccount rolls the session back to the unauthenticated state.
func (a *AccountService) resetAccount() {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.loggedInAccount = nil
	a.wallet = nil
}

// routeToAccountPage routes the UI to the create-wallet page or the account
// login page depending on the active partition.
func (a *AccountService) routeToAccountPage(ctx context.Context) {
	if len(a.Accounts(ctx)) == 0 {
		a.broadcaster.Broadcast(bus.Message{Type: bus.LoginSuccessNoAccounts})
		return
	}
	a.broadcaster.Broadcast(bus.Message{Type: bus.LoginSuccessWithAccounts})
}

// onAccountLoggedIn runs after adding a new account or logging into an
// existing one: it performs the first balance fetch, starts every
// session-scoped polling loop and announces the login.
func (a *AccountService) onAccountLoggedIn(ctx context.Context) error {
	// The inpage update for this first fetch is suppressed: the login
	// broadcast below already carries the fresh snapshot and the ports
	// must not be notified twice for one state change.
	a.getWalletInfo(ctx, false)

	a.StartPolling()
	a.registry.External().StartPolling()
	a.registry.Transaction().StartPolling(ctx)

	a.registry.InpageAccount().BroadcastAccount(ReasonLogin)
	a.broadcaster.Broadcast(bus.Message{Type: bus.AccountLoginSuccess})
	return nil
}

// StartPolling starts the wallet-info refresh loop. Starting twice without
// stopping results in exactly one active timer.
func (a *AccountService) StartPolling() {
	a.infoPoller.Start()
}

// getWalletInfo performs one best-effort balance refresh cycle. A snapshot
// deep-equal to the cached one emits nothing; a changed one is broadcast to
// the UI and, unless suppressed, to the page contexts, always followed by a
// recompute of the maximum sendable amount.
func (a *AccountService) getWalletInfo(
	ctx context.Context, sendInpageUpdate bool,
) {
	wallet := a.SessionWallet()
	if wallet == nil {
		log.Error("account: could not get wallet info")
		return
	}

	infoDidUpdate, err := wallet.UpdateInfo(ctx, a.infoTimeout)
	if err != nil {
		// Transient by design: the stale snapshot is kept for this cycle
		// and the next tick retries.
		log.WithError(err).Warn("account: wallet info refresh failed")
		return
	}
	if !infoDidUpdate {
		return
	}

	a.broadcaster.Broadcast(bus.MustNewMessage(
		bus.GetWalletInfoReturn, walletInfoPayload{Info: wallet.Info()},
	))

	if sendInpageUpdate {
		a.registry.InpageAccount().BroadcastAccount(ReasonBalanceChange)
	}

	if err := a.UpdateMaxSendAmount(ctx); err != nil {
		log.WithError(err).Warn("account: max send recompute failed")
	}
}

// validatePassword validates the password hash by decrypting the first
// stored account's key blob. A failing decrypt is the expected outcome of a
// wrong password, not an exceptional condition, so the underlying error is
// swallowed here.
func (a *AccountService) validatePassword(ctx context.Context) bool {
	var account *domain.Account
	for _, network := range []string{
		domain.Mainnet, domain.Testnet, domain.Regtest,
	} {
		accounts, err := a.accountRepo.GetAccounts(ctx, network)
		if err != nil {
			continue
		}
		if len(accounts) > 0 {
			account = &accounts[0]
			break
		}
	}
	if account == nil {
		log.WithError(ErrNoAccountToValidate).Error("account: validate password")
		return false
	}

	factory := a.registry.Network().Factory()
	if _, err := factory.FromEncryptedPrivateKey(
		account.PrivateKeyHash,
		a.currentPasswordHash(),
		ports.DefaultScryptParams,
	); err != nil {
		return false
	}
	return true
}

func (a *AccountService) walletAlreadyExists(
	ctx context.Context, privateKeyHash string,
) bool {
	for _, account := range a.Accounts(ctx) {
		if account.PrivateKeyHash == privateKeyHash {
			return true
		}
	}
	return false
}

func (a *AccountService) currentPasswordHash() string {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.passwordHash
}

// ensureAppSalt returns the persisted password-hashing salt, generating and
// persisting it on first use.
func (a *AccountService) ensureAppSalt(ctx context.Context) (string, error) {
	salt, err := a.configRepo.GetAppSalt(ctx)
	if err != nil {
		return "", err
	}
	if len(salt) > 0 {
		return salt, nil
	}

	salt = randstr.Hex(16)
	if err := a.configRepo.UpdateAppSalt(ctx, salt); err != nil {
		return "", err
	}
	return salt, nil
}

// derivePasswordHash derives the hash every key blob is sealed under. The
// parameters must stay in sync with ports.DefaultScryptParams.
func derivePasswordHash(password, salt string) (string, error) {
	key, err := scrypt.Key(
		[]byte(password), []byte(salt),
		ports.DefaultScryptParams.N,
		ports.DefaultScryptParams.R,
		ports.DefaultScryptParams.P,
		32,
	)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}

/**** message handlers ****/

type loginPayload struct {
	Password string `json:"password"`
}

type importPayload struct {
	AccountName        string `json:"accountName"`
	MnemonicPrivateKey string `json:"mnemonicPrivateKey"`
}

type accountLoginPayload struct {
	SelectedWalletName string `json:"selectedWalletName"`
}

type sendTokensPayload struct {
	ReceiverAddress  string           `json:"receiverAddress"`
	Amount           decimal.Decimal  `json:"amount"`
	TransactionSpeed TransactionSpeed `json:"transactionSpeed"`
}

type validateNamePayload struct {
	Name string `json:"name"`
}

type errorPayload struct {
	Error string `json:"error"`
}

type walletInfoPayload struct {
	Info *ports.WalletInfo `json:"info"`
}

type maxSendPayload struct {
	MaxEurekaCoinAmount decimal.Decimal `json:"maxEurekaCoinAmount"`
}

type accountSummary struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (a *AccountService) registerHandlers(dispatcher bus.Dispatcher) {
	dispatcher.RegisterHandler(bus.Login,
		func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			req := loginPayload{}
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, a.Login(ctx, req.Password)
		})

	dispatcher.RegisterHandler(bus.ImportMnemonic,
		func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			req := importPayload{}
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, a.ImportMnemonic(ctx, req.AccountName, req.MnemonicPrivateKey)
		})

	dispatcher.RegisterHandler(bus.ImportPrivateKey,
		func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			req := importPayload{}
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, a.ImportPrivateKey(ctx, req.AccountName, req.MnemonicPrivateKey)
		})

	dispatcher.RegisterHandler(bus.AccountLogin,
		func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			req := accountLoginPayload{}
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, a.LoginAccount(ctx, req.SelectedWalletName)
		})

	dispatcher.RegisterHandler(bus.SendTokens,
		func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			req := sendTokensPayload{}
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, a.SendTokens(
				ctx, req.ReceiverAddress, req.Amount, req.TransactionSpeed,
			)
		})

	dispatcher.RegisterHandler(bus.Logout,
		func(ctx context.Context, _ json.RawMessage) (interface{}, error) {
			a.Logout(ctx)
			return nil, nil
		})

	dispatcher.RegisterHandler(bus.HasAccounts,
		func(ctx context.Context, _ json.RawMessage) (interface{}, error) {
			return a.HasAccounts(ctx), nil
		})

	dispatcher.RegisterHandler(bus.GetAccounts,
		func(ctx context.Context, _ json.RawMessage) (interface{}, error) {
			return a.Accounts(ctx), nil
		})

	dispatcher.RegisterHandler(bus.GetLoggedInAccount,
		func(_ context.Context, _ json.RawMessage) (interface{}, error) {
			account := a.LoggedInAccount()
			wallet := a.SessionWallet()
			if account == nil || wallet == nil || wallet.Info() == nil {
				return nil, nil
			}
			return accountSummary{
				Name:    account.Name,
				Address: wallet.Info().AddrStr,
			}, nil
		})

	dispatcher.RegisterHandler(bus.GetLoggedInAccountName,
		func(_ context.Context, _ json.RawMessage) (interface{}, error) {
			account := a.LoggedInAccount()
			if account == nil {
				return nil, nil
			}
			return account.Name, nil
		})

	dispatcher.RegisterHandler(bus.GetWalletInfo,
		func(_ context.Context, _ json.RawMessage) (interface{}, error) {
			wallet := a.SessionWallet()
			if wallet == nil {
				return nil, nil
			}
			return wallet.Info(), nil
		})

	dispatcher.RegisterHandler(bus.GetEurekaCoinUSD,
		func(_ context.Context, _ json.RawMessage) (interface{}, error) {
			wallet := a.SessionWallet()
			if wallet == nil {
				return nil, nil
			}
			usd, ok := wallet.EurekaUSD()
			if !ok {
				return nil, nil
			}
			return usd, nil
		})

	dispatcher.RegisterHandler(bus.ValidateWalletName,
		func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			req := validateNamePayload{}
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return a.IsWalletNameTaken(ctx, req.Name), nil
		})

	dispatcher.RegisterHandler(bus.GetMaxEurekaCoinSend,
		func(ctx context.Context, _ json.RawMessage) (interface{}, error) {
			return nil, a.UpdateMaxSendAmount(ctx)
		})
}
