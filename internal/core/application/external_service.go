package application

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/eureka-network/eurekalite-daemon/internal/core/ports"
	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
	"github.com/eureka-network/eurekalite-daemon/pkg/poller"
)

const externalControllerName = "external"

// ExternalService polls the market price feed and recomputes the fiat value
// of the logged-in wallet's balance.
type ExternalService struct {
	registry    *Registry
	broadcaster ports.Broadcaster
	priceSource ports.PriceSource

	lock     sync.RWMutex
	priceUSD decimal.Decimal

	pricePoller *poller.Poller
}

// ExternalServiceOpts defines the dependencies needed to create an
// ExternalService with NewExternalService.
type ExternalServiceOpts struct {
	Registry    *Registry
	Broadcaster ports.Broadcaster
	PriceSource ports.PriceSource
	// Interval is the period of the price refresh loop.
	Interval time.Duration
}

// NewExternalService registers the external controller. It has no
// asynchronous setup and initializes immediately.
func NewExternalService(opts ExternalServiceOpts) *ExternalService {
	svc := &ExternalService{
		registry:    opts.Registry,
		broadcaster: opts.Broadcaster,
		priceSource: opts.PriceSource,
	}
	svc.pricePoller = poller.New(poller.Opts{
		Name:     "price",
		Interval: opts.Interval,
		Task: func() {
			svc.fetchPrice(context.Background())
		},
		// The first price must be available right after login, not one
		// interval later.
		FireImmediately: true,
	})

	opts.Registry.RegisterController(externalControllerName)
	opts.Registry.external = svc
	opts.Registry.ControllerInitialized(externalControllerName)

	return svc
}

// CalculateEurekaCoinToUSD converts a balance to its fiat value, rounded to
// 2 decimal places. It yields zero while no price was fetched yet.
func (e *ExternalService) CalculateEurekaCoinToUSD(
	balance decimal.Decimal,
) decimal.Decimal {
	e.lock.RLock()
	defer e.lock.RUnlock()
	if e.priceUSD.IsZero() {
		return decimal.Zero
	}
	return e.priceUSD.Mul(balance).Round(2)
}

// StartPolling starts the price refresh loop. Starting twice without
// stopping results in exactly one active timer.
func (e *ExternalService) StartPolling() {
	e.pricePoller.Start()
}

// StopPolling stops the price refresh loop. Stopping twice is a no-op.
func (e *ExternalService) StopPolling() {
	e.pricePoller.Stop()
}

// fetchPrice reads the current market price and, with a live session whose
// wallet info is present, recomputes and broadcasts the fiat balance. A
// feed failure is logged and skipped for this cycle only.
func (e *ExternalService) fetchPrice(ctx context.Context) {
	price, err := e.priceSource.GetUSDPrice(ctx)
	if err != nil {
		log.WithError(err).Warn("external: price fetch failed")
		return
	}

	e.lock.Lock()
	e.priceUSD = price
	e.lock.Unlock()

	wallet := e.registry.Account().SessionWallet()
	if wallet == nil || wallet.Info() == nil {
		return
	}

	eurekaUSD := e.CalculateEurekaCoinToUSD(wallet.Info().Balance)
	wallet.SetEurekaUSD(eurekaUSD)

	e.broadcaster.Broadcast(bus.MustNewMessage(
		bus.GetEurekaCoinUSDReturn, usdPayload{EurekaCoinUSD: eurekaUSD},
	))
}

type usdPayload struct {
	EurekaCoinUSD decimal.Decimal `json:"eurekacoinUSD"`
}
