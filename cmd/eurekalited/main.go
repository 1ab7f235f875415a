package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/eureka-network/eurekalite-daemon/internal/config"
	"github.com/eureka-network/eurekalite-daemon/internal/core/application"
	"github.com/eureka-network/eurekalite-daemon/internal/core/domain"
	coinpaprikafeed "github.com/eureka-network/eurekalite-daemon/internal/infrastructure/pricefeed/coinpaprika"
	dbbadger "github.com/eureka-network/eurekalite-daemon/internal/infrastructure/storage/db/badger"
	walletinfra "github.com/eureka-network/eurekalite-daemon/internal/infrastructure/wallet"
	wsinterface "github.com/eureka-network/eurekalite-daemon/internal/interfaces/ws"
	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

// version is set at build time with -ldflags.
var version = "dev"

const startupTimeout = 30 * time.Second

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	dbManager, err := dbbadger.NewDbManager(config.GetDbDir(), nil)
	if err != nil {
		log.WithError(err).Fatal("error while opening database")
	}
	defer dbManager.Close()

	accountRepo := dbbadger.NewAccountRepositoryImpl(dbManager)
	configRepo := dbbadger.NewConfigRepositoryImpl(dbManager)

	profiles := []domain.NetworkProfile{
		domain.NewNetworkProfile(
			domain.Mainnet, &chaincfg.MainNetParams,
			config.GetString(config.MainnetExplorerURLKey),
		),
		domain.NewNetworkProfile(
			domain.Testnet, &chaincfg.TestNet3Params,
			config.GetString(config.TestnetExplorerURLKey),
		),
		domain.NewNetworkProfile(
			domain.Regtest, &chaincfg.RegressionNetParams,
			config.GetString(config.RegtestExplorerURLKey),
		),
	}
	walletProvider := walletinfra.NewWalletFactoryProvider(map[string]string{
		domain.Mainnet: config.GetString(config.MainnetInsightURLKey),
		domain.Testnet: config.GetString(config.TestnetInsightURLKey),
		domain.Regtest: config.GetString(config.RegtestInsightURLKey),
	})

	dispatcher := bus.NewDispatcher()
	registry := application.NewRegistry()

	// One limiter shared by every poller hitting the insight api, so the
	// wallet-info and transaction loops cannot hammer the explorer together.
	insightLimiter := rate.NewLimiter(rate.Every(time.Second), 1)

	inpageSvc := application.NewInpageAccountService(
		application.InpageAccountServiceOpts{Registry: registry},
	)

	wsSvc := wsinterface.NewService(wsinterface.ServiceOpts{
		Address:    fmt.Sprintf(":%d", config.GetInt(config.ListeningPortKey)),
		Dispatcher: dispatcher,
		Inpage:     inpageSvc,
	})

	application.NewNetworkService(application.NetworkServiceOpts{
		Registry:       registry,
		ConfigRepo:     configRepo,
		Broadcaster:    wsSvc,
		Dispatcher:     dispatcher,
		WalletProvider: walletProvider,
		Profiles:       profiles,
	})
	application.NewAccountService(application.AccountServiceOpts{
		Registry:     registry,
		AccountRepo:  accountRepo,
		ConfigRepo:   configRepo,
		Broadcaster:  wsSvc,
		Dispatcher:   dispatcher,
		InfoInterval: config.GetDuration(config.WalletInfoIntervalKey),
		InfoTimeout:  config.GetDuration(config.WalletInfoTimeoutKey),
		RateLimiter:  insightLimiter,
	})
	application.NewTransactionService(application.TransactionServiceOpts{
		Registry:    registry,
		Broadcaster: wsSvc,
		Dispatcher:  dispatcher,
		Interval:    config.GetDuration(config.TxIntervalKey),
		RateLimiter: insightLimiter,
	})
	application.NewExternalService(application.ExternalServiceOpts{
		Registry:    registry,
		Broadcaster: wsSvc,
		PriceSource: coinpaprikafeed.NewPriceSource(
			config.GetString(config.PriceFeedURLKey),
		),
		Interval: config.GetDuration(config.PriceIntervalKey),
	})
	onInstallSvc := application.NewOnInstallService(application.OnInstallServiceOpts{
		Registry:   registry,
		ConfigRepo: configRepo,
		TabManager: wsSvc,
		Version:    version,
	})
	registry.Seal()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	if err := registry.WaitReady(ctx); err != nil {
		log.WithError(err).Fatal("controllers did not initialize")
	}
	if err := onInstallSvc.CheckInstallOrUpdate(ctx); err != nil {
		log.WithError(err).Warn("install/update check failed")
	}

	if err := wsSvc.Start(); err != nil {
		log.WithError(err).Fatal("error listening on ws interface")
	}
	defer wsSvc.Stop()

	log.Infof("daemon %s started", version)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("exiting")
}
