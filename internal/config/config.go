package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// ListeningPortKey is the port the websocket gateway listens on.
	ListeningPortKey = "LISTENING_PORT"
	// DatadirKey is the local data directory storing the daemon state.
	DatadirKey = "DATADIR"
	// LogLevelKey selects the logging verbosity. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// MainnetExplorerURLKey is the base url of the mainnet block explorer UI.
	MainnetExplorerURLKey = "MAINNET_EXPLORER_URL"
	// TestnetExplorerURLKey is the base url of the testnet block explorer UI.
	TestnetExplorerURLKey = "TESTNET_EXPLORER_URL"
	// RegtestExplorerURLKey is the base url of the regtest block explorer UI.
	RegtestExplorerURLKey = "REGTEST_EXPLORER_URL"
	// MainnetInsightURLKey is the insight API endpoint used on mainnet.
	MainnetInsightURLKey = "MAINNET_INSIGHT_URL"
	// TestnetInsightURLKey is the insight API endpoint used on testnet.
	TestnetInsightURLKey = "TESTNET_INSIGHT_URL"
	// RegtestInsightURLKey is the insight API endpoint used on regtest.
	RegtestInsightURLKey = "REGTEST_INSIGHT_URL"
	// PriceFeedURLKey is the endpoint of the market price feed.
	PriceFeedURLKey = "PRICE_FEED_URL"
	// WalletInfoIntervalKey is the wallet info refresh interval in seconds.
	WalletInfoIntervalKey = "WALLET_INFO_INTERVAL"
	// PriceIntervalKey is the market price refresh interval in seconds.
	PriceIntervalKey = "PRICE_INTERVAL"
	// TxIntervalKey is the transaction history refresh interval in seconds.
	TxIntervalKey = "TX_INTERVAL"
	// WalletInfoTimeoutKey bounds a single wallet info fetch, in seconds.
	// On expiry the stale cached snapshot is kept for that cycle.
	WalletInfoTimeoutKey = "WALLET_INFO_TIMEOUT"

	// DbLocation is the subdirectory of the datadir holding the database.
	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("eurekalite-daemon", false)

// InitConfig loads the daemon configuration from the environment, applying
// defaults, and prepares the data directory.
func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("EUREKALITE")
	vip.AutomaticEnv()

	vip.SetDefault(ListeningPortKey, 9735)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(MainnetExplorerURLKey, "https://eurekanetwork.io/tx")
	vip.SetDefault(TestnetExplorerURLKey, "https://testnet.eurekanetwork.io/tx")
	vip.SetDefault(RegtestExplorerURLKey, "http://localhost:3001/explorer/tx")
	vip.SetDefault(MainnetInsightURLKey, "https://eurekanetwork.io/api")
	vip.SetDefault(TestnetInsightURLKey, "https://testnet.eurekanetwork.io/api")
	vip.SetDefault(RegtestInsightURLKey, "http://localhost:3001/api")
	vip.SetDefault(
		PriceFeedURLKey, "https://api.coinpaprika.com/v1/ticker/erk-eureka-coin",
	)
	vip.SetDefault(WalletInfoIntervalKey, 30)
	vip.SetDefault(PriceIntervalKey, 60)
	vip.SetDefault(TxIntervalKey, 60)
	vip.SetDefault(WalletInfoTimeoutKey, 30)

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

// GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetDuration reads an interval expressed in seconds.
func GetDuration(key string) time.Duration {
	return time.Duration(vip.GetInt(key)) * time.Second
}

// GetDatadir returns the data directory of the daemon.
func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the database directory of the daemon.
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

func initDatadir() error {
	return makeDirectoryIfNotExists(GetDbDir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
