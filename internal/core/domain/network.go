package domain

import "github.com/btcsuite/btcd/chaincfg"

const (
	// Mainnet is the name of the mainnet partition.
	Mainnet = "mainnet"
	// Testnet is the name of the testnet partition.
	Testnet = "testnet"
	// Regtest is the name of the regtest partition.
	Regtest = "regtest"
)

// NetworkProfile pairs a network name with its chain parameters and the
// base url of the block explorer serving it. Exactly three profiles exist
// for the process lifetime, selected by index.
type NetworkProfile struct {
	Name        string
	Params      *chaincfg.Params
	ExplorerURL string
}

// NewNetworkProfile returns an immutable network profile.
func NewNetworkProfile(
	name string, params *chaincfg.Params, explorerURL string,
) NetworkProfile {
	return NetworkProfile{
		Name:        name,
		Params:      params,
		ExplorerURL: explorerURL,
	}
}
