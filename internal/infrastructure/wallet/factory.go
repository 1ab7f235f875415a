package wallet

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/tyler-smith/go-bip39"

	"github.com/eureka-network/eurekalite-daemon/internal/core/domain"
	"github.com/eureka-network/eurekalite-daemon/internal/core/ports"
	"github.com/eureka-network/eurekalite-daemon/pkg/insight"
)

// coinType is the BIP44 coin type of the chain. Keys derive along
// m/44'/88'/0'/0/0, matching every previously created account.
const coinType = 88

type walletFactory struct {
	profile  domain.NetworkProfile
	explorer insight.Service
}

func (f walletFactory) FromMnemonic(mnemonic string) (ports.Wallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed := bip39.NewSeed(mnemonic, "")

	key, err := hdkeychain.NewMaster(seed, f.profile.Params)
	if err != nil {
		return nil, err
	}
	for _, childIndex := range []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + coinType,
		hdkeychain.HardenedKeyStart + 0,
		0,
		0,
	} {
		key, err = key.Derive(childIndex)
		if err != nil {
			return nil, err
		}
	}

	privKey, err := key.ECPrivKey()
	if err != nil {
		return nil, err
	}
	return newWallet(privKey, f.profile.Params, f.explorer)
}

func (f walletFactory) FromWIF(wifStr string) (ports.Wallet, error) {
	wif, err := btcutil.DecodeWIF(wifStr)
	if err != nil {
		return nil, ErrInvalidWIF
	}
	if !wif.IsForNet(f.profile.Params) {
		return nil, ErrInvalidWIF
	}
	return newWallet(wif.PrivKey, f.profile.Params, f.explorer)
}

func (f walletFactory) FromEncryptedPrivateKey(
	privateKeyHash, passwordHash string, params ports.ScryptParams,
) (ports.Wallet, error) {
	wifStr, err := decrypt(privateKeyHash, passwordHash, params)
	if err != nil {
		return nil, err
	}
	return f.FromWIF(wifStr)
}

type factoryProvider struct {
	insightURLs map[string]string
}

// NewWalletFactoryProvider returns a provider building wallet factories
// bound to the insight API url of each network.
func NewWalletFactoryProvider(
	insightURLs map[string]string,
) ports.WalletFactoryProvider {
	return factoryProvider{insightURLs: insightURLs}
}

func (p factoryProvider) FactoryFor(
	profile domain.NetworkProfile,
) ports.WalletFactory {
	return walletFactory{
		profile:  profile,
		explorer: insight.NewService(p.insightURLs[profile.Name]),
	}
}
