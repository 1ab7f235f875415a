package wallet

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eureka-network/eurekalite-daemon/internal/core/domain"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon " +
		"abandon abandon abandon abandon abandon about"
	// Uncompressed-key mainnet WIF.
	testMainnetWIF = "5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ"
)

func testFactory(params *chaincfg.Params) walletFactory {
	return walletFactory{
		profile: domain.NewNetworkProfile(domain.Mainnet, params, ""),
	}
}

func TestFromMnemonicInvalid(t *testing.T) {
	f := testFactory(&chaincfg.MainNetParams)
	_, err := f.FromMnemonic("this is not a valid recovery phrase")
	assert.Equal(t, ErrInvalidMnemonic, err)
}

func TestFromMnemonicIsDeterministic(t *testing.T) {
	f := testFactory(&chaincfg.MainNetParams)

	first, err := f.FromMnemonic(testMnemonic)
	require.NoError(t, err)
	second, err := f.FromMnemonic(testMnemonic)
	require.NoError(t, err)

	require.NotEmpty(t, first.Address())
	assert.Equal(t, first.Address(), second.Address())
}

func TestFromWIF(t *testing.T) {
	f := testFactory(&chaincfg.MainNetParams)

	w, err := f.FromWIF(testMainnetWIF)
	require.NoError(t, err)
	require.NotEmpty(t, w.Address())

	_, err = f.FromWIF("not a wif")
	assert.Equal(t, ErrInvalidWIF, err)
}

func TestFromWIFWrongNetwork(t *testing.T) {
	f := testFactory(&chaincfg.TestNet3Params)
	_, err := f.FromWIF(testMainnetWIF)
	assert.Equal(t, ErrInvalidWIF, err)
}

func TestEncryptedPrivateKeyRoundTrip(t *testing.T) {
	f := testFactory(&chaincfg.MainNetParams)
	passwordHash := "deadbeefpasswordhash"

	w, err := f.FromMnemonic(testMnemonic)
	require.NoError(t, err)

	blob, err := w.ToEncryptedPrivateKey(passwordHash, testScryptParams)
	require.NoError(t, err)

	restored, err := f.FromEncryptedPrivateKey(blob, passwordHash, testScryptParams)
	require.NoError(t, err)
	assert.Equal(t, w.Address(), restored.Address())

	_, err = f.FromEncryptedPrivateKey(blob, "wronghash", testScryptParams)
	assert.Equal(t, ErrWrongPassphrase, err)
}
