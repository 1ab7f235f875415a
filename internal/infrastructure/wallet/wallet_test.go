package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eureka-network/eurekalite-daemon/pkg/insight"
)

func TestSelectUtxosSingleInput(t *testing.T) {
	utxos := []insight.Utxo{{Txid: "a", Satoshis: 100000}}

	selected, change, err := selectUtxos(utxos, 50000, 1)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	// 100000 - 50000 - fee(1 in, 2 out) at 1 sat/byte.
	assert.Equal(t, int64(49774), change)
}

func TestSelectUtxosLargestFirst(t *testing.T) {
	utxos := []insight.Utxo{
		{Txid: "small", Satoshis: 1000},
		{Txid: "big", Satoshis: 300000},
		{Txid: "mid", Satoshis: 5000},
	}

	selected, _, err := selectUtxos(utxos, 100000, 1)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "big", selected[0].Txid)
}

func TestSelectUtxosAccumulatesInputs(t *testing.T) {
	utxos := []insight.Utxo{
		{Txid: "a", Satoshis: 60000},
		{Txid: "b", Satoshis: 50000},
	}

	selected, change, err := selectUtxos(utxos, 100000, 1)
	require.NoError(t, err)
	require.Len(t, selected, 2)
	// 110000 - 100000 - fee(2 in, 2 out) at 1 sat/byte.
	assert.Equal(t, int64(9626), change)
}

func TestSelectUtxosFoldsDustChangeIntoFee(t *testing.T) {
	utxos := []insight.Utxo{{Txid: "a", Satoshis: 100000}}

	// Change would be 274 satoshis, below the dust limit.
	selected, change, err := selectUtxos(utxos, 99500, 1)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, int64(0), change)
}

func TestSelectUtxosInsufficientFunds(t *testing.T) {
	utxos := []insight.Utxo{{Txid: "a", Satoshis: 1000}}

	_, _, err := selectUtxos(utxos, 100000, 1)
	assert.Equal(t, ErrInsufficientFunds, err)
}
