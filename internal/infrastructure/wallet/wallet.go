package wallet

import (
	"bytes"
	"context"
	"encoding/hex"
	"sort"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/shopspring/decimal"

	"github.com/eureka-network/eurekalite-daemon/internal/core/ports"
	"github.com/eureka-network/eurekalite-daemon/pkg/insight"
)

const (
	// defaultFeeRate in sat/byte, used when estimating the maximum
	// spendable amount.
	defaultFeeRate = 500
	// dustLimit in satoshis. Change below this threshold is folded into
	// the fee instead of creating an unspendable output.
	dustLimit = 546
)

var satoshisPerCoin = decimal.New(1, 8)

// wallet is a single-key p2pkh wallet backed by an insight block explorer.
type wallet struct {
	privKey  *btcec.PrivateKey
	address  btcutil.Address
	params   *chaincfg.Params
	explorer insight.Service
}

func newWallet(
	privKey *btcec.PrivateKey, params *chaincfg.Params, explorer insight.Service,
) (*wallet, error) {
	pubKeyHash := btcutil.Hash160(privKey.PubKey().SerializeCompressed())
	address, err := btcutil.NewAddressPubKeyHash(pubKeyHash, params)
	if err != nil {
		return nil, err
	}
	return &wallet{
		privKey:  privKey,
		address:  address,
		params:   params,
		explorer: explorer,
	}, nil
}

func (w *wallet) Address() string {
	return w.address.EncodeAddress()
}

func (w *wallet) ToEncryptedPrivateKey(
	passwordHash string, params ports.ScryptParams,
) (string, error) {
	wif, err := btcutil.NewWIF(w.privKey, w.params, true)
	if err != nil {
		return "", err
	}
	return encrypt(wif.String(), passwordHash, params)
}

func (w *wallet) GetInfo(ctx context.Context) (*ports.WalletInfo, error) {
	info, err := w.explorer.GetAddressInfo(w.Address())
	if err != nil {
		return nil, err
	}
	return &ports.WalletInfo{
		AddrStr:            info.AddrStr,
		Balance:            info.Balance,
		UnconfirmedBalance: info.UnconfirmedBalance,
		TotalReceived:      info.TotalReceived,
		TotalSent:          info.TotalSent,
		TxCount:            info.TxCount,
	}, nil
}

func (w *wallet) GetTransactions(
	ctx context.Context, pageNum int,
) (*ports.RawTxPage, error) {
	page, err := w.explorer.GetTransactions(w.Address(), pageNum)
	if err != nil {
		return nil, err
	}

	txs := make([]ports.RawTransaction, 0, len(page.Txs))
	for _, tx := range page.Txs {
		vin := make([]ports.RawVin, 0, len(tx.Vin))
		for _, in := range tx.Vin {
			vin = append(vin, ports.RawVin{Addr: in.Addr})
		}
		vout := make([]ports.RawVout, 0, len(tx.Vout))
		for _, out := range tx.Vout {
			vout = append(vout, ports.RawVout{
				Value: out.Value,
				ScriptPubKey: ports.RawScriptPubKey{
					Addresses: out.ScriptPubKey.Addresses,
				},
			})
		}
		txs = append(txs, ports.RawTransaction{
			Txid:          tx.Txid,
			Time:          tx.Time,
			Confirmations: tx.Confirmations,
			Vin:           vin,
			Vout:          vout,
		})
	}

	return &ports.RawTxPage{PagesTotal: page.PagesTotal, Txs: txs}, nil
}

// EstimateMaxSend returns the spendable balance after fees in whole coins.
// The estimate assumes every confirmed utxo is spent into a single p2pkh
// output, so the target address does not affect the result.
func (w *wallet) EstimateMaxSend(
	ctx context.Context, toAddress string,
) (decimal.Decimal, error) {
	utxos, err := w.explorer.GetUtxos(w.Address())
	if err != nil {
		return decimal.Zero, err
	}

	var total int64
	for _, u := range utxos {
		total += u.Satoshis
	}
	fee := estimateFee(len(utxos), 1, defaultFeeRate)
	if total <= fee {
		return decimal.Zero, nil
	}

	return decimal.New(total-fee, 0).DivRound(satoshisPerCoin, 8), nil
}

func (w *wallet) Send(
	ctx context.Context, toAddress string, amountSats int64, feeRate int,
) (string, error) {
	to, err := btcutil.DecodeAddress(toAddress, w.params)
	if err != nil {
		return "", ErrInvalidAddress
	}

	utxos, err := w.explorer.GetUtxos(w.Address())
	if err != nil {
		return "", err
	}
	selected, change, err := selectUtxos(utxos, amountSats, feeRate)
	if err != nil {
		return "", err
	}

	txHex, err := w.buildSignedTx(to, amountSats, change, selected)
	if err != nil {
		return "", err
	}
	return w.explorer.BroadcastTransaction(txHex)
}

// selectUtxos picks inputs largest-first until the amount plus the fee for
// the resulting transaction shape is covered. It returns the selection and
// the change in satoshis, already zeroed when below the dust limit.
func selectUtxos(
	utxos []insight.Utxo, amountSats int64, feeRate int,
) ([]insight.Utxo, int64, error) {
	sort.Slice(utxos, func(i, j int) bool {
		return utxos[i].Satoshis > utxos[j].Satoshis
	})

	selected := make([]insight.Utxo, 0, len(utxos))
	var total int64
	for _, u := range utxos {
		selected = append(selected, u)
		total += u.Satoshis

		fee := estimateFee(len(selected), 2, feeRate)
		if total < amountSats+fee {
			continue
		}
		change := total - amountSats - fee
		if change < dustLimit {
			change = 0
		}
		return selected, change, nil
	}
	return nil, 0, ErrInsufficientFunds
}

func (w *wallet) buildSignedTx(
	to btcutil.Address, amountSats, change int64, utxos []insight.Utxo,
) (string, error) {
	tx := wire.NewMsgTx(wire.TxVersion)

	prevScripts := make([][]byte, 0, len(utxos))
	for _, u := range utxos {
		txHash, err := chainhash.NewHashFromStr(u.Txid)
		if err != nil {
			return "", err
		}
		script, err := hex.DecodeString(u.ScriptPubKey)
		if err != nil {
			return "", err
		}
		prevScripts = append(prevScripts, script)
		tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(txHash, u.Vout), nil, nil))
	}

	toScript, err := txscript.PayToAddrScript(to)
	if err != nil {
		return "", err
	}
	tx.AddTxOut(wire.NewTxOut(amountSats, toScript))

	if change > 0 {
		changeScript, err := txscript.PayToAddrScript(w.address)
		if err != nil {
			return "", err
		}
		tx.AddTxOut(wire.NewTxOut(change, changeScript))
	}

	for i := range tx.TxIn {
		sigScript, err := txscript.SignatureScript(
			tx, i, prevScripts[i], txscript.SigHashAll, w.privKey, true,
		)
		if err != nil {
			return "", err
		}
		tx.TxIn[i].SignatureScript = sigScript
	}

	var buf bytes.Buffer
	buf.Grow(tx.SerializeSize())
	if err := tx.Serialize(&buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf.Bytes()), nil
}
