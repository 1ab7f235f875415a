package insight

import "github.com/shopspring/decimal"

// AddressInfo is the balance snapshot served by the insight API for one
// address.
type AddressInfo struct {
	AddrStr            string          `json:"addrStr"`
	Balance            decimal.Decimal `json:"balance"`
	UnconfirmedBalance decimal.Decimal `json:"unconfirmedBalance"`
	TotalReceived      decimal.Decimal `json:"totalReceived"`
	TotalSent          decimal.Decimal `json:"totalSent"`
	TxCount            int             `json:"txApperances"`
}

// ScriptPubKey is the script info of a transaction output.
type ScriptPubKey struct {
	Addresses []string `json:"addresses"`
}

// Vin is a transaction input.
type Vin struct {
	Addr string `json:"addr"`
}

// Vout is a transaction output. Value is kept as the decimal string served
// by the API to avoid floating point drift.
type Vout struct {
	Value        string       `json:"value"`
	ScriptPubKey ScriptPubKey `json:"scriptPubKey"`
}

// Tx is a raw ledger transaction.
type Tx struct {
	Txid          string `json:"txid"`
	Time          int64  `json:"time"`
	Confirmations int    `json:"confirmations"`
	Vin           []Vin  `json:"vin"`
	Vout          []Vout `json:"vout"`
}

// TxPage is one page of transactions for an address, newest first, along
// with the total page count known to the explorer.
type TxPage struct {
	PagesTotal int  `json:"pagesTotal"`
	Txs        []Tx `json:"txs"`
}

// Utxo is an unspent output of an address.
type Utxo struct {
	Txid          string `json:"txid"`
	Vout          uint32 `json:"vout"`
	Satoshis      int64  `json:"satoshis"`
	Confirmations int    `json:"confirmations"`
	ScriptPubKey  string `json:"scriptPubKey"`
}
