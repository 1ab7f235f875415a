package domain

import "github.com/shopspring/decimal"

// Transaction is a ledger entry as shown to the UI, derived from a raw
// explorer transaction and never persisted. Amount is signed: negative when
// funds left the wallet, positive when funds were received.
type Transaction struct {
	ID            string          `json:"id"`
	Timestamp     string          `json:"timestamp"`
	Confirmations int             `json:"confirmations"`
	Amount        decimal.Decimal `json:"amount"`
}
