package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceSource is the consumed market price feed: a single current USD price
// read, polled at a fixed interval by the external service.
type PriceSource interface {
	GetUSDPrice(ctx context.Context) (decimal.Decimal, error)
}
