package coinpaprikafeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"

	"github.com/eureka-network/eurekalite-daemon/internal/core/ports"
	"github.com/eureka-network/eurekalite-daemon/pkg/circuitbreaker"
	"github.com/eureka-network/eurekalite-daemon/pkg/util"
)

type tickerResponse struct {
	Data struct {
		Quotes struct {
			USD struct {
				Price decimal.Decimal `json:"price"`
			} `json:"USD"`
		} `json:"quotes"`
	} `json:"data"`
}

type priceSource struct {
	tickerURL string
	cb        *gobreaker.CircuitBreaker
}

// NewPriceSource returns a market price source backed by the coinpaprika
// ticker endpoint.
func NewPriceSource(tickerURL string) ports.PriceSource {
	return &priceSource{
		tickerURL: tickerURL,
		cb:        circuitbreaker.NewCircuitBreaker("coinpaprika"),
	}
}

func (p *priceSource) GetUSDPrice(ctx context.Context) (decimal.Decimal, error) {
	resp, err := p.cb.Execute(func() (interface{}, error) {
		status, resp, err := util.NewHTTPRequest("GET", p.tickerURL, "", nil)
		if err != nil {
			return "", err
		}
		if status != http.StatusOK {
			return "", fmt.Errorf("coinpaprika: %s", resp)
		}
		return resp, nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	ticker := tickerResponse{}
	if err := json.Unmarshal([]byte(resp.(string)), &ticker); err != nil {
		return decimal.Zero, err
	}
	return ticker.Data.Quotes.USD.Price, nil
}
