package insight

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/eureka-network/eurekalite-daemon/pkg/circuitbreaker"
	"github.com/eureka-network/eurekalite-daemon/pkg/util"
)

// Service is the interface of the insight block explorer API consumed by
// the wallet adapter.
type Service interface {
	GetAddressInfo(addr string) (*AddressInfo, error)
	GetTransactions(addr string, pageNum int) (*TxPage, error)
	GetUtxos(addr string) ([]Utxo, error)
	BroadcastTransaction(txHex string) (string, error)
}

type insight struct {
	apiURL string
	cb     *gobreaker.CircuitBreaker
}

// NewService returns an insight explorer client for the given API base url.
func NewService(apiURL string) Service {
	return &insight{
		apiURL: apiURL,
		cb:     circuitbreaker.NewCircuitBreaker("insight"),
	}
}

func (i *insight) GetAddressInfo(addr string) (*AddressInfo, error) {
	url := fmt.Sprintf("%s/addr/%s", i.apiURL, addr)
	resp, err := i.get(url)
	if err != nil {
		return nil, err
	}

	info := &AddressInfo{}
	if err := json.Unmarshal([]byte(resp), info); err != nil {
		return nil, err
	}
	return info, nil
}

func (i *insight) GetTransactions(addr string, pageNum int) (*TxPage, error) {
	url := fmt.Sprintf(
		"%s/txs?address=%s&pageNum=%d", i.apiURL, addr, pageNum,
	)
	resp, err := i.get(url)
	if err != nil {
		return nil, err
	}

	page := &TxPage{}
	if err := json.Unmarshal([]byte(resp), page); err != nil {
		return nil, err
	}
	return page, nil
}

func (i *insight) GetUtxos(addr string) ([]Utxo, error) {
	url := fmt.Sprintf("%s/addr/%s/utxo", i.apiURL, addr)
	resp, err := i.get(url)
	if err != nil {
		return nil, err
	}

	utxos := make([]Utxo, 0)
	if err := json.Unmarshal([]byte(resp), &utxos); err != nil {
		return nil, err
	}
	return utxos, nil
}

func (i *insight) BroadcastTransaction(txHex string) (string, error) {
	url := fmt.Sprintf("%s/tx/send", i.apiURL)
	body, _ := json.Marshal(map[string]string{"rawtx": txHex})

	resp, err := i.post(url, string(body))
	if err != nil {
		return "", err
	}

	out := struct {
		Txid string `json:"txid"`
	}{}
	if err := json.Unmarshal([]byte(resp), &out); err != nil {
		return "", err
	}
	return out.Txid, nil
}

func (i *insight) get(url string) (string, error) {
	resp, err := i.cb.Execute(func() (interface{}, error) {
		status, resp, err := util.NewHTTPRequest("GET", url, "", nil)
		if err != nil {
			return "", err
		}
		if status != http.StatusOK {
			return "", fmt.Errorf("insight: %s", resp)
		}
		return resp, nil
	})
	if err != nil {
		return "", err
	}
	return resp.(string), nil
}

func (i *insight) post(url, body string) (string, error) {
	resp, err := i.cb.Execute(func() (interface{}, error) {
		status, resp, err := util.NewHTTPRequest(
			"POST", url, body,
			map[string]string{"Content-Type": "application/json"},
		)
		if err != nil {
			return "", err
		}
		if status != http.StatusOK {
			return "", fmt.Errorf("insight: %s", resp)
		}
		return resp, nil
	})
	if err != nil {
		return "", err
	}
	return resp.(string), nil
}
