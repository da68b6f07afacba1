package httpout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ExchangeRateClient implements usecase.RateSource against an
// open.er-api.com compatible endpoint.
//
// baseURL example:
// - https://open.er-api.com/v6
// - local fake: http://localhost:9090/v6
type ExchangeRateClient struct {
	baseURL string
	client  *http.Client
}

func NewExchangeRateClient(baseURL string) *ExchangeRateClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return &ExchangeRateClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type exchangeRateResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// FetchRates returns the rate-vs-USD table.
func (c *ExchangeRateClient) FetchRates(ctx context.Context) (map[string]float64, error) {
	if c == nil || c.baseURL == "" {
		return nil, fmt.Errorf("exchange rate client baseURL is empty")
	}

	url := c.baseURL + "/latest/USD"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
		return nil, fmt.Errorf("exchange rate fetch failed status=%d body=%s",
			res.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed exchangeRateResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("exchange rate response decode failed: %w", err)
	}
	if parsed.Result != "" && parsed.Result != "success" {
		return nil, fmt.Errorf("exchange rate fetch result=%s", parsed.Result)
	}
	if len(parsed.Rates) == 0 {
		return nil, fmt.Errorf("exchange rate response has no rates")
	}
	return parsed.Rates, nil
}
