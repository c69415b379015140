package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type ExchangeRateAPIResponse struct {
	Result string             `json:"result"`
	Base   string             `json:"base_code"`
	Rates  map[string]float64 `json:"conversion_rates"`
}

const rateTTL = time.Hour

type cachedRate struct {
	rate      float64
	fetchedAt time.Time
}

// CurrencyConverter converts with live ExchangeRate-API rates when an API key
// is configured and with the static USD rate otherwise or on failure.
type CurrencyConverter struct {
	apiKey     string
	baseURL    string
	staticUSD  map[string]float64 // target currency -> units per USD
	httpClient *http.Client
	logger     *zap.Logger

	mu    sync.Mutex
	rates map[string]cachedRate
}

// NewCurrencyConverter builds a converter. usdRate is the static USD rate into settlementCurrency.
func NewCurrencyConverter(apiKey, settlementCurrency string, usdRate float64, logger *zap.Logger) *CurrencyConverter {
	if logger == nil {
		logger = zap.NewNop()
	}
	static := map[string]float64{"USD": 1}
	if settlementCurrency != "" && usdRate > 0 {
		static[strings.ToUpper(settlementCurrency)] = usdRate
	}
	return &CurrencyConverter{
		apiKey:     apiKey,
		baseURL:    "https://v6.exchangerate-api.com/v6",
		staticUSD:  static,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
		rates:      map[string]cachedRate{},
	}
}

// Convert converts amount and rounds to cents.
func (c *CurrencyConverter) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return round2(amount), nil
	}
	rate, err := c.rate(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return round2(amount * rate), nil
}

func (c *CurrencyConverter) rate(ctx context.Context, from, to string) (float64, error) {
	key := from + ":" + to
	c.mu.Lock()
	cached, ok := c.rates[key]
	c.mu.Unlock()
	if ok && time.Since(cached.fetchedAt) < rateTTL {
		return cached.rate, nil
	}

	if c.apiKey != "" {
		rate, err := c.fetchExchangeRate(ctx, from, to)
		if err == nil {
			c.mu.Lock()
			c.rates[key] = cachedRate{rate: rate, fetchedAt: time.Now()}
			c.mu.Unlock()
			return rate, nil
		}
		c.logger.Warn("live exchange rate unavailable, using static rate",
			zap.String("from", from), zap.String("to", to), zap.Error(err))
	}
	return c.staticRate(from, to)
}

func (c *CurrencyConverter) staticRate(from, to string) (float64, error) {
	fromUSD, okFrom := c.staticUSD[from]
	toUSD, okTo := c.staticUSD[to]
	if !okFrom || !okTo {
		return 0, fmt.Errorf("no exchange rate for %s to %s", from, to)
	}
	return toUSD / fromUSD, nil
}

// fetchExchangeRate fetches exchange rate from base to target using ExchangeRate-API.
func (c *CurrencyConverter) fetchExchangeRate(ctx context.Context, from, to string) (float64, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, from)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	var rateResp ExchangeRateAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&rateResp); err != nil {
		return 0, fmt.Errorf("decoding response failed: %w", err)
	}
	if rateResp.Result != "success" {
		return 0, fmt.Errorf("exchange API returned failure result")
	}
	rate, ok := rateResp.Rates[to]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("exchange rate for %s not found", to)
	}
	return rate, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
