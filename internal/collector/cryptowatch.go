package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"Rabscootle/internal/model"
)

// DefaultCryptowatchURL is the public REST endpoint.
const DefaultCryptowatchURL = "https://api.cryptowat.ch"

// CryptowatchFetcher implements Fetcher using the Cryptowatch REST API.
type CryptowatchFetcher struct {
	BaseURL  string
	Exchange string
	APIKey   string
	Client   *http.Client
}

// NewCryptowatchFetcher creates a new fetcher with optional proxy support.
func NewCryptowatchFetcher(baseURL, exchange, apiKey, proxyURL string) *CryptowatchFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = DefaultCryptowatchURL
	}
	if exchange == "" {
		exchange = "kraken"
	}
	return &CryptowatchFetcher{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Exchange: exchange,
		APIKey:   apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *CryptowatchFetcher) Name() string { return "cryptowatch" }

type cwOHLCResponse struct {
	Result map[string][]model.OHLCTuple `json:"result"`
}

type cwSummaryResponse struct {
	Result struct {
		Price struct {
			Last   float64 `json:"last"`
			High   float64 `json:"high"`
			Low    float64 `json:"low"`
			Change struct {
				Percentage float64 `json:"percentage"`
				Absolute   float64 `json:"absolute"`
			} `json:"change"`
		} `json:"price"`
		Volume      float64 `json:"volume"`
		VolumeQuote float64 `json:"volumeQuote"`
	} `json:"result"`
	Allowance struct {
		Cost      float64 `json:"cost"`
		Remaining float64 `json:"remaining"`
		Upgrade   string  `json:"upgrade"`
	} `json:"allowance"`
}

func (f *CryptowatchFetcher) FetchOHLC(ctx context.Context, pair string, periodSeconds int) ([]model.OHLCTuple, error) {
	period := strconv.Itoa(periodSeconds)
	endpoint := fmt.Sprintf("%s/markets/%s/%s/ohlc?periods=%s",
		f.BaseURL, url.PathEscape(f.Exchange), url.PathEscape(pair), period)

	var resp cwOHLCResponse
	if err := f.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetch ohlc: %w", err)
	}
	tuples, ok := resp.Result[period]
	if !ok {
		return nil, fmt.Errorf("fetch ohlc: no %ss period in response", period)
	}
	return tuples, nil
}

func (f *CryptowatchFetcher) FetchSummary(ctx context.Context, pair string) (*model.Summary, error) {
	endpoint := fmt.Sprintf("%s/markets/%s/%s/summary",
		f.BaseURL, url.PathEscape(f.Exchange), url.PathEscape(pair))

	var resp cwSummaryResponse
	if err := f.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetch summary: %w", err)
	}
	r := resp.Result
	return &model.Summary{
		Last:           r.Price.Last,
		High:           r.Price.High,
		Low:            r.Price.Low,
		ChangePercent:  r.Price.Change.Percentage,
		ChangeAbsolute: r.Price.Change.Absolute,
		Volume:         r.Volume,
		QuoteVolume:    r.VolumeQuote,
	}, nil
}

func (f *CryptowatchFetcher) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if f.APIKey != "" {
		req.Header.Set("X-CW-API-Key", f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
