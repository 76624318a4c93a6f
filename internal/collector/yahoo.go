package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Rabscootle/internal/calculator"
	"Rabscootle/internal/model"
)

// YahooFetcher implements Fetcher using Yahoo Finance's public chart API.
// Summaries are derived from the last 24 hourly bars.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps internal pair to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: "https://query1.finance.yahoo.com",
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"maticusd": "POL-USD",
			"xlmusd":   "XLM-USD",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooSymbol turns "btcusd" into "BTC-USD" unless the map overrides it.
func (f *YahooFetcher) yahooSymbol(pair string) string {
	if mapped, ok := f.SymbolMap[pair]; ok {
		return mapped
	}
	base := strings.TrimSuffix(strings.ToLower(pair), "usd")
	return strings.ToUpper(base) + "-USD"
}

var yahooIntervals = map[int]struct{ interval, rng string }{
	60:    {"1m", "1d"},
	300:   {"5m", "5d"},
	900:   {"15m", "5d"},
	1800:  {"30m", "5d"},
	3600:  {"60m", "5d"},
	86400: {"1d", "3mo"},
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func at(vals []*float64, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return *vals[i]
}

func (f *YahooFetcher) FetchOHLC(ctx context.Context, pair string, periodSeconds int) ([]model.OHLCTuple, error) {
	iv, ok := yahooIntervals[periodSeconds]
	if !ok {
		return nil, fmt.Errorf("yahoo: unsupported period %ds", periodSeconds)
	}
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(pair)), iv.interval, iv.rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	tuples := make([]model.OHLCTuple, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, h, l, c := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars
		}
		v := at(quote.Volume, i)
		tuples = append(tuples, model.OHLCTuple{
			float64(ts + int64(periodSeconds)), o, h, l, c, v, v * c,
		})
	}
	return tuples, nil
}

func (f *YahooFetcher) FetchSummary(ctx context.Context, pair string) (*model.Summary, error) {
	tuples, err := f.FetchOHLC(ctx, pair, HourlyPeriod)
	if err != nil {
		return nil, err
	}
	s, err := calculator.SummaryFromBars(Normalize(tuples, 24))
	if err != nil {
		return nil, fmt.Errorf("yahoo summary: %w", err)
	}
	return &s, nil
}
