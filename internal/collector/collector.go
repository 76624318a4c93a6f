package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Rabscootle/internal/logger"
	"Rabscootle/internal/metrics"
	"Rabscootle/internal/model"
)

// DefaultWindow is the number of trailing hourly candles shown on a chart.
const DefaultWindow = 27

var (
	// ErrGraphData marks failures of the OHLC request.
	ErrGraphData = errors.New("graph data unavailable")
	// ErrSummaryData marks failures of the summary request.
	ErrSummaryData = errors.New("summary data unavailable")
	// ErrNoData is returned when the provider answered with zero candles.
	ErrNoData = errors.New("no candles returned")
)

// Collector orchestrates the market requests behind one crypto command.
type Collector struct {
	Fetcher Fetcher
	Window  int
	Metrics *metrics.Metrics
}

// NewCollector creates a new Collector. window <= 0 selects DefaultWindow.
func NewCollector(fetcher Fetcher, window int, m *metrics.Metrics) *Collector {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Collector{Fetcher: fetcher, Window: window, Metrics: m}
}

type summaryResult struct {
	summary *model.Summary
	err     error
}

// Collect fetches candles and the 24h summary for pair. The summary request
// runs alongside the candle request; errors wrap ErrGraphData or ErrSummaryData.
func (c *Collector) Collect(ctx context.Context, pair string) (*model.Snapshot, error) {
	log := logger.New("collector")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	summaryCh := make(chan summaryResult, 1)
	go func() {
		start := time.Now()
		s, err := c.Fetcher.FetchSummary(ctx, pair)
		c.Metrics.ObserveFetch("summary", time.Since(start))
		summaryCh <- summaryResult{summary: s, err: err}
	}()

	start := time.Now()
	tuples, err := c.Fetcher.FetchOHLC(ctx, pair, HourlyPeriod)
	c.Metrics.ObserveFetch("ohlc", time.Since(start))
	if err != nil {
		log.Warnf("%s ohlc for %s failed: %v", c.Fetcher.Name(), pair, err)
		return nil, fmt.Errorf("%w: %w", ErrGraphData, err)
	}
	bars := Normalize(tuples, c.Window)
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrGraphData, ErrNoData)
	}

	var res summaryResult
	select {
	case res = <-summaryCh:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrSummaryData, ctx.Err())
	}
	if res.err != nil {
		log.Warnf("%s summary for %s failed: %v", c.Fetcher.Name(), pair, res.err)
		return nil, fmt.Errorf("%w: %w", ErrSummaryData, res.err)
	}

	log.Debugf("collected %d bars for %s from %s", len(bars), pair, c.Fetcher.Name())
	return &model.Snapshot{
		Pair:      pair,
		Bars:      bars,
		Summary:   *res.summary,
		FetchedAt: time.Now(),
	}, nil
}
