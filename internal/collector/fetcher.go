package collector

import (
	"context"

	"Rabscootle/internal/model"
)

// HourlyPeriod is the candle period, in seconds, used for charts.
const HourlyPeriod = 3600

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchOHLC(ctx context.Context, pair string, periodSeconds int) ([]model.OHLCTuple, error)
	FetchSummary(ctx context.Context, pair string) (*model.Summary, error)
	Name() string
}
