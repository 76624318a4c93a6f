package collector

import (
	"context"
	"time"

	"Rabscootle/internal/calculator"
	"Rabscootle/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price      float64
	Bars       int
	Tuples     []model.OHLCTuple
	OHLCErr    error
	SummaryErr error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchOHLC(_ context.Context, _ string, periodSeconds int) ([]model.OHLCTuple, error) {
	if m.OHLCErr != nil {
		return nil, m.OHLCErr
	}
	if m.Tuples != nil {
		return m.Tuples, nil
	}
	n := m.Bars
	if n == 0 {
		n = 48
	}
	return generateMockTuples(m.Price, n, periodSeconds), nil
}

func (m *MockFetcher) FetchSummary(ctx context.Context, pair string) (*model.Summary, error) {
	if m.SummaryErr != nil {
		return nil, m.SummaryErr
	}
	tuples, err := m.FetchOHLC(ctx, pair, HourlyPeriod)
	if err != nil {
		return nil, err
	}
	s, err := calculator.SummaryFromBars(Normalize(tuples, 24))
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func generateMockTuples(basePrice float64, count, periodSeconds int) []model.OHLCTuple {
	if basePrice == 0 {
		basePrice = 100
	}
	end := time.Now().Truncate(time.Hour).Unix()
	tuples := make([]model.OHLCTuple, count)
	for i := 0; i < count; i++ {
		// gentle zig-zag so the chart has both colors
		p := basePrice * (1 + float64((i%7)-3)*0.004 + float64(i)*0.0005)
		o := p * 0.998
		if i%2 == 1 {
			o = p * 1.002
		}
		closeTime := end - int64((count-1-i)*periodSeconds)
		tuples[i] = model.OHLCTuple{float64(closeTime), o, p * 1.006, p * 0.994, p, 1000 + float64(i*10), (1000 + float64(i*10)) * p}
	}
	return tuples
}
