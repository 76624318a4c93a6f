package calculator

import (
	"errors"

	"Rabscootle/internal/model"
)

// CalculateSMA computes the simple moving average of the last period values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// MovingAverage returns the rolling SMA of closes, aligned with bars.
// ok[i] is false until the first full window.
func MovingAverage(bars []model.OHLCV, period int) (avg []float64, ok []bool) {
	closes := extractCloses(bars)
	avg = make([]float64, len(closes))
	ok = make([]bool, len(closes))
	for i := range closes {
		v, err := CalculateSMA(closes[:i+1], period)
		if err != nil {
			continue
		}
		avg[i], ok[i] = v, true
	}
	return avg, ok
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
