package calculator

import (
	"errors"
	"math"

	"Rabscootle/internal/model"
)

// ErrNoBars is returned when a calculation needs at least one bar.
var ErrNoBars = errors.New("no bars provided")

// CalculateRange returns the highest high and lowest low over bars.
func CalculateRange(bars []model.OHLCV) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, ErrNoBars
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, nil
}

// CalculateChange returns the move from the first open to the last close,
// both as an absolute amount and as a fraction of the open.
func CalculateChange(bars []model.OHLCV) (absolute, fraction float64, err error) {
	if len(bars) == 0 {
		return 0, 0, ErrNoBars
	}
	open := bars[0].Open
	absolute = bars[len(bars)-1].Close - open
	if open != 0 {
		fraction = absolute / open
	}
	return absolute, fraction, nil
}

// SummaryFromBars derives a 24h-style summary from bars.
func SummaryFromBars(bars []model.OHLCV) (model.Summary, error) {
	high, low, err := CalculateRange(bars)
	if err != nil {
		return model.Summary{}, err
	}
	abs, frac, _ := CalculateChange(bars)
	s := model.Summary{
		Last:           bars[len(bars)-1].Close,
		High:           high,
		Low:            low,
		ChangeAbsolute: abs,
		ChangePercent:  frac,
	}
	for _, b := range bars {
		s.Volume += b.Volume
		s.QuoteVolume += b.Volume * b.Close
	}
	return s, nil
}
