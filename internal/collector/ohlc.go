package collector

import "Rabscootle/internal/model"

// Normalize keeps the trailing window entries of raw and projects them to
// bars, preserving order. Shorter input is returned whole; window <= 0 yields
// an empty slice.
func Normalize(raw []model.OHLCTuple, window int) []model.OHLCV {
	if window <= 0 {
		return []model.OHLCV{}
	}
	if len(raw) > window {
		raw = raw[len(raw)-window:]
	}
	bars := make([]model.OHLCV, len(raw))
	for i, t := range raw {
		bars[i] = model.OHLCV{
			Time:   t.CloseTime(),
			Open:   t.Open(),
			High:   t.High(),
			Low:    t.Low(),
			Close:  t.Close(),
			Volume: t.Volume(),
		}
	}
	return bars
}
