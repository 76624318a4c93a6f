package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// OHLCTuple is one raw time bucket as delivered by the market-data API:
// [closeTime, open, high, low, close, volume, quoteVolume].
type OHLCTuple [7]float64

// UnmarshalJSON accepts arrays shorter than seven elements; missing fields stay zero.
func (t *OHLCTuple) UnmarshalJSON(data []byte) error {
	var raw []float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode ohlc tuple: %w", err)
	}
	if len(raw) > len(t) {
		return fmt.Errorf("decode ohlc tuple: %d fields, want at most %d", len(raw), len(t))
	}
	*t = OHLCTuple{}
	copy(t[:], raw)
	return nil
}

func (t OHLCTuple) CloseTime() time.Time { return time.Unix(int64(t[0]), 0) }
func (t OHLCTuple) Open() float64        { return t[1] }
func (t OHLCTuple) High() float64        { return t[2] }
func (t OHLCTuple) Low() float64         { return t[3] }
func (t OHLCTuple) Close() float64       { return t[4] }
func (t OHLCTuple) Volume() float64      { return t[5] }
func (t OHLCTuple) QuoteVolume() float64 { return t[6] }

// Summary is the 24h market summary for a pair.
type Summary struct {
	Last           float64
	High           float64
	Low            float64
	ChangePercent  float64 // fraction, 0.05 == 5%
	ChangeAbsolute float64
	Volume         float64
	QuoteVolume    float64
}

// Snapshot holds everything the crypto command needs to answer.
type Snapshot struct {
	Pair      string
	Bars      []OHLCV
	Summary   Summary
	FetchedAt time.Time
}
