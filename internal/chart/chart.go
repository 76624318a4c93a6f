// Package chart rasterizes candles into a small PNG suitable for an embed thumbnail.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"Rabscootle/internal/calculator"
	"Rabscootle/internal/model"
)

// ErrNoBars is returned when there is nothing to draw.
var ErrNoBars = errors.New("chart: no bars")

// Options control the chart geometry. Zero sizes take defaults.
type Options struct {
	Height      int // total image height in pixels
	CandleWidth int
	Gap         int
	MAPeriod    int // 0 disables the moving-average overlay
}

// DefaultOptions matches the 80px thumbnail the crypto command posts.
func DefaultOptions() Options {
	return Options{Height: 80, CandleWidth: 5, Gap: 2, MAPeriod: 7}
}

var (
	background = color.RGBA{0x1e, 0x1f, 0x22, 0xff}
	upColor    = color.RGBA{0x2e, 0xcc, 0x71, 0xff}
	downColor  = color.RGBA{0xe7, 0x4c, 0x3c, 0xff}
	volColor   = color.RGBA{0x5d, 0x6d, 0x7e, 0xff}
	maColor    = color.RGBA{0xf1, 0xc4, 0x0f, 0xff}
)

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.CandleWidth <= 0 {
		o.CandleWidth = d.CandleWidth
	}
	if o.Gap <= 0 {
		o.Gap = d.Gap
	}
	return o
}

// Width returns the image width Render produces for n candles.
func (o Options) Width(n int) int {
	o = o.withDefaults()
	return n*(o.CandleWidth+o.Gap) + o.Gap
}

// Render draws bars as candlesticks with a volume band underneath and
// returns PNG bytes.
func Render(bars []model.OHLCV, opts Options) ([]byte, error) {
	if len(bars) == 0 {
		return nil, ErrNoBars
	}
	opts = opts.withDefaults()

	width := opts.Width(len(bars))
	img := image.NewRGBA(image.Rect(0, 0, width, opts.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	volumeH := opts.Height / 4
	priceH := opts.Height - volumeH

	high, low, err := calculator.CalculateRange(bars)
	if err != nil {
		return nil, err
	}
	if high == low {
		high, low = high+1, low-1
	}
	const pad = 2
	y := func(price float64) int {
		return pad + int((high-price)/(high-low)*float64(priceH-2*pad-1)+0.5)
	}

	maxVol := 0.0
	for _, b := range bars {
		if b.Volume > maxVol {
			maxVol = b.Volume
		}
	}

	for i, b := range bars {
		x0 := opts.Gap + i*(opts.CandleWidth+opts.Gap)
		mid := x0 + opts.CandleWidth/2
		c := upColor
		if b.Close < b.Open {
			c = downColor
		}

		if maxVol > 0 {
			h := int(b.Volume / maxVol * float64(volumeH-1))
			fill(img, x0, opts.Height-h, x0+opts.CandleWidth, opts.Height, volColor)
		}

		fill(img, mid, y(b.High), mid+1, y(b.Low)+1, c)
		top, bottom := y(b.Open), y(b.Close)
		if top > bottom {
			top, bottom = bottom, top
		}
		fill(img, x0, top, x0+opts.CandleWidth, bottom+1, c)
	}

	if opts.MAPeriod > 0 {
		avg, ok := calculator.MovingAverage(bars, opts.MAPeriod)
		prevX, prevY, havePrev := 0, 0, false
		for i := range bars {
			if !ok[i] {
				continue
			}
			cx := opts.Gap + i*(opts.CandleWidth+opts.Gap) + opts.CandleWidth/2
			cy := y(avg[i])
			if havePrev {
				line(img, prevX, prevY, cx, cy, maColor)
			}
			prevX, prevY, havePrev = cx, cy, true
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func fill(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	draw.Draw(img, image.Rect(x0, y0, x1, y1).Intersect(img.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// line is Bresenham's algorithm.
func line(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
