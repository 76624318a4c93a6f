package commands

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"Rabscootle/internal/model"
)

const currency = "$"

// Emoji picks the title emoji for a 24h change given in percent.
func Emoji(percent float64) string {
	switch {
	case percent >= 10:
		return "🚀"
	case percent >= 0:
		return "📈"
	case percent >= -10:
		return "📉"
	case percent >= -15:
		return "🧱"
	default:
		return "🦽"
	}
}

// Symbol turns a pair value like "btcusd" into "BTC".
func Symbol(pair string) string {
	return strings.ToUpper(strings.TrimSuffix(strings.ToLower(pair), "usd"))
}

// FormatCoinEmbed renders the price card for a coin.
func FormatCoinEmbed(coin model.Candidate, s model.Summary) *model.Embed {
	percent := s.ChangePercent * 100
	color := model.ColorGreen
	if percent < 0 {
		color = model.ColorRed
	}
	symbol := Symbol(coin.Value)

	return &model.Embed{
		Title: fmt.Sprintf("%s %s (%s): %.2f%s", Emoji(percent), coin.Name, symbol, s.Last, currency),
		Color: color,
		Fields: []model.EmbedField{
			{
				Name:   "24h Range",
				Value:  fmt.Sprintf("%.2f%% (%.2f%s)", percent, s.ChangeAbsolute, currency),
				Inline: true,
			},
			{
				Name:   "High / Low",
				Value:  fmt.Sprintf("%.2f%s - %.2f%s", s.High, currency, s.Low, currency),
				Inline: true,
			},
			{
				Name:   "Volume",
				Value:  fmt.Sprintf("%s %s", humanize.CommafWithDigits(s.Volume, 2), symbol),
				Inline: true,
			},
		},
	}
}
