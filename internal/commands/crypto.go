package commands

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"Rabscootle/internal/chart"
	"Rabscootle/internal/collector"
	"Rabscootle/internal/logger"
	"Rabscootle/internal/match"
	"Rabscootle/internal/model"
	"Rabscootle/internal/plugin"
	"Rabscootle/internal/upload"
)

// Crypto shows the current exchange rate and a chart for a coin.
type Crypto struct {
	Collector    *collector.Collector
	Uploader     upload.Uploader // nil attaches the chart to the reply instead
	ChartOptions chart.Options
	Coins        []model.Candidate

	rand func() *rand.Rand
}

// NewCrypto wires the crypto command. uploader may be nil.
func NewCrypto(col *collector.Collector, uploader upload.Uploader, opts chart.Options, coins []model.Candidate) *Crypto {
	return &Crypto{Collector: col, Uploader: uploader, ChartOptions: opts, Coins: coins, rand: newRand}
}

func (c *Crypto) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:        "crypto",
		Description: "Show current crypto exchange rates.",
		Options: []plugin.Option{{
			Name:         "coin",
			Description:  "Enter the coin you want to track",
			Type:         plugin.OptionString,
			Required:     true,
			Autocomplete: true,
		}},
	}
}

func (c *Crypto) OnAutocomplete(_ context.Context, req *plugin.AutocompleteRequest) ([]model.Choice, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return preview(c.Coins, CoinSuggestionLimit, c.rand()), nil
	}
	return model.ToChoices(match.Truncate(match.Filter(query, c.Coins), CoinSuggestionLimit)), nil
}

func (c *Crypto) OnInteraction(ctx context.Context, in *plugin.Interaction) (*model.Reply, error) {
	log := logger.New("crypto")

	coin, ok := resolve(in.String("coin"), c.Coins)
	if !ok {
		return model.ErrorReply("Sorry, I could not find that coin."), nil
	}

	snap, err := c.Collector.Collect(ctx, coin.Value)
	switch {
	case errors.Is(err, collector.ErrGraphData):
		return model.ErrorReply("Sorry, there was an error getting graph data."), nil
	case errors.Is(err, collector.ErrSummaryData):
		return model.ErrorReply("Sorry, I could not get summary data."), nil
	case err != nil:
		return nil, fmt.Errorf("collect %s: %w", coin.Value, err)
	}

	reply := &model.Reply{Embed: FormatCoinEmbed(coin, snap.Summary)}

	img, err := chart.Render(snap.Bars, c.ChartOptions)
	if err != nil {
		log.Warnf("render chart for %s: %v", coin.Value, err)
		return reply, nil
	}
	name := fmt.Sprintf("%s-%d.png", coin.Value, time.Now().UnixMilli())
	if c.Uploader != nil {
		url, err := c.Uploader.Upload(ctx, name, img)
		if err == nil {
			reply.Embed.Thumbnail = url
			return reply, nil
		}
		log.Warnf("upload %s: %v, attaching instead", name, err)
	}
	reply.Attachment = &model.Attachment{Name: name, Data: img}
	return reply, nil
}
