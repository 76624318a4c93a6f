package main

import (
	"errors"
	"fmt"
	"os"

	"Rabscootle/internal/chart"
	"Rabscootle/internal/collector"
	"Rabscootle/internal/commands"
	"Rabscootle/internal/config"
	"Rabscootle/internal/library"
	"Rabscootle/internal/logger"
	"Rabscootle/internal/metrics"
	"Rabscootle/internal/plugin"
	"Rabscootle/internal/selector"
	"Rabscootle/internal/upload"
)

// newFetcher picks the market data source named in the config.
func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	switch cfg.Market.Source {
	case config.SourceCryptowatch:
		return collector.NewCryptowatchFetcher(cfg.Market.BaseURL, cfg.Market.Exchange, cfg.Market.APIKey, cfg.Proxy), nil
	case config.SourceYahoo:
		f := collector.NewYahooFetcher(cfg.Proxy)
		if cfg.Market.BaseURL != "" {
			f.BaseURL = cfg.Market.BaseURL
		}
		return f, nil
	case config.SourceMock:
		return &collector.MockFetcher{}, nil
	}
	return nil, fmt.Errorf("unknown market source %q", cfg.Market.Source)
}

// loadLibrary reads the image library; a missing file yields an empty library.
func loadLibrary(cfg *config.Config) (*library.ImageLibrary, error) {
	lib, err := library.LoadImages(cfg.Library.ImagesPath)
	if errors.Is(err, os.ErrNotExist) {
		logger.New("library").Warnf("image library %s not found, pepe commands will be empty", cfg.Library.ImagesPath)
		return library.NewImageLibrary(nil), nil
	}
	return lib, err
}

// components are the pieces shared by the bot and the scheduler.
type components struct {
	Registry *plugin.Registry
	Library  *library.ImageLibrary
	Picker   *selector.Picker[string]
}

func buildComponents(cfg *config.Config, m *metrics.Metrics) (*components, error) {
	log := logger.New("main")

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, err
	}
	log.Infof("data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.Market.Window, m)

	lib, err := loadLibrary(cfg)
	if err != nil {
		return nil, err
	}
	log.Infof("image library: %d images, %d named", lib.Len(), len(lib.Entries))
	picker := selector.NewPicker(lib.URIs, nil)

	// A nil *HTTPUploader must not become a non-nil interface.
	var up upload.Uploader
	if u := upload.NewHTTPUploader(cfg.Upload.Endpoint, cfg.Upload.Token, cfg.Upload.PublicBaseURL); u != nil {
		up = u
	}

	reg, err := plugin.NewRegistry(
		commands.NewCrypto(col, up, chart.DefaultOptions(), library.Coins()),
		commands.NewSearchPepe(lib),
		commands.NewEightPepe(lib, picker),
	)
	if err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}
	return &components{Registry: reg, Library: lib, Picker: picker}, nil
}
