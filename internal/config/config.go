package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Market data sources.
const (
	SourceCryptowatch = "cryptowatch"
	SourceYahoo       = "yahoo"
	SourceMock        = "mock"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
		Username string `yaml:"username"` // looked up with getMe when empty
	} `yaml:"telegram"`
	Market struct {
		Source   string `yaml:"source"`
		BaseURL  string `yaml:"base_url"`
		Exchange string `yaml:"exchange"`
		APIKey   string `yaml:"api_key"`
		Window   int    `yaml:"window"`
	} `yaml:"market"`
	Upload struct {
		Endpoint      string `yaml:"endpoint"`
		Token         string `yaml:"token"`
		PublicBaseURL string `yaml:"public_base_url"`
	} `yaml:"upload"`
	Library struct {
		ImagesPath string `yaml:"images_path"`
	} `yaml:"library"`
	Schedule struct {
		DailyPepeCron string   `yaml:"daily_pepe_cron"`
		DigestCron    string   `yaml:"digest_cron"`
		DigestPairs   []string `yaml:"digest_pairs"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	overrides := []struct {
		env string
		dst *string
	}{
		{"TELEGRAM_BOT_TOKEN", &cfg.Telegram.BotToken},
		{"TELEGRAM_CHAT_ID", &cfg.Telegram.ChatID},
		{"TELEGRAM_BOT_USERNAME", &cfg.Telegram.Username},
		{"MARKET_SOURCE", &cfg.Market.Source},
		{"CRYPTOWATCH_BASE_URL", &cfg.Market.BaseURL},
		{"CRYPTOWATCH_API_KEY", &cfg.Market.APIKey},
		{"HTTPS_PROXY", &cfg.Proxy},
		{"SQLITE_PATH", &cfg.Database.SQLitePath},
		{"UPLOAD_ENDPOINT", &cfg.Upload.Endpoint},
		{"UPLOAD_TOKEN", &cfg.Upload.Token},
		{"IMAGES_PATH", &cfg.Library.ImagesPath},
		{"LOG_LEVEL", &cfg.Log.Level},
		{"METRICS_ADDR", &cfg.Metrics.Addr},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
	if v := os.Getenv("MARKET_WINDOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse MARKET_WINDOW: %w", err)
		}
		cfg.Market.Window = n
	}

	// Defaults
	if cfg.Market.Source == "" {
		cfg.Market.Source = SourceCryptowatch
	}
	if cfg.Market.Exchange == "" {
		cfg.Market.Exchange = "kraken"
	}
	if cfg.Market.Window == 0 {
		cfg.Market.Window = 27
	}
	if cfg.Library.ImagesPath == "" {
		cfg.Library.ImagesPath = "data/pepes.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/rabscootle.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	switch c.Market.Source {
	case SourceCryptowatch, SourceYahoo, SourceMock:
	default:
		return fmt.Errorf("market.source %q is not one of cryptowatch, yahoo, mock", c.Market.Source)
	}
	if c.Market.Window <= 0 {
		return fmt.Errorf("market.window must be positive")
	}
	if (c.Schedule.DailyPepeCron != "" || c.Schedule.DigestCron != "") && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when a schedule is set")
	}
	return nil
}
