package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"Rabscootle/internal/bot"
	"Rabscootle/internal/config"
	"Rabscootle/internal/logger"
	"Rabscootle/internal/metrics"
	"Rabscootle/internal/notifier"
	"Rabscootle/internal/recorder"
	"Rabscootle/internal/scheduler"
)

func serveCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}
			return serve(cmd, cfg)
		},
	}
}

func serve(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()
	log := logger.New("main")
	log.Info("Rabscootle starting...")

	m := metrics.New()
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.Errorf("metrics server: %v", err)
			}
		}()
	}

	comps, err := buildComponents(cfg, m)
	if err != nil {
		return err
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warnf("init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	b := bot.New(comps.Registry, rec, m, tn)
	b.Username = cfg.Telegram.Username
	if b.Username == "" {
		name, err := tn.GetMe(ctx)
		if err != nil {
			log.Warnf("getMe failed, answering commands for any bot: %v", err)
		} else {
			b.Username = name
		}
	}
	log.Infof("bot username: @%s", b.Username)

	sched := scheduler.NewScheduler(ctx, b, comps.Picker, cfg.Telegram.ChatID)
	if err := sched.RegisterAll(cfg.Schedule.DailyPepeCron, cfg.Schedule.DigestCron, cfg.Schedule.DigestPairs); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Info("Rabscootle is running. Press Ctrl+C to stop.")
	tn.StartPolling(ctx, b)

	log.Info("shutdown signal received, stopping...")
	return nil
}
