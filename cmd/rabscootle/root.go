package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"Rabscootle/internal/config"
	"Rabscootle/internal/logger"
)

// Execute runs the rabscootle CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	cfg := &config.Config{}

	root := &cobra.Command{
		Use:           "rabscootle",
		Short:         "Rabscootle chat bot: crypto rates and pepes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath == "" {
				cfgPath = "configs/config.yaml"
				if v := os.Getenv("CONFIG_PATH"); v != "" {
					cfgPath = v
				}
			}
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			*cfg = *loaded
			if err := logger.SetLevel(cfg.Log.Level); err != nil {
				return fmt.Errorf("log level %q: %w", cfg.Log.Level, err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default configs/config.yaml or $CONFIG_PATH)")

	root.AddCommand(serveCmd(cfg), chartCmd(cfg), pepeCmd(cfg), coinsCmd(), statsCmd(cfg))
	return root
}
