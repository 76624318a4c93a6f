package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"Rabscootle/internal/chart"
	"Rabscootle/internal/collector"
	"Rabscootle/internal/config"
	"Rabscootle/internal/library"
	"Rabscootle/internal/match"
	"Rabscootle/internal/recorder"
	"Rabscootle/internal/selector"
)

func chartCmd(cfg *config.Config) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "chart <pair>",
		Short: "Render the candlestick chart of a pair to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair := strings.ToLower(args[0])
			name := pair
			if coin, ok := library.FindCoin(pair); ok {
				name = coin.Name
			}
			fetcher, err := newFetcher(cfg)
			if err != nil {
				return err
			}
			snap, err := collector.NewCollector(fetcher, cfg.Market.Window, nil).Collect(cmd.Context(), pair)
			if err != nil {
				return err
			}
			img, err := chart.Render(snap.Bars, chart.DefaultOptions())
			if err != nil {
				return err
			}
			if out == "" {
				out = pair + ".png"
			}
			if err := os.WriteFile(out, img, 0o644); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: last %.2f, %d bars -> %s\n", name, snap.Summary.Last, len(snap.Bars), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <pair>.png)")
	return cmd
}

func pepeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "pepe [phrase]",
		Short: "Print the pepe a phrase maps to, or a random one",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := loadLibrary(cfg)
			if err != nil {
				return err
			}
			if lib.Len() == 0 {
				return fmt.Errorf("the pepe library is empty")
			}
			phrase := strings.Join(args, " ")
			if phrase == "" {
				uri, _ := selector.NewPicker(lib.URIs, nil).Next()
				fmt.Fprintln(cmd.OutOrStdout(), uri)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), lib.URIs[selector.SelectIndex(phrase, lib.Len())])
			return nil
		},
	}
}

func coinsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coins [query]",
		Short: "List the coins matching a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range match.Filter(strings.Join(args, " "), library.Coins()) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", c.Value, c.Name)
			}
			return nil
		},
	}
}

func statsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print how often each command was used",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
			if err != nil {
				return err
			}
			defer rec.Close()
			counts, err := rec.CommandCounts()
			if err != nil {
				return err
			}
			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, humanize.Comma(int64(counts[name])))
			}
			return nil
		},
	}
}
