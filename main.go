// fast-trip is an accessible travel planner: an intake chat backed by a
// conversational API, then flight offers, a day-by-day timeline and a map.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fast-trip/config"
	"fast-trip/dao"
)

const (
	Version = "0.1.0"
	appName = "fast-trip"
)

type rootOptions struct {
	configPath string
	logLevel   string
	apiURL     string
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Accessible travel planner",
		Long: `fast-trip collects trip preferences through a chat with a travel
assistant, then shows ranked flight offers, a day-by-day timeline and a map.

The web front-end is started with "serve", the terminal front-end with "chat".
"mock-api" runs a local stand-in for the travel API.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "Base URL of the travel API (overrides config)")

	cmd.AddCommand(serveCmd(opts), chatCmd(opts), mockAPICmd(opts))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func newLogger(w io.Writer, logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves defaults, file, environment and flags, in that order.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openItineraries loads the configured itinerary document, or the bundled
// one when none is configured.
func openItineraries(cfg *config.Config) (*dao.ItineraryRepository, error) {
	if cfg.Itinerary.Path == "" {
		return dao.NewItineraryRepository()
	}
	return dao.LoadItineraryRepository(cfg.Itinerary.Path)
}
