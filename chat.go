package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"fast-trip/pkg/tripapi"
	"fast-trip/tui"
	"fast-trip/usecase"
)

func chatCmd(opts *rootOptions) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Plan a trip in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			// the alternate screen owns the terminal; logs go to a file or nowhere
			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				w = f
			}
			logger := newLogger(w, opts.logLevel)

			itineraries, err := openItineraries(cfg)
			if err != nil {
				return fmt.Errorf("load itinerary: %w", err)
			}

			api := tripapi.NewClient(cfg.API.BaseURL, tripapi.WithLogger(logger))
			conv := usecase.NewConversationUsecase(api, cfg.Chat.Greeting, logger)
			m := tui.NewModel(conv, func() *usecase.ItineraryUsecase {
				return usecase.NewItineraryUsecase(api, cfg.FlightSearch, logger)
			}, itineraries.GetAll())

			result, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if final, ok := result.(tui.Model); ok {
				final.Close()
			} else {
				m.Close()
			}
			return err
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	return cmd
}
