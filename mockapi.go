package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fast-trip/controller"
	"fast-trip/mockapi"
)

func mockAPICmd(opts *rootOptions) *cobra.Command {
	var (
		addr   string
		prefix string
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Run a local stand-in for the travel API",
		Long: `mock-api serves the conversational and flight-search endpoints with
canned behavior: the chat fills one trip field per message and the flight
search returns random offers priced by budget.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(os.Stderr, opts.logLevel)
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}

			mux := http.NewServeMux()
			mux.Handle(prefix+"/", http.StripPrefix(prefix, mockapi.NewServer(mockapi.NewFlightGenerator(seed), logger).Handler()))
			server := &http.Server{
				Addr:         addr,
				Handler:      controller.WithLogging(logger, nil, controller.WithCORS(mux)),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Shutdown(shutdownCtx)
			}()

			logger.Info("Mock travel API listening", "addr", addr, "base", "http://localhost"+addr+prefix)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("mock api: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8000", "Listen address")
	cmd.Flags().StringVar(&prefix, "prefix", "/api", "Path prefix the API is served under")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed for flight offers (0 picks one)")
	return cmd
}
