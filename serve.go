package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"fast-trip/config"
	"fast-trip/controller"
	"fast-trip/dao"
	"fast-trip/pkg/maps"
	"fast-trip/pkg/tripapi"
	"fast-trip/usecase"
	"fast-trip/view"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web front-end",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			logger := newLogger(os.Stderr, opts.logLevel)
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// 1. Dependency Injection
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	api := tripapi.NewClient(cfg.API.BaseURL,
		tripapi.WithLogger(logger),
		tripapi.WithRegisterer(reg))

	itineraries, err := openItineraries(cfg)
	if err != nil {
		return fmt.Errorf("load itinerary: %w", err)
	}
	renderer, err := view.NewRenderer()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	chats := dao.NewViewRepository[*usecase.ConversationUsecase]("chat", cfg.Views.IdleTTL, logger)
	trips := dao.NewViewRepository[*usecase.ItineraryUsecase]("itinerary", cfg.Views.IdleTTL, logger)
	registerViewGauge(reg, "chat", chats.Len)
	registerViewGauge(reg, "itinerary", trips.Len)

	chatController := controller.NewChatController(chats, func() *usecase.ConversationUsecase {
		return usecase.NewConversationUsecase(api, cfg.Chat.Greeting, logger)
	}, renderer, logger)

	itineraryController := controller.NewItineraryController(trips, func() *usecase.ItineraryUsecase {
		return usecase.NewItineraryUsecase(api, cfg.FlightSearch, logger)
	}, itineraries, maps.New(cfg.Maps.APIKey, maps.LatLng(cfg.Maps.Center), cfg.Maps.Zoom), renderer, logger)

	// 2. Routing
	handler := controller.Routes{
		Chat:      chatController,
		Itinerary: itineraryController,
		Airports:  controller.NewAirportController(api, renderer, logger),
		Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	}.Handler(logger, controller.NewHTTPMetrics(reg))

	// 3. Start Server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go chats.Run(sweepCtx, sweepInterval)
	go trips.Run(sweepCtx, sweepInterval)

	if cfg.Itinerary.Watch {
		watcher, err := dao.NewItineraryWatcher(itineraries, cfg.Itinerary.Path, 0, logger)
		if err != nil {
			return fmt.Errorf("watch itinerary: %w", err)
		}
		go watcher.Run(sweepCtx)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("fast-trip listening",
			"addr", cfg.Server.Addr,
			"api", api.BaseURL(),
			"maps", cfg.Maps.APIKey != "")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// 4. Shutdown
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Graceful shutdown failed", "error", err)
	}
	chats.CloseAll()
	trips.CloseAll()
	itineraryController.Wait()
	return nil
}

func registerViewGauge(reg prometheus.Registerer, kind string, count func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   "fasttrip",
		Name:        "open_views",
		Help:        "Page views currently held in memory.",
		ConstLabels: prometheus.Labels{"kind": kind},
	}, func() float64 {
		return float64(count())
	}))
}
