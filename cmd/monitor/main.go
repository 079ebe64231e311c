package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mohamedkhairy/token-monitor/internal/api"
	"github.com/mohamedkhairy/token-monitor/internal/config"
	"github.com/mohamedkhairy/token-monitor/internal/data"
	"github.com/mohamedkhairy/token-monitor/internal/engine"
	"github.com/mohamedkhairy/token-monitor/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting token monitor",
		logger.Int("port", cfg.API.Port),
		logger.String("provider", cfg.Feed.Provider),
		logger.Int("rsi_period", cfg.Engine.RSIPeriod),
	)

	// Initialize the metrics engine
	eng, err := engine.New(engine.Config{
		RSIPeriod:           cfg.Engine.RSIPeriod,
		RSIOversold:         cfg.Engine.RSIOversold,
		RSIOverbought:       cfg.Engine.RSIOverbought,
		VolumeHorizon:       cfg.Engine.VolumeHorizon,
		DefaultTokenSupply:  cfg.Engine.DefaultTokenSupply,
		DefaultExchangeRate: cfg.Engine.DefaultExchangeRate,
	})
	if err != nil {
		logger.Fatal("Failed to initialize engine",
			logger.ErrorField(err),
		)
	}
	store := engine.NewSerialized(eng)

	if cfg.Engine.DefaultExchangeRate > 0 {
		if err := store.SetExchangeRate(cfg.Engine.DefaultExchangeRate); err != nil {
			logger.Fatal("Invalid default exchange rate",
				logger.ErrorField(err),
			)
		}
	}

	// Initialize the market data provider
	provider, err := data.NewProvider(cfg.Feed.Provider, data.ProviderConfig{
		WebSocketURL:      cfg.Feed.WebSocketURL,
		ReconnectDelay:    int(cfg.Feed.ReconnectDelay.Seconds()),
		MaxReconnectDelay: int(cfg.Feed.MaxReconnectDelay.Seconds()),
		MockIntervalMs:    int(cfg.Feed.MockInterval.Milliseconds()),
		BufferSize:        cfg.Feed.BufferSize,
	})
	if err != nil {
		logger.Fatal("Failed to initialize data provider",
			logger.ErrorField(err),
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := provider.Start(ctx); err != nil {
		logger.Fatal("Failed to start data provider",
			logger.ErrorField(err),
		)
	}
	defer provider.Close()

	// Single dispatch goroutine: the engine is single-writer, so every
	// event from every source funnels through this loop.
	dispatchDone := make(chan struct{})
	go func() {
		defer close(dispatchDone)
		for ev := range provider.Events() {
			store.Dispatch(ev)
		}
	}()

	// Start HTTP server
	handler := api.NewHandler(store)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.API.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	go func() {
		logger.Info("Starting HTTP server",
			logger.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start HTTP server",
				logger.ErrorField(err),
			)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	logger.Info("Shutting down token monitor")

	cancel()
	if err := provider.Close(); err != nil && err != data.ErrProviderNotConnected {
		logger.Error("Error closing data provider",
			logger.ErrorField(err),
		)
	}

	select {
	case <-dispatchDone:
	case <-time.After(5 * time.Second):
		logger.Warn("Dispatch loop did not drain in time")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down HTTP server",
			logger.ErrorField(err),
		)
	}

	logger.Info("Token monitor stopped")
}
