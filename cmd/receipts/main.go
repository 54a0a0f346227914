package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"receipts/internal/amqp"
	"receipts/internal/backend"
	"receipts/internal/cache"
	"receipts/internal/cli"
	apphttp "receipts/internal/http"
	applog "receipts/internal/log"
	"receipts/internal/report"
	"receipts/internal/services"
	"receipts/internal/store/memory"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cli.LoadEnvFile()

	boot := cli.SetupLogger(os.Stdout, os.Getenv("LOG_LEVEL"), applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(boot)
	logger := cli.SetupLogger(os.Stdout, cfg.LogLevel, applog.ComponentApp)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid preferences backend", applog.FieldError, err)
		os.Exit(1)
	}
	prefsBackend, err := backend.NewFactory(logger).CreatePrefs(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize preferences backend", applog.FieldError, err, "backend", backendCfg.Type)
		os.Exit(1)
	}
	defer func() {
		if err := prefsBackend.Cleanup(); err != nil {
			logger.Error("Failed to close preferences backend", applog.FieldError, err)
		}
	}()

	formatter, err := report.NewFormatter(cfg.NumberLocale, cfg.CurrencySymbol, cfg.DateLayout)
	if err != nil {
		logger.Error("Invalid report format", applog.FieldError, err)
		os.Exit(1)
	}

	reports := cache.NewLRUCache[report.Report](cfg.ReportCacheSize, cfg.ReportCacheTTL)
	janitor := cache.NewJanitor(logger.WithComponent(applog.ComponentCache).Logger)
	janitor.Register("reports", reports)

	opts := []services.Option{
		services.WithReportCache(reports),
		services.WithLogger(logger),
	}
	if cfg.SharingEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, sharing disabled", applog.FieldError, err)
		} else {
			defer client.Close()
			opts = append(opts, services.WithPublisher(client))
			logger.Info("Receipt sharing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}
	entries := services.NewEntryService(memory.New(), report.NewBuilder(formatter), opts...)

	srv := apphttp.NewServer(":"+cfg.Port, entries, prefsBackend.Prefs, apphttp.Options{
		Defaults: apphttp.FormDefaults{
			Type:     cfg.DefaultType,
			Amount:   cfg.DefaultAmount,
			Quantity: 1,
		},
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		SharingEnabled:     entries.SharingEnabled(),
		Logger:             logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting receipts server", "port", cfg.Port, "prefs_backend", cfg.PrefsBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return janitor.Run(gctx, cfg.ReportCacheTTL)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
