// Package main - Entry point for the quotecalc HTTP server
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"quotecalc/api"
	"quotecalc/core/output"
	"quotecalc/core/quote"
	"quotecalc/internal/config"
	"quotecalc/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgPath := flag.String("config", "quotecalc.json", "config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	// .env values never replace variables already set in the environment
	envLoaded := godotenv.Load() == nil

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logging.Fatal("failed to load configuration", zap.Error(err))
	}
	cfg.ApplyEnv()
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Fatal("failed to initialize logging", zap.Error(err))
	}
	defer logging.Sync()
	config.Set(cfg)

	logging.Info("configuration loaded",
		zap.Bool("dotenv", envLoaded),
		zap.String("addr", cfg.Server.Addr),
		zap.String("tables_dir", cfg.Tables.Dir),
		zap.String("workbook", cfg.Tables.Workbook),
	)

	store, err := cfg.LoadStore()
	if err != nil {
		logging.Fatal("failed to load reference tables", zap.Error(err))
	}
	engine := quote.NewEngine(store, quote.Options{ApplyContingency: cfg.Quote.ApplyContingency})

	server := api.NewServer(engine, api.Options{
		Version:         version,
		IDPrefix:        cfg.Quote.IDPrefix,
		DefaultCurrency: cfg.Quote.DefaultCurrency,
		Render:          output.RenderOptions{ShowLineage: cfg.Output.ShowLineage},
		RequestTimeout:  cfg.Server.WriteTimeout(),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.Server.Addr, cfg.Server.ReadTimeout(), cfg.Server.WriteTimeout())
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server failed", zap.Error(err))
		}
	case sig := <-stop:
		logging.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logging.Error("shutdown failed", zap.Error(err))
		}
	}
}
