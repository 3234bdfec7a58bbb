// Package main starts the loan calculator HTTP server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"equity_release/pkg/api/calculator"
	"equity_release/pkg/core/assumption"
	"equity_release/pkg/core/cache"
	"equity_release/pkg/core/config"
	"equity_release/pkg/core/eligibility"
	"equity_release/pkg/core/postcode"
	"equity_release/pkg/core/store"
)

func main() {
	godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var quotes calculator.QuoteStore
	if cfg.DatabaseURL != "" {
		if err := store.InitDB(ctx, cfg.DatabaseURL); err != nil {
			sugar.Fatalw("database initialization error", "error", err.Error())
		}
		defer store.Close()
		quotes = store.NewQuoteRepo()
	}

	table, err := loadPostcodeTable(cfg)
	if err != nil {
		sugar.Fatalw("postcode table error", "error", err.Error())
	}

	economic := assumption.DefaultEconomic()
	if cfg.AssumptionsFile != "" {
		economic, err = assumption.LoadEconomic(cfg.AssumptionsFile)
		if err != nil {
			sugar.Fatalw("assumptions load error", "error", err.Error())
		}
	}

	var resultCache cache.Cache = cache.NewMemoryCache()
	if cfg.RedisAddress != "" {
		resultCache = cache.NewRedisCache(cfg.RedisAddress)
		sugar.Infow("using redis result cache", "addr", cfg.RedisAddress)
	}

	validator := eligibility.NewValidator(assumption.DefaultPolicy(), table)
	h := calculator.NewHandler(validator, economic, resultCache, quotes, logger)

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: h.SetupRouter(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infow("starting calculator server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}

// loadPostcodeTable prefers the file-based service-area table and falls
// back to the database when no file is configured.
func loadPostcodeTable(cfg *config.Config) (postcode.Table, error) {
	if cfg.PostcodeFile != "" {
		return postcode.LoadFile(cfg.PostcodeFile)
	}
	if pool := store.GetPool(); pool != nil {
		return postcode.NewPostgresTable(pool), nil
	}
	return nil, fmt.Errorf("no postcode source configured")
}
