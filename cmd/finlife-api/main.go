package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finlife/internal/api"
	"finlife/internal/config"
	"finlife/internal/game"
	"finlife/internal/ledger"
	"finlife/internal/scenario"
	"finlife/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.LoadAPIFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var sessions game.SessionStore
	switch cfg.SessionStore {
	case config.StorePostgres:
		pool, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		pg := store.NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Error("schema init failed", "err", err)
			os.Exit(1)
		}
		sessions = pg
	default:
		sessions = store.NewMemory()
	}

	var expenses game.ExpensePolicy = game.ProgressiveExpenses{}
	if cfg.ExpensePolicy == config.ExpenseFlat {
		expenses = game.FlatExpenses{Amount: cfg.FlatExpense}
	}

	bank := ledger.NewClient(cfg.LedgerBaseURL, cfg.LedgerAPIKey)
	scenarios := scenario.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	gameSvc := game.NewService(sessions, bank, scenarios, expenses, logger)

	server := api.New(logger, gameSvc)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("finlife api listening", "addr", cfg.Addr, "store", cfg.SessionStore, "expense_policy", cfg.ExpensePolicy)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
