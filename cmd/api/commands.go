package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"inventra/internal/assistant"
	"inventra/internal/auth"
	"inventra/internal/config"
	"inventra/internal/httpserver"
	"inventra/internal/llm"
	"inventra/internal/logger"
	"inventra/internal/memory"
	"inventra/internal/models"
	"inventra/internal/services/account"
	"inventra/internal/services/audit"
	"inventra/internal/services/product"
)

var rootCmd = &cobra.Command{
	Use:          "inventra",
	Short:        "Multi-tenant product inventory API",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		lg := logger.New(cfg.LogLevel)
		defer lg.Sync()
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		if err := db.AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("automigrate: %w", err)
		}
		lg.Infow("schema migrated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	return db, nil
}

// newGenerator builds the AI client at startup. Outside production a
// missing key degrades to llm.Disabled so the rest of the API still runs.
func newGenerator(ctx context.Context, cfg *config.Config, lg *zap.SugaredLogger) (llm.Generator, error) {
	g, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err == nil {
		return g, nil
	}
	if cfg.IsProduction() {
		return nil, fmt.Errorf("ai client: %w", err)
	}
	lg.Warnw("ai client unavailable, chatbot disabled", "error", err)
	return llm.Disabled{}, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	lg := logger.New(cfg.LogLevel)
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		lg.Errorw("automigrate failed", "error", err)
		if cfg.IsProduction() {
			return err
		}
	}

	gen, err := newGenerator(ctx, cfg, lg)
	if err != nil {
		return err
	}

	rec := audit.NewRecorder(db, lg)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.SessionTTL)
	products := product.NewService(db, rec, lg)
	router := httpserver.NewRouter(httpserver.Deps{
		Accounts:   account.NewService(db, tokens, rec, lg),
		Products:   products,
		Assistant:  assistant.NewResponder(products, memory.NewStore(memory.DefaultWindow), gen, lg),
		Audit:      rec,
		Cookies:    auth.Cookies{Secure: cfg.IsProduction(), TTL: tokens.TTL()},
		CORSOrigin: cfg.CORSOrigin,
	}, lg)

	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		lg.Infow("listening", "port", cfg.HTTPPort, "env", cfg.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	lg.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
