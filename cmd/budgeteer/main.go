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

	"budgeteer-go/internal/app"
	"budgeteer-go/internal/config"
	"budgeteer-go/internal/db"
	"budgeteer-go/pkg/logger"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "budgeteer",
		Short:         "Personal budget tracking API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "optional config file (yaml, json or toml)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(configFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, log)
		},
	}

	var down bool
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(configFile)
			if err != nil {
				return err
			}
			if down {
				err = db.MigrateDown(cfg.DB, log)
			} else {
				err = db.Migrate(cfg.DB, log)
			}
			if err != nil {
				log.Critical("migrate: failed", "err", err, "down", down)
			}
			return err
		},
	}
	migrateCmd.Flags().BoolVar(&down, "down", false, "roll back the most recent migration")

	root.AddCommand(serveCmd, migrateCmd)
	root.RunE = serveCmd.RunE
	return root
}

func setup(configFile string) (config.Config, logger.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return config.Config{}, nil, err
	}

	log := logger.NewFromOptions(os.Stdout, logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Env:    cfg.Env,
	})
	return cfg, log, nil
}

func serve(parent context.Context, cfg config.Config, log logger.Logger) error {
	log.Info("app: starting", "env", cfg.Env)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		return err
	}

	srv := application.HTTPServer()
	log.Info("http: listening", "addr", srv.Addr)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	var errs []error
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			errs = append(errs, err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		errs = append(errs, err)
	}

	if err := application.Close(); err != nil {
		log.Error("app: close failed", "err", err)
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		log.Info("app: stopped")
	}
	return errors.Join(errs...)
}
