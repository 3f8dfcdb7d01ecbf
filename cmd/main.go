package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo_service/internal/config"
	"todo_service/internal/handlers"
	"todo_service/internal/logger"
	"todo_service/internal/repository"
	"todo_service/internal/repository/db"
	"todo_service/internal/server"
	"todo_service/internal/service"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var cfgFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "todo-service",
		Short:        "Multi-user todo list HTTP service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default configs/config.yml)")
	return cmd
}

func run(cfg config.Config) error {
	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	repos, closeStore, err := openRepository(cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	// wire dependencies
	services, err := service.NewService(repos, service.Config{
		BcryptCost: cfg.Auth.BcryptCost,
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
	})
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	if cfg.Auth.SigningKey == "" {
		log.Warnw("auth.signing_key not set; tokens are signed with a per-process random key")
	}
	apiHandler := handlers.NewHandler(services, log).WithStreamInterval(cfg.WS.Interval)

	// start HTTP server
	srv := server.New(cfg.Port, apiHandler.InitRoutes())
	runHTTPServer(srv, log)

	// graceful shutdown
	waitForShutdown(srv, log)
	return nil
}

// openRepository selects the store backend from store.driver.
func openRepository(cfg config.Config, log *logger.Logger) (*repository.Repository, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		conn, err := openDB(cfg.DB.Path, log)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if cerr := conn.Close(); cerr != nil {
				log.Errorw("failed to close sqlite", "err", cerr)
			}
		}
		return repository.NewRepository(conn), closeFn, nil
	default:
		log.Infow("using in-memory store", "shards", cfg.Store.Shards)
		return repository.NewMemoryRepository(cfg.Store.Shards), func() {}, nil
	}
}

// openDB initializes the SQLite database using configuration.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		log.Infow("db.path not set; using a private in-memory sqlite database")
	}
	return db.InitDB(path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
