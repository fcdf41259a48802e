package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to YAML config file")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	clientDir := flag.String("client", "", "Path to renderer directory (overrides config)")
	dbPath := flag.String("db", "", "SQLite run ledger path, \"off\" disables it (overrides config)")
	logLevel := flag.String("log-level", "", "Log level (overrides config)")
	seed := flag.Int64("seed", 0, "RNG seed for every session, 0 seeds from the clock (overrides config)")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *clientDir != "" {
		cfg.ClientDir = *clientDir
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	if !filepath.IsAbs(cfg.ClientDir) {
		if _, err := os.Stat(cfg.ClientDir); os.IsNotExist(err) {
			// Fallback next to the binary
			exe, _ := os.Executable()
			cfg.ClientDir = filepath.Join(filepath.Dir(exe), cfg.ClientDir)
		}
	}

	var db *DB
	if cfg.DBPath != "" && cfg.DBPath != "off" {
		db, err = OpenDB(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	analytics := NewAnalytics(db, log.Named("analytics"))
	defer analytics.Stop()

	sessions := NewSessionManager(cfg.MaxSessions, cfg.SessionOptions(), analytics, log)
	hub := NewHub(sessions, db, log.Named("hub"))
	mux := SetupRoutes(hub, cfg.ClientDir, cfg.TickRate)
	server := &http.Server{Addr: cfg.Addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(ctx)
	})
	g.Go(func() error {
		log.Info("server starting",
			zap.String("addr", cfg.Addr),
			zap.String("client", cfg.ClientDir),
			zap.Bool("ledger", db != nil),
		)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", cfg.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
