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

	"github.com/spf13/cobra"

	"github.com/c360studio/semsnip/config"
	"github.com/c360studio/semsnip/service"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		host       string
		port       int
		rulesDir   string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the snippet rendering service",
		Long: `Serve starts the HTTP API (and, when configured, a NATS worker)
for snippet rendering. Configuration layers defaults, the user config, the
project config and command-line flags, in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(configPath)
			if err != nil {
				return err
			}
			// Flags override file config
			if host != "" {
				cfg.Server.Host = host
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			if rulesDir != "" {
				cfg.Rules.Dir = rulesDir
			}
			if watch {
				cfg.Rules.Watch = true
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return serve(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&host, "host", "", "Listen address (overrides config)")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides config)")
	cmd.Flags().StringVar(&rulesDir, "rules", "", "Directory of YAML rule files (overrides config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload rules when the rule directory changes")

	return cmd
}

func loadServeConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.NewLoader(slog.Default()).Load()
}

func serve(cfg *config.Config) error {
	logger := slog.Default()

	engine, err := service.NewEngine(cfg.Rules.Dir, logger)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	server := service.NewServer(cfg, engine, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Rules.Watch && cfg.Rules.Dir != "" {
		watcher, err := service.NewRuleWatcher(cfg.Rules.Dir, server.ReloadRules, logger)
		if err != nil {
			return fmt.Errorf("build rule watcher: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("start rule watcher: %w", err)
		}
		defer watcher.Stop()
	}

	if cfg.NATS.URL != "" {
		worker, err := service.NewWorker(cfg.NATS.URL, cfg.NATS.Subject, engine, logger)
		if err != nil {
			return fmt.Errorf("connect nats: %w", err)
		}
		if err := worker.Start(); err != nil {
			return fmt.Errorf("start nats worker: %w", err)
		}
		defer worker.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	slog.Info("Semsnip ready", "version", Version)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
