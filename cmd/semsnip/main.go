// Package main provides the semsnip binary entry point.
// Semsnip renders compact HTML snippets from structured-data markup
// (microdata, RDFa, JSON-LD) found in web documents.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/semsnip/config"
	"github.com/c360studio/semsnip/service"

	// Register markup readers via init()
	_ "github.com/c360studio/semsnip/reader/jsonldr"
	_ "github.com/c360studio/semsnip/reader/microdata"
	_ "github.com/c360studio/semsnip/reader/rdfa"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semsnip"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "semsnip",
		Short: "Structured-data snippet renderer",
		Long: `Semsnip extracts the structured data embedded in web documents
(microdata, RDFa, JSON-LD) and renders the primary entity as a compact,
escaped HTML snippet.

Rendering is driven by a rule registry: built-in catalogues for schema.org
and data-vocabulary.org, optionally layered with YAML rule files.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(renderCmd())
	cmd.AddCommand(lintCmd())
	cmd.AddCommand(exportCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func setupLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// readInput reads a document from a file or URL argument, with "-" (or no
// argument) meaning stdin.
func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	if strings.HasPrefix(args[0], "http://") || strings.HasPrefix(args[0], "https://") {
		fc := config.DefaultConfig().Fetch
		fetcher := service.NewFetcher(fc.Timeout, fc.UserAgent, fc.MaxBodySize)
		return fetcher.Fetch(context.Background(), args[0])
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, nil
}
