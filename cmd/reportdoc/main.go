// Package main writes the embedded project report to a DOCX file.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tsawler/reportdoc"
	"github.com/tsawler/reportdoc/internal/assets"
	"github.com/tsawler/reportdoc/internal/config"
	"github.com/tsawler/reportdoc/internal/logging"
	"github.com/tsawler/reportdoc/internal/textsource"
)

// Version is the release version, injected via ldflags.
var Version = "dev"

func main() {
	if err := run(os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(stdout, stderr io.Writer) error {
	// 1. Load and validate configuration (fail fast)
	cfg, err := config.Load(os.Getenv(config.EnvConfigFile))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 2. Initialize logging
	logger := logging.NewWithWriter(&logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}, stderr)
	slog.SetDefault(logger)

	logger.Debug("starting", slog.String("version", Version))

	// 3. Load the report text
	text, err := loadText(cfg, logger)
	if err != nil {
		return err
	}

	// 4. Build and save the document
	err = reportdoc.New(text).
		WithLogger(logger).
		Font(cfg.Style.Font).
		FontSize(cfg.Style.Size).
		Overwrite(cfg.Report.Overwrite).
		Title(cfg.Document.Title).
		Author(cfg.Document.Author).
		Subject(cfg.Document.Subject).
		Save(cfg.Report.Output)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Report written to: %s\n", cfg.Report.Output)
	return nil
}

// loadText returns the configured source text, or the embedded report.
func loadText(cfg *config.Config, logger *slog.Logger) (string, error) {
	if cfg.Report.Source == "" {
		logger.Debug("using embedded report text", slog.Int("bytes", len(assets.Report)))
		return assets.Report, nil
	}

	text, err := textsource.Load(cfg.Report.Source, cfg.Report.Encoding)
	if err != nil {
		return "", fmt.Errorf("loading report text: %w", err)
	}
	logger.Debug("loaded report text",
		slog.String("source", cfg.Report.Source),
		slog.String("encoding", cfg.Report.Encoding),
		slog.Int("bytes", len(text)))
	return text, nil
}
