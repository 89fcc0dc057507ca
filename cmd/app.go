package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgonek/content-indexer/internal/config"
	"github.com/rgonek/content-indexer/internal/content"
	"github.com/rgonek/content-indexer/internal/fs"
	"github.com/rgonek/content-indexer/internal/logging"
)

// app bundles what a command needs once flags and config are resolved.
type app struct {
	cfg    *config.Config
	lib    *content.Library
	logger logging.Logger
	out    io.Writer
	format outputFormat
}

func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(flagEnvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if flagVerbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Development: flagVerbose})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	out := cmd.OutOrStdout()
	format, err := resolveOutputFormat(flagOutput, out)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg: cfg,
		lib: &content.Library{
			Collections: cfg.Collections,
			IndexName:   cfg.IndexName,
			Parser:      fs.NewParser(cfg.Format),
			Logger:      logger,
		},
		logger: logger,
		out:    out,
		format: format,
	}, nil
}

// close flushes the logger; stderr sync errors are expected on some platforms.
func (a *app) close() {
	_ = a.logger.Sync()
}

// collectionArg parses a KEY target.
func collectionArg(raw string) (string, error) {
	target, err := config.ParseTarget(raw)
	if err != nil {
		return "", err
	}
	if !target.IsCollection() {
		return "", fmt.Errorf("target %q: want a collection KEY, not KEY/SLUG", raw)
	}
	return target.Collection, nil
}

// itemArg parses a KEY/SLUG target.
func itemArg(raw string) (config.Target, error) {
	target, err := config.ParseTarget(raw)
	if err != nil {
		return config.Target{}, err
	}
	if !target.IsItem() {
		return config.Target{}, fmt.Errorf("target %q: want KEY/SLUG", raw)
	}
	return target, nil
}

// splitFields parses a --fields value.
func splitFields(raw string) []string {
	var fields []string
	for _, field := range strings.Split(raw, ",") {
		if field = strings.TrimSpace(field); field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}
