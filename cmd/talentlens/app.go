package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Priyagaggar/TalentLens-AI/internal/cache"
	"github.com/Priyagaggar/TalentLens-AI/internal/config"
	"github.com/Priyagaggar/TalentLens-AI/internal/dictionary"
	"github.com/Priyagaggar/TalentLens-AI/internal/ingestion"
	"github.com/Priyagaggar/TalentLens-AI/internal/logging"
	"github.com/Priyagaggar/TalentLens-AI/internal/pipeline"
	"github.com/Priyagaggar/TalentLens-AI/internal/schemas"
)

const redisPingTimeout = 2 * time.Second

var (
	appConfig config.Config
	logger    *zap.Logger
)

// loadSettings resolves configuration for every command: file, then environment, then flags
func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("dictionary") {
		cfg.Dictionary = dictionaryPath
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	cfg.Log.JSON = cfg.Log.JSON || logJSON
	cfg.Log.Debug = cfg.Log.Debug || logDebug

	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logging.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	appConfig = *cfg
	logger = l
	return nil
}

// loadDictionary returns the configured dictionary or the built-in one
func loadDictionary() (*dictionary.Dictionary, error) {
	if appConfig.Dictionary == "" {
		return dictionary.Default()
	}
	dict, err := dictionary.Load(appConfig.Dictionary)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded skill dictionary",
		zap.String("path", appConfig.Dictionary),
		zap.Int("skills", dict.Len()),
		zap.String("fingerprint", dict.Fingerprint()))
	return dict, nil
}

// newScorer builds a Scorer from the loaded configuration. When Redis is configured but
// unreachable, scoring continues uncached. The returned cleanup must always be called.
func newScorer(ctx context.Context, options ...pipeline.Option) (*pipeline.Scorer, func(), error) {
	cleanup := func() {}

	dict, err := loadDictionary()
	if err != nil {
		return nil, cleanup, err
	}

	options = append([]pipeline.Option{pipeline.WithLogger(logger.Named("pipeline"))}, options...)

	if appConfig.Redis.Addr != "" {
		r := cache.NewRedis(cache.RedisOptions{
			Addr:     appConfig.Redis.Addr,
			Password: appConfig.Redis.Password,
			DB:       appConfig.Redis.DB,
			TTL:      appConfig.Redis.TTL,
		})
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		err := r.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Warn("redis unavailable; continuing without cache",
				zap.String("addr", appConfig.Redis.Addr), zap.Error(err))
			_ = r.Close()
		} else {
			options = append(options, pipeline.WithCache(r))
			cleanup = func() { _ = r.Close() }
		}
	}

	scorer, err := pipeline.NewScorer(dict, appConfig.Options(), options...)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return scorer, cleanup, nil
}

// readText ingests a résumé or job description file of any supported format
func readText(path string) (string, *ingestion.Metadata, error) {
	if path == "" {
		return "", nil, fmt.Errorf("input path is required")
	}
	text, meta, err := ingestion.IngestFromFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return text, meta, nil
}

// writeJSON writes v as indented JSON to path, or to the command's stdout when path is empty
func writeJSON(cmd *cobra.Command, path string, v any) ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return jsonBytes, nil
	}

	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return nil, fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", path)
	return jsonBytes, nil
}

// validateOutput checks generated JSON against an embedded schema. A document that does not
// match is an error; a schema that cannot be loaded only warrants a warning.
func validateOutput(cmd *cobra.Command, schemaName string, document []byte) error {
	err := schemas.Validate(schemaName, document)
	if err == nil {
		return nil
	}

	var validationErr *schemas.ValidationError
	var schemaLoadErr *schemas.SchemaLoadError
	switch {
	case errors.As(err, &validationErr):
		return fmt.Errorf("generated JSON does not validate against schema: %w", err)
	case errors.As(err, &schemaLoadErr):
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not validate output against schema (schema loading failed): %v\n", err)
	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not validate output against schema: %v\n", err)
	}
	return nil
}
