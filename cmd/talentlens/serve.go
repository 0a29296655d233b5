package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Priyagaggar/TalentLens-AI/internal/db"
	"github.com/Priyagaggar/TalentLens-AI/internal/metrics"
	"github.com/Priyagaggar/TalentLens-AI/internal/pipeline"
	"github.com/Priyagaggar/TalentLens-AI/internal/server"
	"github.com/Priyagaggar/TalentLens-AI/internal/server/middleware"
	"github.com/Priyagaggar/TalentLens-AI/internal/server/ratelimit"
)

var (
	servePort        int
	serveDatabaseURL string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that scores uploaded résumés against a job description.

Batches are persisted and the /batches endpoints enabled when a database URL is
configured. Prometheus metrics are served on /metrics.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to config, then DATABASE_URL env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := serverConfig()
	if err != nil {
		return err
	}

	m := metrics.New()
	scorer, cleanup, err := newScorer(ctx, pipeline.WithMetrics(m))
	if err != nil {
		return err
	}
	defer cleanup()

	options := []server.Option{server.WithMetrics(m), server.WithLogger(logger.Named("server"))}

	if databaseURL := resolveDatabaseURL(serveDatabaseURL); databaseURL != "" {
		database, err := openStore(ctx, databaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		options = append(options, server.WithStore(database))
	} else {
		logger.Info("no database configured; batches will not be persisted")
	}

	srv, err := server.New(cfg, scorer, options...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}

// serverConfig maps the loaded configuration and flags onto server.Config
func serverConfig() (server.Config, error) {
	sc := appConfig.Server
	port := sc.Port
	if servePort != 0 {
		port = servePort
	}
	if port < 1 || port > 65535 {
		return server.Config{}, fmt.Errorf("invalid port %d", port)
	}

	rl := ratelimit.DefaultConfig()
	rl.Enabled = sc.RateLimit.Enabled
	if sc.RateLimit.DefaultLimit > 0 {
		rl.DefaultLimit = sc.RateLimit.DefaultLimit
	}
	rl.Whitelist = ratelimit.ParseIPList(sc.RateLimit.Whitelist)
	rl.Blacklist = ratelimit.ParseIPList(sc.RateLimit.Blacklist)

	if len(sc.APIKeys) == 0 {
		logger.Warn("no API keys configured; the API is open to every client")
	}

	return server.Config{
		Addr:            fmt.Sprintf(":%d", port),
		MaxFileBytes:    sc.MaxFileBytes,
		ShutdownTimeout: sc.ShutdownTimeout,
		RateLimit:       rl,
		APIKeys:         middleware.APIKeys(sc.APIKeys),
	}, nil
}

// openStore connects to PostgreSQL and creates the batch tables on first use
func openStore(ctx context.Context, databaseURL string) (*db.DB, error) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	logger.Info("batch persistence enabled")
	return database, nil
}
