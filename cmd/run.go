package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/migration-discovery/internal/config"
	"github.com/kubev2v/migration-discovery/internal/handlers"
	"github.com/kubev2v/migration-discovery/internal/server"
	"github.com/kubev2v/migration-discovery/internal/services"
	"github.com/kubev2v/migration-discovery/internal/store"
	"github.com/kubev2v/migration-discovery/internal/store/migrations"
	"github.com/kubev2v/migration-discovery/pkg/adapters"
	"github.com/kubev2v/migration-discovery/pkg/credentials"
	"github.com/kubev2v/migration-discovery/pkg/discovery"
	"github.com/kubev2v/migration-discovery/pkg/publisher"
)

const (
	databaseFile    = "discovery.duckdb"
	shutdownTimeout = 30 * time.Second
)

func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run the discovery agent",
		Long:    "Serve the discovery API, run discoveries on request and keep the history of their catalogs.",
		Args:    cobra.NoArgs,
		PreRunE: preRunE(cfg, validateConfiguration),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runAgent(ctx, cfg)
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&cfg.Server.HTTPPort, "server-http-port", cfg.Server.HTTPPort, "Port the API listens on")
	fs.StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "Server mode: dev (HTTP) or prod (HTTPS with a self-signed certificate)")
	fs.StringVar(&cfg.Agent.DataFolder, "data-folder", cfg.Agent.DataFolder, "Folder of the catalog database and stored credentials. Empty keeps everything in memory")
	fs.IntVar(&cfg.Agent.Retention, "retention", cfg.Agent.Retention, "Number of catalogs kept, 0 keeps every catalog")
	fs.IntVar(&cfg.Agent.DatabaseThreads, "db-threads", cfg.Agent.DatabaseThreads, "DuckDB worker threads, 0 keeps the DuckDB default")
	fs.StringVar(&cfg.Agent.DatabaseMemoryLimit, "db-memory-limit", cfg.Agent.DatabaseMemoryLimit, "DuckDB memory limit such as 512MB")
	registerProviderFlags(fs, cfg)
	registerPublisherFlags(fs, cfg)
	registerLoggingFlags(fs, cfg)

	return cmd
}

func runAgent(ctx context.Context, cfg *config.Configuration) error {
	logger := zap.S().Named("agent")

	if cfg.Agent.DataFolder != "" {
		if err := os.MkdirAll(cfg.Agent.DataFolder, 0o700); err != nil {
			return fmt.Errorf("failed to create data folder: %w", err)
		}
	}

	db, err := store.NewDB(
		databasePath(cfg.Agent.DataFolder),
		store.WithThreads(cfg.Agent.DatabaseThreads),
		store.WithMemoryLimit(cfg.Agent.DatabaseMemoryLimit),
	)
	if err != nil {
		return fmt.Errorf("failed to open catalog database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := migrations.Run(ctx, db); err != nil {
		return fmt.Errorf("failed to migrate catalog database: %w", err)
	}
	s := store.NewStore(db)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	orchestrator := discovery.NewOrchestrator(adapters.NewRunner).WithObserver(discovery.NewMetrics(reg))

	var creds credentials.Store
	if cfg.Agent.DataFolder != "" {
		creds = credentials.NewDiskStore(cfg.Agent.DataFolder)
	}

	discoverySrv := services.NewDiscoveryService(orchestrator, s).
		WithCredentials(creds, cfg.AdapterConfig()).
		WithRetention(cfg.Agent.Retention)

	if cfg.Publisher.URL != "" {
		client, err := publisher.NewClient(cfg.Publisher.URL, cfg.Publisher.Token)
		if err != nil {
			return err
		}
		discoverySrv = discoverySrv.WithPublisher(client)
	}

	h := handlers.New(discoverySrv, services.NewCatalogService(s))

	srv, err := server.NewServer(cfg, h.Register, server.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var g run.Group
	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(func() error {
			<-ctx.Done()
			return nil
		}, func(error) {
			cancel()
		})
	}
	{
		g.Add(func() error {
			logger.Infow("server listening", "port", cfg.Server.HTTPPort, "mode", cfg.Server.ServerMode)
			return srv.Start(ctx)
		}, func(error) {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			srv.Stop(shutdownCtx)
		})
	}

	err = g.Run()

	logger.Info("shutting down")
	discoverySrv.Stop()

	return err
}

func databasePath(dataFolder string) string {
	if dataFolder == "" {
		return ":memory:"
	}
	return filepath.Join(dataFolder, databaseFile)
}
