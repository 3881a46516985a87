package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/migration-discovery/internal/config"
	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/pkg/adapters"
	"github.com/kubev2v/migration-discovery/pkg/discovery"
	"github.com/kubev2v/migration-discovery/pkg/export"
	"github.com/kubev2v/migration-discovery/pkg/publisher"
)

type scanOptions struct {
	output string
	xlsx   string
}

func NewScanCommand(cfg *config.Configuration) *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a one-shot discovery and write the catalog",
		Example: `  discovery scan --region us-east-1 --region eu-west-1
  discovery scan --subscription-id 00000000-0000-0000-0000-000000000000 --output catalog.json
  discovery scan --endpoint vcenter.example.com --vsphere-username admin --xlsx catalog.xlsx`,
		Args:    cobra.NoArgs,
		PreRunE: preRunE(cfg, validateScanConfiguration),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runScan(ctx, cfg, opts, discovery.NewOrchestrator(adapters.NewRunner), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.output, "output", "o", "", "Write the catalog JSON to this file instead of stdout")
	fs.StringVar(&opts.xlsx, "xlsx", "", "Also write the catalog as an XLSX workbook to this file")
	registerProviderFlags(fs, cfg)
	registerPublisherFlags(fs, cfg)
	registerLoggingFlags(fs, cfg)

	return cmd
}

// runScan runs the discovery, writes the catalog and publishes it when a
// publisher is configured. Unit failures are reported in the catalog and do
// not fail the scan.
func runScan(ctx context.Context, cfg *config.Configuration, opts *scanOptions, orchestrator *discovery.Orchestrator, stdout, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := zap.S().Named("scan")

	catalog, err := orchestrator.WithObserver(newProgressPrinter(stderr)).Run(ctx, cfg.DiscoveryRequest())
	if err != nil {
		return err
	}

	if opts.output == "" {
		if err := export.WriteJSON(stdout, catalog); err != nil {
			return err
		}
	} else if err := writeFile(opts.output, catalog, export.WriteJSON); err != nil {
		return err
	}

	if opts.xlsx != "" {
		if err := writeFile(opts.xlsx, catalog, export.WriteXLSX); err != nil {
			return err
		}
	}

	if cfg.Publisher.URL != "" {
		client, err := publisher.NewClient(cfg.Publisher.URL, cfg.Publisher.Token)
		if err != nil {
			return err
		}
		if err := client.Publish(ctx, catalog); err != nil {
			logger.Warnw("failed to publish catalog", "catalog", catalog.ID, "error", err)
		}
	}

	return nil
}

func writeFile(path string, catalog *models.Catalog, write func(io.Writer, *models.Catalog) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(f, catalog); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
