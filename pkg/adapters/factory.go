// Package adapters builds the discovery runner of each provider.
package adapters

import (
	"context"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/pkg/adapters/aws"
	"github.com/kubev2v/migration-discovery/pkg/adapters/azure"
	"github.com/kubev2v/migration-discovery/pkg/discovery"
	"github.com/kubev2v/migration-discovery/pkg/errors"
	"github.com/kubev2v/migration-discovery/pkg/normalizer"
	"github.com/kubev2v/migration-discovery/pkg/vmware"
)

// NewRunner binds the adapter of provider to its normalizer.
// It implements discovery.RunnerFactory.
func NewRunner(_ context.Context, provider models.Provider, cfg models.AdapterConfig) (discovery.Runner, error) {
	switch provider {
	case models.ProviderAWS:
		return discovery.NewRunner(aws.NewAdapter(cfg.AWS), normalizer.NormalizeAWS), nil
	case models.ProviderAzure:
		adapter, err := azure.NewAdapter(cfg.Azure)
		if err != nil {
			return nil, err
		}
		return discovery.NewRunner(adapter, normalizer.NormalizeAzure), nil
	case models.ProviderVMware:
		if cfg.VSphere.Username == "" {
			return nil, errors.NewInvalidConfigurationError("vsphere username is required")
		}
		return discovery.NewRunner(vmware.NewInventoryAdapter(cfg.VSphere), normalizer.NormalizeVSphere), nil
	default:
		return nil, errors.NewInvalidConfigurationError("unknown provider %q", provider)
	}
}

var _ discovery.RunnerFactory = NewRunner
