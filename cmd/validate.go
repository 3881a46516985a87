package cmd

import (
	"errors"

	"github.com/kubev2v/migration-discovery/internal/config"
	"github.com/kubev2v/migration-discovery/pkg/discovery"
)

func validateConfiguration(cfg *config.Configuration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Publisher.Token != "" && cfg.Publisher.URL == "" {
		return errors.New("publisher-token requires publisher-url")
	}

	return nil
}

// validateScanConfiguration also requires at least one unit and, for vCenter
// endpoints, a username: a one-shot scan has no stored credentials to fall back on.
func validateScanConfiguration(cfg *config.Configuration) error {
	if err := validateConfiguration(cfg); err != nil {
		return err
	}

	if _, err := discovery.EnumerateUnits(cfg.Targets()); err != nil {
		return errors.New("at least one --region, --subscription-id or --endpoint must be set")
	}

	if len(cfg.Discovery.Endpoints) > 0 && cfg.VSphere.Username == "" {
		return errors.New("vsphere-username must be set to scan vCenter endpoints")
	}

	return nil
}
