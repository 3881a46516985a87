package discovery

import (
	"strings"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/pkg/errors"
)

// EnumerateUnits expands the targets into scan units.
//
// AWS yields one unit per region, Azure one per subscription and VMware one
// per vCenter endpoint. Blank and repeated names are skipped; the order of
// first appearance is kept. It fails when a provider is unknown or when no
// unit is left at all.
func EnumerateUnits(targets []models.Target) ([]models.ScanUnit, error) {
	var units []models.ScanUnit
	seen := make(map[models.ScanUnit]bool)

	for _, t := range targets {
		var names []string
		switch t.Provider {
		case models.ProviderAWS:
			names = t.Spec.Regions
		case models.ProviderAzure:
			names = t.Spec.SubscriptionIDs
		case models.ProviderVMware:
			names = t.Spec.Endpoints
		default:
			return nil, errors.NewInvalidConfigurationError("unknown provider %q", t.Provider)
		}

		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			unit := models.NewScanUnit(t.Provider, name)
			if seen[unit] {
				continue
			}
			seen[unit] = true
			units = append(units, unit)
		}
	}

	if len(units) == 0 {
		return nil, errors.NewInvalidConfigurationError("no scan units to run")
	}

	return units, nil
}
