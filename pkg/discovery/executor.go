package discovery

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/pkg/errors"
)

// Execute runs one scan unit: it lists the unit's records and normalizes each one.
//
// An adapter error yields a result with no resources and a provider unit
// error, or a cancelled unit error when ctx is done. Records failing
// normalization are dropped, logged and counted in Dropped.
func Execute[T any](ctx context.Context, unit models.ScanUnit, adapter Adapter[T], normalize Normalizer[T]) models.ScanResult {
	logger := zap.S().Named("executor").With("unit", unit.String())

	result := models.ScanResult{
		Unit:      unit,
		Resources: []models.Resource{},
		StartedAt: time.Now(),
	}

	records, err := adapter.ListRecords(ctx, unit)
	if err != nil {
		result.Duration = time.Since(result.StartedAt)

		if ctx.Err() != nil {
			cErr := errors.NewCancelledError(unit.String())
			logger.Warnw("scan unit cancelled", "error", err)
			result.Err = &models.UnitError{Unit: unit, Kind: models.UnitErrorCancelled, Message: cErr.Error()}
			return result
		}

		pErr := errors.NewProviderError(unit.String(), err)
		logger.Errorw("scan unit failed", "error", pErr)
		result.Err = &models.UnitError{Unit: unit, Kind: models.UnitErrorProvider, Message: err.Error()}
		return result
	}

	for i, record := range records {
		r, err := normalize(record)
		if err != nil {
			result.Dropped++
			logger.Warnw("dropping record", "index", i, "error", err)
			continue
		}
		result.Resources = append(result.Resources, r)
	}

	result.Duration = time.Since(result.StartedAt)
	logger.Debugw("scan unit finished", "resources", len(result.Resources), "dropped", result.Dropped, "duration", result.Duration)

	return result
}
