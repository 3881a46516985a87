package discovery

import (
	"context"

	"github.com/kubev2v/migration-discovery/internal/models"
)

// Adapter lists the native records of one scan unit. It performs no normalization.
type Adapter[T any] interface {
	ListRecords(ctx context.Context, unit models.ScanUnit) ([]T, error)
}

// AdapterFunc adapts a function to the Adapter interface.
type AdapterFunc[T any] func(ctx context.Context, unit models.ScanUnit) ([]T, error)

func (f AdapterFunc[T]) ListRecords(ctx context.Context, unit models.ScanUnit) ([]T, error) {
	return f(ctx, unit)
}

// Normalizer maps one native record to a Resource.
type Normalizer[T any] func(record T) (models.Resource, error)

// Runner runs one scan unit to completion.
type Runner func(ctx context.Context, unit models.ScanUnit) models.ScanResult

// NewRunner binds an adapter to the normalizer of its provider.
func NewRunner[T any](adapter Adapter[T], normalize Normalizer[T]) Runner {
	return func(ctx context.Context, unit models.ScanUnit) models.ScanResult {
		return Execute(ctx, unit, adapter, normalize)
	}
}

// RunnerFactory builds the Runner of a provider from the request configuration.
type RunnerFactory func(ctx context.Context, provider models.Provider, cfg models.AdapterConfig) (Runner, error)

// StaticRunners returns a factory serving prebuilt runners and ignoring the configuration.
func StaticRunners(runners map[models.Provider]Runner) RunnerFactory {
	return func(_ context.Context, provider models.Provider, _ models.AdapterConfig) (Runner, error) {
		return runners[provider], nil
	}
}
