package discovery

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/pkg/errors"
	"github.com/kubev2v/migration-discovery/pkg/scheduler"
)

// Orchestrator enumerates scan units, runs them on a scheduler and assembles the catalog.
type Orchestrator struct {
	factory  RunnerFactory
	observer Observer
	logger   *zap.SugaredLogger
}

func NewOrchestrator(factory RunnerFactory) *Orchestrator {
	return &Orchestrator{
		factory:  factory,
		observer: Observers{},
		logger:   zap.S().Named("orchestrator"),
	}
}

func (o *Orchestrator) WithObserver(observer Observer) *Orchestrator {
	o.observer = observer
	return o
}

// RunDiscovery scans the units of a single provider.
func (o *Orchestrator) RunDiscovery(ctx context.Context, provider models.Provider, spec models.EnumerationSpec, cfg models.AdapterConfig) (*models.Catalog, error) {
	return o.Run(ctx, models.DiscoveryRequest{
		Targets: []models.Target{{Provider: provider, Spec: spec}},
		Config:  cfg,
	})
}

type unitOutcome struct {
	index  int
	result scheduler.Result[models.ScanResult]
}

// Run executes the request and returns its catalog.
//
// The only error returned is an InvalidConfigurationError, before any unit
// starts. Provider failures and cancellation end up in the catalog's unit errors.
func (o *Orchestrator) Run(ctx context.Context, req models.DiscoveryRequest) (*models.Catalog, error) {
	units, err := EnumerateUnits(req.Targets)
	if err != nil {
		return nil, err
	}

	runners, err := o.runners(ctx, req)
	if err != nil {
		return nil, err
	}

	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if req.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, req.Timeout)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	catalog := &models.Catalog{
		ID:            uuid.NewString(),
		Source:        models.SourceLabel(req.Providers()),
		ScanStartTime: time.Now(),
		Resources:     []models.Resource{},
	}

	workers := len(units)
	if req.MaxConcurrency > 0 && req.MaxConcurrency < workers {
		workers = req.MaxConcurrency
	}

	logger := o.logger.With("catalog", catalog.ID, "source", catalog.Source)
	logger.Infow("discovery started", "units", len(units), "workers", workers)

	sched := scheduler.NewScheduler[models.ScanResult](runCtx, workers)
	outcomes := make(chan unitOutcome, len(units))
	futures := make([]*scheduler.Future[models.ScanResult], len(units))
	// unix nanos of the unit start, zero while queued
	startedAt := make([]atomic.Int64, len(units))

	for i, unit := range units {
		run := runners[unit.Provider]
		futures[i] = sched.Submit(func(ctx context.Context) (models.ScanResult, error) {
			if req.UnitTimeout > 0 {
				var unitCancel context.CancelFunc
				ctx, unitCancel = context.WithTimeout(ctx, req.UnitTimeout)
				defer unitCancel()
			}
			startedAt[i].Store(time.Now().UnixNano())
			o.observer.UnitStarted(unit)
			return run(ctx, unit), nil
		})

		go func() {
			outcomes <- unitOutcome{index: i, result: <-futures[i].C()}
		}()
	}

	slots := make([]*models.ScanResult, len(units))
	collect := func(out unitOutcome) {
		if slots[out.index] != nil {
			return
		}
		r := o.toScanResult(units[out.index], out.result, startedAt[out.index].Load())
		slots[out.index] = &r
		o.observer.UnitFinished(r)
	}

	interrupted := false
	remaining := len(units)
	for remaining > 0 {
		select {
		case out := <-outcomes:
			collect(out)
			remaining--
		case <-runCtx.Done():
			logger.Warnw("discovery interrupted", "reason", runCtx.Err(), "pending", remaining)
			interrupted = true

			// keep units that resolved before the interruption, even when their
			// outcome is still on its way through the forwarding goroutine
			for i, f := range futures {
				if res, ok := f.Result(); ok {
					collect(unitOutcome{index: i, result: res})
				}
			}
			for i, f := range futures {
				if slots[i] == nil {
					f.Stop()
				}
			}
			// in-flight adapters may ignore their context: do not wait for them
			go sched.Close()

			for i, unit := range units {
				if slots[i] != nil {
					continue
				}
				r := cancelledResult(unit, startedAt[i].Load())
				slots[i] = &r
				o.observer.UnitFinished(r)
			}
			remaining = 0
		}
	}

	if !interrupted {
		sched.Close()
	}

	for _, r := range slots {
		catalog.Units = append(catalog.Units, models.NewUnitSummary(*r))
		catalog.DroppedRecords += r.Dropped
		if r.Err != nil {
			catalog.UnitErrors = append(catalog.UnitErrors, *r.Err)
			continue
		}
		catalog.Resources = append(catalog.Resources, r.Resources...)
	}
	catalog.ScanEndTime = time.Now()

	logger.Infow("discovery finished",
		"resources", catalog.ResourceCount(),
		"unit_errors", len(catalog.UnitErrors),
		"dropped_records", catalog.DroppedRecords,
		"duration", catalog.ScanEndTime.Sub(catalog.ScanStartTime))

	o.observer.RunFinished(catalog)

	return catalog, nil
}

func (o *Orchestrator) runners(ctx context.Context, req models.DiscoveryRequest) (map[models.Provider]Runner, error) {
	runners := make(map[models.Provider]Runner)

	for _, t := range req.Targets {
		if _, found := runners[t.Provider]; found {
			continue
		}

		run, err := o.factory(ctx, t.Provider, req.Config)
		if err != nil {
			return nil, errors.NewInvalidConfigurationError("%s adapter: %v", t.Provider, err)
		}
		if run == nil {
			return nil, errors.NewInvalidConfigurationError("no adapter for provider %q", t.Provider)
		}
		runners[t.Provider] = run
	}

	return runners, nil
}

func (o *Orchestrator) toScanResult(unit models.ScanUnit, out scheduler.Result[models.ScanResult], started int64) models.ScanResult {
	if out.Err != nil {
		if stderrors.Is(out.Err, context.Canceled) || stderrors.Is(out.Err, context.DeadlineExceeded) {
			return cancelledResult(unit, started)
		}
		// the worker panicked
		o.logger.Errorw("scan unit failed", "unit", unit.String(), "error", out.Err)
		return models.ScanResult{
			Unit:      unit,
			Resources: []models.Resource{},
			Err:       &models.UnitError{Unit: unit, Kind: models.UnitErrorProvider, Message: out.Err.Error()},
			StartedAt: startTime(started),
			Duration:  sinceStart(started),
		}
	}

	return out.Data
}

func cancelledResult(unit models.ScanUnit, started int64) models.ScanResult {
	return models.ScanResult{
		Unit:      unit,
		Resources: []models.Resource{},
		Err: &models.UnitError{
			Unit:    unit,
			Kind:    models.UnitErrorCancelled,
			Message: errors.NewCancelledError(unit.String()).Error(),
		},
		StartedAt: startTime(started),
		Duration:  sinceStart(started),
	}
}

func startTime(started int64) time.Time {
	if started == 0 {
		return time.Time{}
	}
	return time.Unix(0, started)
}

func sinceStart(started int64) time.Duration {
	if started == 0 {
		return 0
	}
	return time.Since(time.Unix(0, started))
}
