package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/internal/store"
	"github.com/kubev2v/migration-discovery/pkg/credentials"
	"github.com/kubev2v/migration-discovery/pkg/discovery"
	srvErrors "github.com/kubev2v/migration-discovery/pkg/errors"
)

// storeTimeout bounds saving, pruning and publishing a finished catalog.
const storeTimeout = 2 * time.Minute

// Publisher sends a finished catalog downstream.
type Publisher interface {
	Publish(ctx context.Context, catalog *models.Catalog) error
}

// DiscoveryService runs one discovery at a time in the background and stores its catalog.
type DiscoveryService struct {
	orchestrator *discovery.Orchestrator
	store        *store.Store
	creds        credentials.Store
	fallback     models.AdapterConfig
	publisher    Publisher
	retention    int

	state models.DiscoveryStatus
	mu    sync.Mutex

	done   chan any
	cancel context.CancelFunc

	logger *zap.SugaredLogger
}

func NewDiscoveryService(o *discovery.Orchestrator, s *store.Store) *DiscoveryService {
	return &DiscoveryService{
		orchestrator: o,
		store:        s,
		state:        models.DiscoveryStatus{State: models.DiscoveryStateReady},
		logger:       zap.S().Named("discovery_service"),
	}
}

// WithCredentials sets where stored credentials are read from and the
// configuration used for sections neither the request nor the store provide.
func (d *DiscoveryService) WithCredentials(creds credentials.Store, fallback models.AdapterConfig) *DiscoveryService {
	d.creds = creds
	d.fallback = fallback
	return d
}

func (d *DiscoveryService) WithPublisher(p Publisher) *DiscoveryService {
	d.publisher = p
	return d
}

// WithRetention keeps only the keep most recent catalogs. Zero keeps every catalog.
func (d *DiscoveryService) WithRetention(keep int) *DiscoveryService {
	d.retention = keep
	return d
}

// GetStatus returns the current discovery status.
func (d *DiscoveryService) GetStatus() models.DiscoveryStatus {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.state
}

// Start validates the request and runs the discovery asynchronously.
//
// Returns a DiscoveryInProgressError when a discovery is running and an
// InvalidConfigurationError when the request yields no scan unit.
func (d *DiscoveryService) Start(ctx context.Context, req models.DiscoveryRequest) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.isBusy() {
		return srvErrors.NewDiscoveryInProgressError()
	}

	if _, err := discovery.EnumerateUnits(req.Targets); err != nil {
		return err
	}

	cfg, err := d.resolveConfig(req.Config)
	if err != nil {
		return err
	}
	req.Config = cfg

	runCtx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.done = make(chan any)

	d.state = models.DiscoveryStatus{
		State:     models.DiscoveryStateRunning,
		CatalogID: d.state.CatalogID,
		StartedAt: time.Now(),
	}
	go d.run(runCtx, d.done, req)

	return nil
}

func (d *DiscoveryService) resolveConfig(cfg models.AdapterConfig) (models.AdapterConfig, error) {
	if d.creds != nil {
		stored, err := d.creds.Load()
		switch {
		case err == nil:
			cfg = cfg.Merge(*stored)
		case errors.Is(err, credentials.ErrNotFound):
		default:
			return cfg, err
		}
	}
	return cfg.Merge(d.fallback), nil
}

func (d *DiscoveryService) run(ctx context.Context, done chan any, req models.DiscoveryRequest) {
	defer close(done)
	defer func() {
		d.mu.Lock()
		if d.done == done {
			d.cancel = nil
			d.done = nil
		}
		d.mu.Unlock()
		d.logger.Debug("discovery finished work")
	}()

	catalog, err := d.orchestrator.Run(ctx, req)
	if err != nil {
		d.logger.Errorw("discovery failed", "error", err)
		d.setState(models.DiscoveryStateError, "", err)
		return
	}

	// a cancelled run still stores its partial catalog
	saveCtx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := d.store.Catalogs().Save(saveCtx, catalog); err != nil {
		d.logger.Errorw("failed to store catalog", "catalog", catalog.ID, "error", err)
		d.setState(models.DiscoveryStateError, "", err)
		return
	}

	if pruned, err := d.store.Catalogs().Prune(saveCtx, d.retention); err != nil {
		d.logger.Warnw("failed to prune catalogs", "error", err)
	} else if pruned > 0 {
		d.logger.Debugw("old catalogs pruned", "count", pruned)
	}

	if d.publisher != nil {
		if err := d.publisher.Publish(saveCtx, catalog); err != nil {
			d.logger.Warnw("failed to publish catalog", "catalog", catalog.ID, "error", err)
		}
	}

	d.setState(models.DiscoveryStateCompleted, catalog.ID, nil)
}

// Stop cancels the running discovery and waits for its catalog to be stored.
func (d *DiscoveryService) Stop() {
	d.mu.Lock()
	cancel := d.cancel
	done := d.done
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if done != nil {
		<-done
	}
}

// SaveCredentials stores provider credentials used by later discoveries.
func (d *DiscoveryService) SaveCredentials(cfg models.AdapterConfig) error {
	if d.creds == nil {
		return srvErrors.NewInvalidConfigurationError("credentials storage requires a data folder")
	}
	return d.creds.Save(cfg)
}

// HasCredentials reports whether credentials are stored.
func (d *DiscoveryService) HasCredentials() bool {
	return d.creds != nil && d.creds.Exists()
}

func (d *DiscoveryService) setState(state models.DiscoveryStateType, catalogID string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state.State = state
	d.state.Error = err
	if catalogID != "" {
		d.state.CatalogID = catalogID
	}
}

func (d *DiscoveryService) isBusy() bool {
	// must be protected by the caller
	return d.state.State == models.DiscoveryStateRunning
}
