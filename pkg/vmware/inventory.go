package vmware

import (
	"context"
	"fmt"

	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/property"
	"github.com/vmware/govmomi/view"
	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/types"
	"go.uber.org/zap"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/pkg/errors"
	"github.com/kubev2v/migration-discovery/pkg/normalizer"
)

// vmProperties are retrieved for every virtual machine in a single call.
var vmProperties = []string{"summary", "config", "guest", "runtime", "datastore"}

// InventoryAdapter lists the virtual machines of one vCenter per scan unit.
type InventoryAdapter struct {
	cfg    models.VSphereConfig
	logger *zap.SugaredLogger
}

func NewInventoryAdapter(cfg models.VSphereConfig) *InventoryAdapter {
	return &InventoryAdapter{
		cfg:    cfg,
		logger: zap.S().Named("vsphere_adapter"),
	}
}

// ListRecords logs into the vCenter named by the unit and returns one record
// per virtual machine found under the root folder, at any depth.
//
// Returns an error if:
//   - the login fails (as a VCenterError),
//   - the container view cannot be created,
//   - or the virtual machine properties cannot be retrieved.
func (a *InventoryAdapter) ListRecords(ctx context.Context, unit models.ScanUnit) ([]normalizer.VSphereVM, error) {
	endpoint := unit.Name

	c, err := openSession(ctx, endpoint, a.cfg, a.logger)
	if err != nil {
		return nil, errors.NewVCenterError(err)
	}
	defer c.Close()

	vms, err := a.retrieveVMs(ctx, c.Client)
	if err != nil {
		return nil, err
	}

	fields := a.customFields(ctx, c.Client)
	datastores := a.datastoreNames(ctx, c.Client, vms)

	records := make([]normalizer.VSphereVM, 0, len(vms))
	for _, vm := range vms {
		records = append(records, normalizer.VSphereVM{
			Endpoint:     endpoint,
			VM:           vm,
			CustomFields: fields,
			Datastores:   datastores,
		})
	}

	a.logger.Debugw("virtual machines listed", "endpoint", endpoint, "vms", len(records))

	return records, nil
}

func (a *InventoryAdapter) retrieveVMs(ctx context.Context, c *govmomi.Client) ([]mo.VirtualMachine, error) {
	m := view.NewManager(c.Client)

	v, err := m.CreateContainerView(ctx, c.ServiceContent.RootFolder, []string{"VirtualMachine"}, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create container view: %w", err)
	}
	defer func() {
		_ = v.Destroy(context.Background())
	}()

	var vms []mo.VirtualMachine
	if err := v.Retrieve(ctx, []string{"VirtualMachine"}, vmProperties, &vms); err != nil {
		return nil, fmt.Errorf("failed to retrieve virtual machines: %w", err)
	}

	return vms, nil
}

// customFields maps custom field keys to their names. Standalone hosts have no
// custom fields manager: the map is empty and tags fall back to the key.
func (a *InventoryAdapter) customFields(ctx context.Context, c *govmomi.Client) map[int32]string {
	fields := map[int32]string{}

	m, err := object.GetCustomFieldsManager(c.Client)
	if err != nil {
		a.logger.Debugw("custom fields not available", "error", err)
		return fields
	}

	defs, err := m.Field(ctx)
	if err != nil {
		a.logger.Warnw("failed to read custom field definitions", "error", err)
		return fields
	}

	for _, def := range defs {
		fields[def.Key] = def.Name
	}
	return fields
}

// datastoreNames maps the datastores used by vms to their names.
func (a *InventoryAdapter) datastoreNames(ctx context.Context, c *govmomi.Client, vms []mo.VirtualMachine) map[string]string {
	names := map[string]string{}

	seen := map[string]bool{}
	var refs []types.ManagedObjectReference
	for _, vm := range vms {
		for _, ref := range vm.Datastore {
			if seen[ref.Value] {
				continue
			}
			seen[ref.Value] = true
			refs = append(refs, ref)
		}
	}
	if len(refs) == 0 {
		return names
	}

	var dss []mo.Datastore
	if err := property.DefaultCollector(c.Client).Retrieve(ctx, refs, []string{"name"}, &dss); err != nil {
		a.logger.Warnw("failed to read datastore names", "error", err)
		return names
	}

	for _, ds := range dss {
		names[ds.Self.Value] = ds.Name
	}
	return names
}
