package azure

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v4"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/pkg/normalizer"
)

// Client lists the compute and network resources of one subscription.
type Client interface {
	ListVirtualMachines(ctx context.Context) ([]*armcompute.VirtualMachine, error)
	ListInterfaces(ctx context.Context) ([]*armnetwork.Interface, error)
}

// ClientFactory builds the Client of one subscription.
type ClientFactory func(subscriptionID string) (Client, error)

// Adapter lists the virtual machines of one subscription per scan unit.
type Adapter struct {
	newClient ClientFactory
	logger    *zap.SugaredLogger
}

// NewAdapter builds an adapter authenticating with the configured service principal,
// or with the default Azure credential chain when none is configured.
func NewAdapter(cfg models.AzureConfig) (*Adapter, error) {
	cred, err := newCredential(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure credential: %w", err)
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Adapter{
		newClient: func(subscriptionID string) (Client, error) {
			return newARMClient(subscriptionID, cred, limiter)
		},
		logger: zap.S().Named("azure_adapter"),
	}, nil
}

func (a *Adapter) WithClientFactory(f ClientFactory) *Adapter {
	a.newClient = f
	return a
}

// ListRecords returns one record per virtual machine of the subscription named by
// the unit. Each record carries the network interfaces the machine references.
func (a *Adapter) ListRecords(ctx context.Context, unit models.ScanUnit) ([]normalizer.AzureVirtualMachine, error) {
	subscriptionID := unit.Name

	client, err := a.newClient(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create clients for subscription %s: %w", subscriptionID, err)
	}

	vms, err := client.ListVirtualMachines(ctx)
	if err != nil {
		return nil, armError("list virtual machines", err)
	}

	nics, err := client.ListInterfaces(ctx)
	if err != nil {
		return nil, armError("list network interfaces", err)
	}

	nicByID := make(map[string]armnetwork.Interface, len(nics))
	for _, nic := range nics {
		if nic == nil || nic.ID == nil {
			continue
		}
		nicByID[strings.ToLower(*nic.ID)] = *nic
	}

	records := make([]normalizer.AzureVirtualMachine, 0, len(vms))
	for _, vm := range vms {
		if vm == nil {
			continue
		}
		records = append(records, normalizer.AzureVirtualMachine{
			SubscriptionID: subscriptionID,
			VM:             *vm,
			Interfaces:     referencedInterfaces(*vm, nicByID),
		})
	}

	a.logger.Debugw("virtual machines listed", "subscription", subscriptionID, "vms", len(records), "interfaces", len(nics))

	return records, nil
}

func referencedInterfaces(vm armcompute.VirtualMachine, nicByID map[string]armnetwork.Interface) []armnetwork.Interface {
	if vm.Properties == nil || vm.Properties.NetworkProfile == nil {
		return nil
	}

	var out []armnetwork.Interface
	for _, ref := range vm.Properties.NetworkProfile.NetworkInterfaces {
		if ref == nil || ref.ID == nil {
			continue
		}
		if nic, found := nicByID[strings.ToLower(*ref.ID)]; found {
			out = append(out, nic)
		}
	}
	return out
}

func armError(op string, err error) error {
	var respErr *azcore.ResponseError
	if stderrors.As(err, &respErr) {
		return fmt.Errorf("failed to %s (%s, status %d): %w", op, respErr.ErrorCode, respErr.StatusCode, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func newCredential(cfg models.AzureConfig) (azcore.TokenCredential, error) {
	if cfg.HasClientSecret() {
		return azidentity.NewClientSecretCredential(cfg.TenantID, cfg.ClientID, cfg.ClientSecret, nil)
	}
	return azidentity.NewDefaultAzureCredential(nil)
}
