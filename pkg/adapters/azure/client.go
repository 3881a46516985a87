package azure

import (
	"context"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v4"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v4"
	"golang.org/x/time/rate"
)

// armClient implements Client with the Azure Resource Manager SDK.
type armClient struct {
	vms     *armcompute.VirtualMachinesClient
	nics    *armnetwork.InterfacesClient
	limiter *rate.Limiter
}

func newARMClient(subscriptionID string, cred azcore.TokenCredential, limiter *rate.Limiter) (*armClient, error) {
	vms, err := armcompute.NewVirtualMachinesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, err
	}

	nics, err := armnetwork.NewInterfacesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, err
	}

	return &armClient{vms: vms, nics: nics, limiter: limiter}, nil
}

// ListVirtualMachines lists the machines of the subscription and attaches the
// instance view of each one, read from the status-only listing.
func (c *armClient) ListVirtualMachines(ctx context.Context) ([]*armcompute.VirtualMachine, error) {
	var vms []*armcompute.VirtualMachine
	pager := c.vms.NewListAllPager(nil)
	for pager.More() {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		vms = append(vms, page.Value...)
	}

	views := make(map[string]*armcompute.VirtualMachineInstanceView)
	statusPager := c.vms.NewListAllPager(&armcompute.VirtualMachinesClientListAllOptions{StatusOnly: to.Ptr("true")})
	for statusPager.More() {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		page, err := statusPager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, vm := range page.Value {
			if vm == nil || vm.ID == nil || vm.Properties == nil || vm.Properties.InstanceView == nil {
				continue
			}
			views[strings.ToLower(*vm.ID)] = vm.Properties.InstanceView
		}
	}

	for _, vm := range vms {
		if vm == nil || vm.ID == nil {
			continue
		}
		view, found := views[strings.ToLower(*vm.ID)]
		if !found {
			continue
		}
		if vm.Properties == nil {
			vm.Properties = &armcompute.VirtualMachineProperties{}
		}
		vm.Properties.InstanceView = view
	}

	return vms, nil
}

func (c *armClient) ListInterfaces(ctx context.Context) ([]*armnetwork.Interface, error) {
	var nics []*armnetwork.Interface
	pager := c.nics.NewListAllPager(nil)
	for pager.More() {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		nics = append(nics, page.Value...)
	}
	return nics, nil
}

func (c *armClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}
