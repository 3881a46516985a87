package normalizer

import (
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v4"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/pkg/errors"
)

const azurePowerStatePrefix = "PowerState/"

// NormalizeAzure maps an Azure virtual machine to a Resource.
//
// The ARM resource id is the primary identifier. Network interfaces
// referenced by the VM are resolved against the interfaces listed with it;
// each IP configuration with a private address becomes one entry.
func NormalizeAzure(rec AzureVirtualMachine) (models.Resource, error) {
	vm := rec.VM

	id := strings.TrimSpace(deref(vm.ID))
	if id == "" {
		return models.Resource{}, errors.NewNormalizationError(string(models.ProviderAzure), rec, "missing id")
	}

	r := newResource(models.ProviderAzure, id, rec)
	r.Name = deref(vm.Name)
	r.Location = deref(vm.Location)

	for k, v := range vm.Tags {
		r.Tags[k] = deref(v)
	}

	p := vm.Properties
	if p == nil {
		return r, nil
	}

	if p.HardwareProfile != nil && p.HardwareProfile.VMSize != nil {
		r.SizeClass = string(*p.HardwareProfile.VMSize)
	}

	if p.InstanceView != nil {
		for _, s := range p.InstanceView.Statuses {
			if s == nil {
				continue
			}
			if code := deref(s.Code); strings.HasPrefix(code, azurePowerStatePrefix) {
				r.State = canonicalState(azureStates, code)
				break
			}
		}
	}

	if p.StorageProfile != nil && p.StorageProfile.OSDisk != nil && p.StorageProfile.OSDisk.OSType != nil {
		r.OS = string(*p.StorageProfile.OSDisk.OSType)
	}

	if p.NetworkProfile != nil {
		for _, ref := range p.NetworkProfile.NetworkInterfaces {
			if ref == nil {
				continue
			}
			if nic, found := findInterface(rec.Interfaces, deref(ref.ID)); found {
				r.Network = append(r.Network, azureInterfaceAddresses(nic)...)
			}
		}
	}

	return r, nil
}

func findInterface(interfaces []armnetwork.Interface, id string) (armnetwork.Interface, bool) {
	if id == "" {
		return armnetwork.Interface{}, false
	}
	for _, nic := range interfaces {
		// ARM ids are case insensitive
		if strings.EqualFold(deref(nic.ID), id) {
			return nic, true
		}
	}
	return armnetwork.Interface{}, false
}

func azureInterfaceAddresses(nic armnetwork.Interface) []models.NetworkInterface {
	if nic.Properties == nil {
		return nil
	}

	mac := deref(nic.Properties.MacAddress)
	var addresses []models.NetworkInterface

	for _, ipc := range nic.Properties.IPConfigurations {
		if ipc == nil || ipc.Properties == nil {
			continue
		}

		subnet := ""
		if ipc.Properties.Subnet != nil {
			subnet = deref(ipc.Properties.Subnet.ID)
		}

		if ip := deref(ipc.Properties.PrivateIPAddress); ip != "" {
			addresses = append(addresses, models.NetworkInterface{IPAddress: ip, MACAddress: mac, Network: subnet})
		}

		if pip := ipc.Properties.PublicIPAddress; pip != nil && pip.Properties != nil {
			if ip := deref(pip.Properties.IPAddress); ip != "" {
				addresses = append(addresses, models.NetworkInterface{IPAddress: ip, MACAddress: mac, Network: subnet})
			}
		}
	}

	return addresses
}
