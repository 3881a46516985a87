package normalizer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vmware/govmomi/vim25/types"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/pkg/errors"
)

// NormalizeVSphere maps a vSphere virtual machine to a Resource.
//
// The managed object id of the VM is the primary identifier. The location is
// the vCenter endpoint the VM was listed from. Guest NICs are flattened into
// one network entry per reported IP, virtual disks into Disks.
func NormalizeVSphere(rec VSphereVM) (models.Resource, error) {
	vm := rec.VM

	id := ""
	if vm.Summary.Vm != nil {
		id = vm.Summary.Vm.Value
	}
	if id == "" {
		id = vm.Self.Value
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Resource{}, errors.NewNormalizationError(string(models.ProviderVMware), rec, "missing managed object id")
	}

	r := newResource(models.ProviderVMware, id, rec)
	r.Location = rec.Endpoint

	r.Name = vm.Summary.Config.Name
	r.OS = vm.Summary.Config.GuestFullName
	r.CPUCount = vm.Summary.Config.NumCpu
	r.MemoryMB = int64(vm.Summary.Config.MemorySizeMB)

	if c := vm.Config; c != nil {
		if c.Name != "" {
			r.Name = c.Name
		}
		if c.GuestFullName != "" {
			r.OS = c.GuestFullName
		}
		if c.Hardware.NumCPU > 0 {
			r.CPUCount = c.Hardware.NumCPU
		}
		if c.Hardware.MemoryMB > 0 {
			r.MemoryMB = int64(c.Hardware.MemoryMB)
		}
		r.Disks = vsphereDisks(c.Hardware.Device, rec.Datastores)
	}

	if r.CPUCount > 0 && r.MemoryMB > 0 {
		r.SizeClass = fmt.Sprintf("%d vCPU / %d MB", r.CPUCount, r.MemoryMB)
	}

	powerState := vm.Runtime.PowerState
	if powerState == "" {
		powerState = vm.Summary.Runtime.PowerState
	}
	r.State = canonicalState(vsphereStates, string(powerState))

	if g := vm.Guest; g != nil {
		for _, nic := range g.Net {
			for _, ip := range nic.IpAddress {
				if ip == "" {
					continue
				}
				r.Network = append(r.Network, models.NetworkInterface{IPAddress: ip, MACAddress: nic.MacAddress, Network: nic.Network})
			}
		}
		if len(r.Network) == 0 && g.IpAddress != "" {
			r.Network = append(r.Network, models.NetworkInterface{IPAddress: g.IpAddress})
		}
	}

	for _, v := range vm.Summary.CustomValue {
		sv, ok := v.(*types.CustomFieldStringValue)
		if !ok {
			continue
		}
		key, found := rec.CustomFields[sv.Key]
		if !found {
			key = strconv.Itoa(int(sv.Key))
		}
		r.Tags[key] = sv.Value
	}

	return r, nil
}

func vsphereDisks(devices []types.BaseVirtualDevice, datastores map[string]string) []models.Disk {
	var disks []models.Disk

	for _, device := range devices {
		disk, ok := device.(*types.VirtualDisk)
		if !ok {
			continue
		}

		d := models.Disk{CapacityKB: disk.CapacityInKB}
		if disk.DeviceInfo != nil {
			d.Label = disk.DeviceInfo.GetDescription().Label
		}

		if fb, ok := disk.Backing.(types.BaseVirtualDeviceFileBackingInfo); ok {
			info := fb.GetVirtualDeviceFileBackingInfo()
			if info.Datastore != nil {
				d.Datastore = datastores[info.Datastore.Value]
			}
			if d.Datastore == "" {
				d.Datastore = datastoreFromPath(info.FileName)
			}
		}

		disks = append(disks, d)
	}

	return disks
}

// datastoreFromPath extracts "ds1" from a path like "[ds1] vm/vm.vmdk".
func datastoreFromPath(path string) string {
	if !strings.HasPrefix(path, "[") {
		return ""
	}
	end := strings.Index(path, "]")
	if end < 0 {
		return ""
	}
	return path[1:end]
}
