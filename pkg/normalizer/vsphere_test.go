package normalizer_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/types"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/pkg/errors"
	"github.com/kubev2v/migration-discovery/pkg/normalizer"
)

func vsphereFixture() normalizer.VSphereVM {
	vm := mo.VirtualMachine{}
	vm.Self = types.ManagedObjectReference{Type: "VirtualMachine", Value: "vm-42"}
	vm.Summary = types.VirtualMachineSummary{
		Vm:      &types.ManagedObjectReference{Type: "VirtualMachine", Value: "vm-42"},
		Runtime: types.VirtualMachineRuntimeInfo{PowerState: types.VirtualMachinePowerStatePoweredOn},
		CustomValue: []types.BaseCustomFieldValue{
			&types.CustomFieldStringValue{CustomFieldValue: types.CustomFieldValue{Key: 101}, Value: "prod"},
		},
	}
	vm.Config = &types.VirtualMachineConfigInfo{
		Name:          "db-1",
		GuestFullName: "Red Hat Enterprise Linux 9 (64-bit)",
		Hardware: types.VirtualHardware{
			NumCPU:   4,
			MemoryMB: 8192,
			Device: []types.BaseVirtualDevice{
				&types.VirtualDisk{
					VirtualDevice: types.VirtualDevice{
						DeviceInfo: &types.Description{Label: "Hard disk 1"},
						Backing: &types.VirtualDiskFlatVer2BackingInfo{
							VirtualDeviceFileBackingInfo: types.VirtualDeviceFileBackingInfo{
								FileName:  "[datastore1] db-1/db-1.vmdk",
								Datastore: &types.ManagedObjectReference{Type: "Datastore", Value: "datastore-11"},
							},
						},
					},
					CapacityInKB: 41943040,
				},
				&types.VirtualE1000{},
			},
		},
	}
	vm.Runtime = types.VirtualMachineRuntimeInfo{PowerState: types.VirtualMachinePowerStatePoweredOn}
	vm.Guest = &types.GuestInfo{
		IpAddress: "192.168.1.10",
		Net: []types.GuestNicInfo{
			{Network: "VM Network", MacAddress: "00:50:56:00:00:01", IpAddress: []string{"192.168.1.10", "fe80::1"}},
		},
	}

	return normalizer.VSphereVM{
		Endpoint:     "https://vcenter.example.com/sdk",
		VM:           vm,
		CustomFields: map[int32]string{101: "env"},
		Datastores:   map[string]string{"datastore-11": "ssd-datastore"},
	}
}

var _ = Describe("NormalizeVSphere", func() {
	// Given a VM with summary, config, guest and runtime sub-objects
	// When we normalize it
	// Then they should map to the canonical fields with NICs and disks flattened
	It("should map the virtual machine fields", func() {
		// Arrange
		rec := vsphereFixture()

		// Act
		r, err := normalizer.NormalizeVSphere(rec)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(r.ID).To(Equal("vm-42"))
		Expect(r.Provider).To(Equal(models.ProviderVMware))
		Expect(r.Name).To(Equal("db-1"))
		Expect(r.Location).To(Equal("https://vcenter.example.com/sdk"))
		Expect(r.SizeClass).To(Equal("4 vCPU / 8192 MB"))
		Expect(r.CPUCount).To(Equal(int32(4)))
		Expect(r.MemoryMB).To(Equal(int64(8192)))
		Expect(r.State).To(Equal(models.StateRunning))
		Expect(r.OS).To(Equal("Red Hat Enterprise Linux 9 (64-bit)"))
		Expect(r.Tags).To(Equal(map[string]string{"env": "prod"}))
		Expect(r.Network).To(Equal([]models.NetworkInterface{
			{IPAddress: "192.168.1.10", MACAddress: "00:50:56:00:00:01", Network: "VM Network"},
			{IPAddress: "fe80::1", MACAddress: "00:50:56:00:00:01", Network: "VM Network"},
		}))
		Expect(r.Disks).To(Equal([]models.Disk{
			{Label: "Hard disk 1", CapacityKB: 41943040, Datastore: "ssd-datastore"},
		}))
	})

	It("should keep the native record unmodified in raw", func() {
		rec := vsphereFixture()

		r, err := normalizer.NormalizeVSphere(rec)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Raw).To(Equal(vsphereFixture()))
	})

	// Given a VM record carrying the endpoint lookup tables
	// When the normalized resource is serialized
	// Then raw should hold the endpoint and the VM but not the lookup tables
	It("should leave the lookup tables out of the serialized raw record", func() {
		// Arrange
		r, err := normalizer.NormalizeVSphere(vsphereFixture())
		Expect(err).NotTo(HaveOccurred())

		// Act
		data, err := json.Marshal(r.Raw)
		Expect(err).NotTo(HaveOccurred())

		// Assert
		var raw map[string]any
		Expect(json.Unmarshal(data, &raw)).To(Succeed())
		Expect(raw).To(HaveKeyWithValue("Endpoint", "https://vcenter.example.com/sdk"))
		Expect(raw).To(HaveKey("VM"))
		Expect(raw).NotTo(HaveKey("CustomFields"))
		Expect(raw).NotTo(HaveKey("Datastores"))
		Expect(string(data)).NotTo(ContainSubstring("ssd-datastore"))
	})

	It("should read the datastore from the file path when the reference is unknown", func() {
		rec := vsphereFixture()
		rec.Datastores = nil

		r, err := normalizer.NormalizeVSphere(rec)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Disks[0].Datastore).To(Equal("datastore1"))
	})

	It("should fail when the managed object id is missing", func() {
		rec := normalizer.VSphereVM{Endpoint: "https://vc/sdk"}

		_, err := normalizer.NormalizeVSphere(rec)
		Expect(errors.IsNormalizationError(err)).To(BeTrue())
	})

	// Given a VM with only a summary
	// When we normalize it
	// Then name and sizing should come from the summary and tags stay an empty map
	It("should fall back to the summary when config is not set", func() {
		// Arrange
		vm := mo.VirtualMachine{}
		vm.Summary = types.VirtualMachineSummary{
			Vm: &types.ManagedObjectReference{Type: "VirtualMachine", Value: "vm-7"},
			Config: types.VirtualMachineConfigSummary{
				Name:         "summary-only",
				NumCpu:       2,
				MemorySizeMB: 2048,
			},
			Runtime: types.VirtualMachineRuntimeInfo{PowerState: types.VirtualMachinePowerStateSuspended},
		}

		// Act
		r, err := normalizer.NormalizeVSphere(normalizer.VSphereVM{VM: vm})

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Name).To(Equal("summary-only"))
		Expect(r.SizeClass).To(Equal("2 vCPU / 2048 MB"))
		Expect(r.State).To(Equal(models.StateStopped))
		Expect(r.Tags).To(Equal(map[string]string{}))
		Expect(r.Disks).To(BeEmpty())
	})

	DescribeTable("should map power states",
		func(native types.VirtualMachinePowerState, expected string) {
			vm := mo.VirtualMachine{}
			vm.Self = types.ManagedObjectReference{Type: "VirtualMachine", Value: "vm-1"}
			vm.Runtime = types.VirtualMachineRuntimeInfo{PowerState: native}
			r, err := normalizer.NormalizeVSphere(normalizer.VSphereVM{VM: vm})
			Expect(err).NotTo(HaveOccurred())
			Expect(r.State).To(Equal(expected))
		},
		Entry("poweredOn", types.VirtualMachinePowerStatePoweredOn, models.StateRunning),
		Entry("poweredOff", types.VirtualMachinePowerStatePoweredOff, models.StateStopped),
		Entry("suspended", types.VirtualMachinePowerStateSuspended, models.StateStopped),
	)
})
