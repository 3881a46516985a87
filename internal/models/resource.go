package models

import "fmt"

// Provider identifies the infrastructure a resource was discovered on.
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderAzure  Provider = "azure"
	ProviderVMware Provider = "vmware"
)

// Providers lists every provider the engine knows how to scan, in catalog label order.
var Providers = []Provider{ProviderAWS, ProviderAzure, ProviderVMware}

func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderAWS, ProviderAzure, ProviderVMware:
		return Provider(s), nil
	default:
		return "", fmt.Errorf("unknown provider: %q", s)
	}
}

const ResourceKindComputeInstance = "compute-instance"

// Canonical power states. Native states without a mapping are kept verbatim.
const (
	StateRunning = "running"
	StateStopped = "stopped"
	StateUnknown = "unknown"
)

// Resource is the provider-agnostic representation of one compute asset.
//
// Network and Tags are always serialized. Every other optional field is
// omitted when the provider did not report it.
type Resource struct {
	ID        string             `json:"id"`
	Provider  Provider           `json:"provider"`
	Kind      string             `json:"kind"`
	Name      string             `json:"name,omitempty"`
	Location  string             `json:"location,omitempty"`
	SizeClass string             `json:"sizeClass,omitempty"`
	State     string             `json:"state,omitempty"`
	OS        string             `json:"os,omitempty"`
	CPUCount  int32              `json:"cpuCount,omitempty"`
	MemoryMB  int64              `json:"memoryMB,omitempty"`
	Network   []NetworkInterface `json:"network"`
	Disks     []Disk             `json:"disks,omitempty"`
	Tags      map[string]string  `json:"tags"`
	// Raw is the native record exactly as the adapter returned it.
	Raw any `json:"raw"`
}

type NetworkInterface struct {
	IPAddress  string `json:"ipAddress"`
	MACAddress string `json:"macAddress,omitempty"`
	Network    string `json:"network,omitempty"`
}

type Disk struct {
	Label      string `json:"label"`
	CapacityKB int64  `json:"capacityKB"`
	Datastore  string `json:"datastore,omitempty"`
}
