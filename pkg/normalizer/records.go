package normalizer

import (
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v4"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v4"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/vmware/govmomi/vim25/mo"
)

// AWSInstance is one EC2 instance as returned by DescribeInstances.
type AWSInstance struct {
	Region   string
	Instance ec2types.Instance
}

// AzureVirtualMachine is one VM of a subscription together with the network
// interfaces of that subscription it references.
type AzureVirtualMachine struct {
	SubscriptionID string
	VM             armcompute.VirtualMachine
	Interfaces     []armnetwork.Interface
}

// VSphereVM is one virtual machine retrieved from a vCenter container view.
// The lookup tables are shared by every VM of the endpoint and are left out
// of the serialized record.
type VSphereVM struct {
	Endpoint string
	VM       mo.VirtualMachine
	// CustomFields maps custom field keys to their names.
	CustomFields map[int32]string `json:"-"`
	// Datastores maps datastore references to their names.
	Datastores map[string]string `json:"-"`
}
