package azure_test

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v4"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/pkg/adapters/azure"
)

const nicID = "/subscriptions/sub-1/resourceGroups/rg/providers/Microsoft.Network/networkInterfaces/web-nic"

func vmWithNIC(name, ref string) *armcompute.VirtualMachine {
	return &armcompute.VirtualMachine{
		ID:       to.Ptr("/subscriptions/sub-1/resourceGroups/rg/providers/Microsoft.Compute/virtualMachines/" + name),
		Name:     to.Ptr(name),
		Location: to.Ptr("westeurope"),
		Properties: &armcompute.VirtualMachineProperties{
			NetworkProfile: &armcompute.NetworkProfile{
				NetworkInterfaces: []*armcompute.NetworkInterfaceReference{{ID: to.Ptr(ref)}},
			},
		},
	}
}

var _ = Describe("Adapter", func() {
	var (
		ctx     context.Context
		unit    models.ScanUnit
		client  *fakeClient
		adapter *azure.Adapter
		subID   string
	)

	BeforeEach(func() {
		ctx = context.Background()
		unit = models.NewScanUnit(models.ProviderAzure, "sub-1")
		client = &fakeClient{}

		var err error
		adapter, err = azure.NewAdapter(models.AzureConfig{TenantID: "tenant", ClientID: "client", ClientSecret: "secret"})
		Expect(err).NotTo(HaveOccurred())
		adapter.WithClientFactory(func(id string) (azure.Client, error) {
			subID = id
			return client, nil
		})
	})

	// Given a VM referencing a NIC with a different casing
	// When the records of the subscription are listed
	// Then the record should carry the referenced NIC only
	It("should attach referenced interfaces", func() {
		// Arrange
		client.vms = []*armcompute.VirtualMachine{vmWithNIC("web-1", "/SUBSCRIPTIONS/sub-1/resourcegroups/RG/providers/Microsoft.Network/networkInterfaces/WEB-NIC")}
		client.nics = []*armnetwork.Interface{
			{ID: to.Ptr(nicID), Name: to.Ptr("web-nic")},
			{ID: to.Ptr(nicID + "-other"), Name: to.Ptr("other-nic")},
		}

		// Act
		records, err := adapter.ListRecords(ctx, unit)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(subID).To(Equal("sub-1"))
		Expect(records).To(HaveLen(1))
		Expect(records[0].SubscriptionID).To(Equal("sub-1"))
		Expect(*records[0].VM.Name).To(Equal("web-1"))
		Expect(records[0].Interfaces).To(HaveLen(1))
		Expect(*records[0].Interfaces[0].Name).To(Equal("web-nic"))
	})

	// Given a VM referencing a NIC missing from the subscription listing
	// When the records are listed
	// Then the record should carry no interface
	It("should ignore unresolved interface references", func() {
		// Arrange
		client.vms = []*armcompute.VirtualMachine{vmWithNIC("web-1", nicID)}

		// Act
		records, err := adapter.ListRecords(ctx, unit)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(1))
		Expect(records[0].Interfaces).To(BeEmpty())
	})

	// Given a subscription without virtual machines
	// When the records are listed
	// Then an empty list should be returned
	It("should return an empty list", func() {
		// Act
		records, err := adapter.ListRecords(ctx, unit)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	// Given the compute API answering 403
	// When the records are listed
	// Then the error should carry the ARM error code and the status
	It("should surface ARM response errors", func() {
		// Arrange
		client.vmErr = &azcore.ResponseError{ErrorCode: "AuthorizationFailed", StatusCode: http.StatusForbidden}

		// Act
		records, err := adapter.ListRecords(ctx, unit)

		// Assert
		Expect(records).To(BeNil())
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("AuthorizationFailed"))
		Expect(err.Error()).To(ContainSubstring("403"))
		var respErr *azcore.ResponseError
		Expect(stderrors.As(err, &respErr)).To(BeTrue())
	})

	// Given the network API failing
	// When the records are listed
	// Then the unit should fail
	It("should fail when interfaces cannot be listed", func() {
		// Arrange
		client.vms = []*armcompute.VirtualMachine{vmWithNIC("web-1", nicID)}
		client.nicErr = stderrors.New("connection reset")

		// Act
		_, err := adapter.ListRecords(ctx, unit)

		// Assert
		Expect(err).To(MatchError(ContainSubstring("list network interfaces")))
	})

	// Given a client factory failing
	// When the records are listed
	// Then the error should name the subscription
	It("should fail when the client cannot be built", func() {
		// Arrange
		adapter.WithClientFactory(func(string) (azure.Client, error) {
			return nil, stderrors.New("bad credential")
		})

		// Act
		_, err := adapter.ListRecords(ctx, unit)

		// Assert
		Expect(err).To(MatchError(ContainSubstring("sub-1")))
	})
})
