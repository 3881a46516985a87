package aws_test

import (
	"context"
	stderrors "errors"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/pkg/adapters/aws"
)

func instance(id string) ec2types.Instance {
	return ec2types.Instance{
		InstanceId:   awssdk.String(id),
		InstanceType: ec2types.InstanceTypeT3Micro,
		State:        &ec2types.InstanceState{Name: ec2types.InstanceStateNameRunning},
	}
}

var _ = Describe("Adapter", func() {
	var (
		ctx    context.Context
		unit   models.ScanUnit
		client *mockEC2Client
		region string
	)

	BeforeEach(func() {
		ctx = context.Background()
		unit = models.NewScanUnit(models.ProviderAWS, "eu-west-1")
		region = ""
	})

	newAdapter := func(cfg models.AWSConfig) *aws.Adapter {
		return aws.NewAdapter(cfg).WithClientFactory(func(_ context.Context, r string) (aws.EC2API, error) {
			region = r
			return client, nil
		})
	}

	// Given DescribeInstances answering with two pages
	// When the records of a region are listed
	// Then every instance of every reservation should be returned in page order
	It("should follow pagination", func() {
		// Arrange
		client = &mockEC2Client{
			DescribeInstancesFunc: func(_ context.Context, in *ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error) {
				if in.NextToken == nil {
					return &ec2.DescribeInstancesOutput{
						Reservations: []ec2types.Reservation{
							{Instances: []ec2types.Instance{instance("i-1"), instance("i-2")}},
						},
						NextToken: awssdk.String("page-2"),
					}, nil
				}
				return &ec2.DescribeInstancesOutput{
					Reservations: []ec2types.Reservation{
						{Instances: []ec2types.Instance{instance("i-3")}},
					},
				}, nil
			},
		}

		// Act
		records, err := newAdapter(models.AWSConfig{}).ListRecords(ctx, unit)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(client.calls).To(Equal(2))
		Expect(region).To(Equal("eu-west-1"))
		Expect(records).To(HaveLen(3))
		Expect(awssdk.ToString(records[0].Instance.InstanceId)).To(Equal("i-1"))
		Expect(awssdk.ToString(records[2].Instance.InstanceId)).To(Equal("i-3"))
		for _, r := range records {
			Expect(r.Region).To(Equal("eu-west-1"))
		}
	})

	// Given a region without instances
	// When the records are listed
	// Then an empty list should be returned without error
	It("should return an empty list for an empty region", func() {
		// Arrange
		client = &mockEC2Client{
			DescribeInstancesFunc: func(context.Context, *ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error) {
				return &ec2.DescribeInstancesOutput{}, nil
			},
		}

		// Act
		records, err := newAdapter(models.AWSConfig{}).ListRecords(ctx, unit)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	// Given DescribeInstances failing with an API error
	// When the records are listed
	// Then the error should carry the API error code and still unwrap to it
	It("should surface the API error code", func() {
		// Arrange
		apiErr := &smithy.GenericAPIError{Code: "UnauthorizedOperation", Message: "not allowed"}
		client = &mockEC2Client{
			DescribeInstancesFunc: func(context.Context, *ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error) {
				return nil, apiErr
			},
		}

		// Act
		records, err := newAdapter(models.AWSConfig{}).ListRecords(ctx, unit)

		// Assert
		Expect(records).To(BeNil())
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("UnauthorizedOperation"))
		var target smithy.APIError
		Expect(stderrors.As(err, &target)).To(BeTrue())
		Expect(target.ErrorCode()).To(Equal("UnauthorizedOperation"))
	})

	// Given a client factory failing for the region
	// When the records are listed
	// Then the error should name the region
	It("should fail when the client cannot be built", func() {
		// Arrange
		adapter := aws.NewAdapter(models.AWSConfig{}).WithClientFactory(func(context.Context, string) (aws.EC2API, error) {
			return nil, stderrors.New("no credentials")
		})

		// Act
		_, err := adapter.ListRecords(ctx, unit)

		// Assert
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("eu-west-1"))
	})

	// Given pacing enabled and an already cancelled context
	// When the records are listed
	// Then no request should be sent
	It("should not call the API once the context is cancelled", func() {
		// Arrange
		client = &mockEC2Client{
			DescribeInstancesFunc: func(context.Context, *ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error) {
				return &ec2.DescribeInstancesOutput{}, nil
			},
		}
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		// Act
		_, err := newAdapter(models.AWSConfig{RequestsPerSecond: 1}).ListRecords(cancelled, unit)

		// Assert
		Expect(err).To(HaveOccurred())
		Expect(client.calls).To(BeZero())
	})
})
