package aws

import (
	"context"
	stderrors "errors"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/pkg/normalizer"
)

// EC2API is the subset of the EC2 client used by the adapter.
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

// ClientFactory builds the EC2 client of one region.
type ClientFactory func(ctx context.Context, region string) (EC2API, error)

// Adapter lists the EC2 instances of one region per scan unit.
type Adapter struct {
	newClient ClientFactory
	limiter   *rate.Limiter
	logger    *zap.SugaredLogger
}

func NewAdapter(cfg models.AWSConfig) *Adapter {
	a := &Adapter{
		newClient: sdkClientFactory(cfg),
		logger:    zap.S().Named("aws_adapter"),
	}
	if cfg.RequestsPerSecond > 0 {
		a.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return a
}

func (a *Adapter) WithClientFactory(f ClientFactory) *Adapter {
	a.newClient = f
	return a
}

// ListRecords returns every instance of the region named by the unit, one record per instance.
func (a *Adapter) ListRecords(ctx context.Context, unit models.ScanUnit) ([]normalizer.AWSInstance, error) {
	region := unit.Name

	client, err := a.newClient(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("failed to create ec2 client for region %s: %w", region, err)
	}

	records := []normalizer.AWSInstance{}
	paginator := ec2.NewDescribeInstancesPaginator(client, &ec2.DescribeInstancesInput{})

	pages := 0
	for paginator.HasMorePages() {
		if a.limiter != nil {
			if err := a.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, describeError(err)
		}
		pages++

		for _, reservation := range out.Reservations {
			for _, instance := range reservation.Instances {
				records = append(records, normalizer.AWSInstance{Region: region, Instance: instance})
			}
		}
	}

	a.logger.Debugw("instances listed", "region", region, "pages", pages, "instances", len(records))

	return records, nil
}

func describeError(err error) error {
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		return fmt.Errorf("DescribeInstances failed (%s): %w", apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("DescribeInstances failed: %w", err)
}

func sdkClientFactory(cfg models.AWSConfig) ClientFactory {
	return func(ctx context.Context, region string) (EC2API, error) {
		opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
		if cfg.Profile != "" {
			opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
		}
		if cfg.HasStaticCredentials() {
			opts = append(opts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
			))
		}

		awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, err
		}

		return ec2.NewFromConfig(awsCfg, func(o *ec2.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = awssdk.String(cfg.Endpoint)
			}
		}), nil
	}
}
