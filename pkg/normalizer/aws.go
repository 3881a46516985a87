package normalizer

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/pkg/errors"
)

// NormalizeAWS maps an EC2 instance to a Resource.
//
// InstanceId is the primary identifier. The location is the availability
// zone when known, else the region the instance was listed in. The "Name"
// tag becomes the resource name.
func NormalizeAWS(rec AWSInstance) (models.Resource, error) {
	inst := rec.Instance

	id := strings.TrimSpace(aws.ToString(inst.InstanceId))
	if id == "" {
		return models.Resource{}, errors.NewNormalizationError(string(models.ProviderAWS), rec, "missing InstanceId")
	}

	r := newResource(models.ProviderAWS, id, rec)
	r.SizeClass = string(inst.InstanceType)
	r.Location = rec.Region

	if inst.Placement != nil && aws.ToString(inst.Placement.AvailabilityZone) != "" {
		r.Location = aws.ToString(inst.Placement.AvailabilityZone)
	}

	if inst.State != nil {
		r.State = canonicalState(awsStates, string(inst.State.Name))
	}

	for _, t := range inst.Tags {
		if t.Key == nil {
			continue
		}
		r.Tags[*t.Key] = aws.ToString(t.Value)
	}
	r.Name = r.Tags["Name"]

	switch {
	case inst.Platform != "":
		r.OS = string(inst.Platform)
	case aws.ToString(inst.PlatformDetails) != "":
		r.OS = aws.ToString(inst.PlatformDetails)
	}

	if inst.CpuOptions != nil {
		cores := aws.ToInt32(inst.CpuOptions.CoreCount)
		threads := aws.ToInt32(inst.CpuOptions.ThreadsPerCore)
		if threads == 0 {
			threads = 1
		}
		r.CPUCount = cores * threads
	}

	r.Network = awsNetwork(inst)

	return r, nil
}

func awsNetwork(inst ec2types.Instance) []models.NetworkInterface {
	network := []models.NetworkInterface{}

	if len(inst.NetworkInterfaces) == 0 {
		if ip := aws.ToString(inst.PrivateIpAddress); ip != "" {
			network = append(network, models.NetworkInterface{IPAddress: ip, Network: aws.ToString(inst.SubnetId)})
		}
		if ip := aws.ToString(inst.PublicIpAddress); ip != "" {
			network = append(network, models.NetworkInterface{IPAddress: ip, Network: aws.ToString(inst.SubnetId)})
		}
		return network
	}

	for _, ni := range inst.NetworkInterfaces {
		mac := aws.ToString(ni.MacAddress)
		subnet := aws.ToString(ni.SubnetId)

		if ip := aws.ToString(ni.PrivateIpAddress); ip != "" {
			network = append(network, models.NetworkInterface{IPAddress: ip, MACAddress: mac, Network: subnet})
		}
		if ni.Association != nil {
			if ip := aws.ToString(ni.Association.PublicIp); ip != "" {
				network = append(network, models.NetworkInterface{IPAddress: ip, MACAddress: mac, Network: subnet})
			}
		}
	}

	return network
}
