package normalizer

import "github.com/kubev2v/migration-discovery/internal/models"

var awsStates = map[string]string{
	"running":       models.StateRunning,
	"stopped":       models.StateStopped,
	"terminated":    models.StateStopped,
	"pending":       models.StateUnknown,
	"stopping":      models.StateUnknown,
	"shutting-down": models.StateUnknown,
}

var azureStates = map[string]string{
	"PowerState/running":      models.StateRunning,
	"PowerState/stopped":      models.StateStopped,
	"PowerState/deallocated":  models.StateStopped,
	"PowerState/starting":     models.StateUnknown,
	"PowerState/stopping":     models.StateUnknown,
	"PowerState/deallocating": models.StateUnknown,
	"PowerState/unknown":      models.StateUnknown,
}

var vsphereStates = map[string]string{
	"poweredOn":  models.StateRunning,
	"poweredOff": models.StateStopped,
	"suspended":  models.StateStopped,
}

func canonicalState(table map[string]string, native string) string {
	if native == "" {
		return ""
	}
	if s, ok := table[native]; ok {
		return s
	}
	return native
}

func newResource(provider models.Provider, id string, raw any) models.Resource {
	return models.Resource{
		ID:       id,
		Provider: provider,
		Kind:     models.ResourceKindComputeInstance,
		Network:  []models.NetworkInterface{},
		Tags:     map[string]string{},
		Raw:      raw,
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
