package v1

import (
	"fmt"
	"time"

	"github.com/kubev2v/migration-discovery/internal/models"
)

func NewDiscoveryStatus(status models.DiscoveryStatus) DiscoveryStatus {
	var d DiscoveryStatus

	switch status.State {
	case models.DiscoveryStateRunning:
		d.Status = DiscoveryStatusStatusRunning
	case models.DiscoveryStateCompleted:
		d.Status = DiscoveryStatusStatusCompleted
	case models.DiscoveryStateError:
		d.Status = DiscoveryStatusStatusError
	default:
		d.Status = DiscoveryStatusStatusReady
	}

	if status.CatalogID != "" {
		id := status.CatalogID
		d.CatalogId = &id
	}

	if !status.StartedAt.IsZero() {
		t := status.StartedAt.UTC()
		d.StartedAt = &t
	}

	if status.Error != nil {
		e := status.Error.Error()
		d.Error = &e
	}

	return d
}

// ToModel converts the request body to a discovery request.
// Returns an error when a provider is unknown or a number is negative.
func (r DiscoveryStartRequest) ToModel() (models.DiscoveryRequest, error) {
	var req models.DiscoveryRequest

	for _, t := range r.Targets {
		provider, err := models.ParseProvider(t.Provider)
		if err != nil {
			return req, err
		}
		req.Targets = append(req.Targets, models.Target{
			Provider: provider,
			Spec: models.EnumerationSpec{
				Regions:         t.Regions,
				SubscriptionIDs: t.SubscriptionIds,
				Endpoints:       t.Endpoints,
			},
		})
	}

	if r.Credentials != nil {
		req.Config = *r.Credentials
	}

	if r.MaxConcurrency != nil {
		if *r.MaxConcurrency < 0 {
			return req, fmt.Errorf("maxConcurrency cannot be negative")
		}
		req.MaxConcurrency = *r.MaxConcurrency
	}

	if r.TimeoutSeconds != nil {
		if *r.TimeoutSeconds < 0 {
			return req, fmt.Errorf("timeoutSeconds cannot be negative")
		}
		req.Timeout = time.Duration(*r.TimeoutSeconds) * time.Second
	}

	if r.UnitTimeoutSeconds != nil {
		if *r.UnitTimeoutSeconds < 0 {
			return req, fmt.Errorf("unitTimeoutSeconds cannot be negative")
		}
		req.UnitTimeout = time.Duration(*r.UnitTimeoutSeconds) * time.Second
	}

	return req, nil
}

func NewCatalogSummary(s models.CatalogSummary) CatalogSummary {
	return CatalogSummary{
		Id:             s.ID,
		Source:         s.Source,
		ScanTime:       s.ScanStartTime.UTC(),
		ScanEndTime:    s.ScanEndTime.UTC(),
		ResourceCount:  s.ResourceCount,
		UnitErrorCount: s.UnitErrorCount,
		DroppedRecords: s.DroppedRecords,
	}
}

func NewCatalogListResponse(summaries []models.CatalogSummary) CatalogListResponse {
	resp := CatalogListResponse{Catalogs: make([]CatalogSummary, 0, len(summaries))}
	for _, s := range summaries {
		resp.Catalogs = append(resp.Catalogs, NewCatalogSummary(s))
	}
	return resp
}
