package models

import (
	"time"
)

// EnumerationSpec lists the scan units of one provider.
// Only the field matching the provider is read.
type EnumerationSpec struct {
	// Regions are AWS region names.
	Regions []string
	// SubscriptionIDs are Azure subscription ids.
	SubscriptionIDs []string
	// Endpoints are vCenter root urls.
	Endpoints []string
}

// Target is one provider and the units to scan on it.
type Target struct {
	Provider Provider
	Spec     EnumerationSpec
}

// DiscoveryRequest describes one discovery invocation.
type DiscoveryRequest struct {
	Targets []Target
	Config  AdapterConfig
	// MaxConcurrency bounds the units running at once. Zero or less runs every unit at once.
	MaxConcurrency int
	// Timeout bounds the whole run. Zero means no timeout.
	Timeout time.Duration
	// UnitTimeout bounds each unit. Zero means no timeout.
	UnitTimeout time.Duration
}

func (r DiscoveryRequest) Providers() []Provider {
	providers := make([]Provider, 0, len(r.Targets))
	for _, t := range r.Targets {
		providers = append(providers, t.Provider)
	}
	return providers
}

// AdapterConfig carries provider credentials and endpoints. It is opaque to
// the orchestrator and handed as is to the adapter constructors.
type AdapterConfig struct {
	AWS     AWSConfig     `json:"aws"`
	Azure   AzureConfig   `json:"azure"`
	VSphere VSphereConfig `json:"vsphere"`
}

type AWSConfig struct {
	Profile         string `json:"profile,omitempty"`
	AccessKeyID     string `json:"accessKeyId,omitempty"`
	SecretAccessKey string `json:"secretAccessKey,omitempty"`
	SessionToken    string `json:"sessionToken,omitempty"`
	// Endpoint overrides the EC2 endpoint url.
	Endpoint string `json:"endpoint,omitempty"`
	// RequestsPerSecond paces DescribeInstances pages. Zero disables pacing.
	RequestsPerSecond float64 `json:"requestsPerSecond,omitempty"`
}

func (c AWSConfig) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

type AzureConfig struct {
	TenantID     string `json:"tenantId,omitempty"`
	ClientID     string `json:"clientId,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
	// RequestsPerSecond paces list pages. Zero disables pacing.
	RequestsPerSecond float64 `json:"requestsPerSecond,omitempty"`
}

func (c AzureConfig) HasClientSecret() bool {
	return c.TenantID != "" && c.ClientID != "" && c.ClientSecret != ""
}

type VSphereConfig struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Insecure bool   `json:"insecure,omitempty"`
}

// Merge returns c with every empty provider section taken from fallback.
func (c AdapterConfig) Merge(fallback AdapterConfig) AdapterConfig {
	if c.AWS == (AWSConfig{}) {
		c.AWS = fallback.AWS
	}
	if c.Azure == (AzureConfig{}) {
		c.Azure = fallback.Azure
	}
	if c.VSphere == (VSphereConfig{}) {
		c.VSphere = fallback.VSphere
	}
	return c
}

// DiscoveryStateType represents the current state of the agent discovery.
type DiscoveryStateType string

const (
	// DiscoveryStateReady - waiting for a discovery request
	DiscoveryStateReady DiscoveryStateType = "ready"
	// DiscoveryStateRunning - scan units are being executed
	DiscoveryStateRunning DiscoveryStateType = "running"
	// DiscoveryStateCompleted - last discovery stored a catalog
	DiscoveryStateCompleted DiscoveryStateType = "completed"
	// DiscoveryStateError - last discovery could not produce a catalog
	DiscoveryStateError DiscoveryStateType = "error"
)

// DiscoveryStatus holds the current discovery state and metadata.
type DiscoveryStatus struct {
	State     DiscoveryStateType
	CatalogID string
	StartedAt time.Time
	Error     error
}
