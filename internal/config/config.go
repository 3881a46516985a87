package config

import (
	"time"

	"github.com/creasty/defaults"

	"github.com/kubev2v/migration-discovery/internal/models"
)

type Server struct {
	HTTPPort   int    `default:"8000" validate:"min=1,max=65535"`
	ServerMode string `default:"dev" validate:"oneof=dev prod"`
}

type Agent struct {
	// DataFolder holds the catalog database and the stored credentials.
	// Empty keeps catalogs in memory and disables stored credentials.
	DataFolder string
	// Retention is the number of catalogs kept. Zero keeps every catalog.
	Retention int `default:"10" validate:"min=0"`
	// DatabaseThreads caps the DuckDB worker threads. Zero keeps the DuckDB default.
	DatabaseThreads int `validate:"min=0"`
	// DatabaseMemoryLimit is a DuckDB size such as "512MB". Empty keeps the DuckDB default.
	DatabaseMemoryLimit string `validate:"omitempty,alphanum"`
}

type Discovery struct {
	Regions         []string
	SubscriptionIDs []string
	Endpoints       []string
	MaxConcurrency  int           `default:"8" validate:"min=0"`
	Timeout         time.Duration `validate:"min=0"`
	UnitTimeout     time.Duration `validate:"min=0"`
}

type AWS struct {
	Profile           string
	Endpoint          string
	RequestsPerSecond float64 `validate:"min=0"`
}

type Azure struct {
	TenantID          string
	ClientID          string
	ClientSecret      string
	RequestsPerSecond float64 `validate:"min=0"`
}

type VSphere struct {
	Username string
	Password string
	Insecure bool
}

type Publisher struct {
	URL   string `validate:"omitempty,url"`
	Token string
}

type Logging struct {
	Level  string `default:"info" validate:"oneof=debug info warn error"`
	Format string `default:"console" validate:"oneof=console json"`
}

type Configuration struct {
	Server    Server
	Agent     Agent
	Discovery Discovery
	AWS       AWS
	Azure     Azure
	VSphere   VSphere
	Publisher Publisher
	Logging   Logging
}

type ConfigurationOption func(*Configuration)

func WithServerMode(mode string) ConfigurationOption {
	return func(c *Configuration) {
		c.Server.ServerMode = mode
	}
}

func WithDataFolder(folder string) ConfigurationOption {
	return func(c *Configuration) {
		c.Agent.DataFolder = folder
	}
}

func NewConfigurationWithOptionsAndDefaults(opts ...ConfigurationOption) *Configuration {
	c := &Configuration{}
	if err := defaults.Set(c); err != nil {
		panic(err)
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

// AdapterConfig returns the provider settings handed to the adapters.
func (c *Configuration) AdapterConfig() models.AdapterConfig {
	return models.AdapterConfig{
		AWS: models.AWSConfig{
			Profile:           c.AWS.Profile,
			Endpoint:          c.AWS.Endpoint,
			RequestsPerSecond: c.AWS.RequestsPerSecond,
		},
		Azure: models.AzureConfig{
			TenantID:          c.Azure.TenantID,
			ClientID:          c.Azure.ClientID,
			ClientSecret:      c.Azure.ClientSecret,
			RequestsPerSecond: c.Azure.RequestsPerSecond,
		},
		VSphere: models.VSphereConfig{
			Username: c.VSphere.Username,
			Password: c.VSphere.Password,
			Insecure: c.VSphere.Insecure,
		},
	}
}

// Targets lists one target per provider with at least one configured unit.
func (c *Configuration) Targets() []models.Target {
	var targets []models.Target
	if len(c.Discovery.Regions) > 0 {
		targets = append(targets, models.Target{Provider: models.ProviderAWS, Spec: models.EnumerationSpec{Regions: c.Discovery.Regions}})
	}
	if len(c.Discovery.SubscriptionIDs) > 0 {
		targets = append(targets, models.Target{Provider: models.ProviderAzure, Spec: models.EnumerationSpec{SubscriptionIDs: c.Discovery.SubscriptionIDs}})
	}
	if len(c.Discovery.Endpoints) > 0 {
		targets = append(targets, models.Target{Provider: models.ProviderVMware, Spec: models.EnumerationSpec{Endpoints: c.Discovery.Endpoints}})
	}
	return targets
}

// DiscoveryRequest builds the request of a one-shot scan.
func (c *Configuration) DiscoveryRequest() models.DiscoveryRequest {
	return models.DiscoveryRequest{
		Targets:        c.Targets(),
		Config:         c.AdapterConfig(),
		MaxConcurrency: c.Discovery.MaxConcurrency,
		Timeout:        c.Discovery.Timeout,
		UnitTimeout:    c.Discovery.UnitTimeout,
	}
}
