package cmd

import (
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kubev2v/migration-discovery/internal/config"
)

// envPrefix prefixes the environment variables bound to flags: --server-http-port
// is read from DISCOVERY_SERVER_HTTP_PORT.
const envPrefix = "DISCOVERY"

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "discovery",
		Short:         "Discover compute resources across AWS, Azure and vSphere",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		NewScanCommand(config.NewConfigurationWithOptionsAndDefaults()),
		NewRunCommand(config.NewConfigurationWithOptionsAndDefaults()),
	)

	return root
}

// preRunE binds the environment to unset flags, validates the configuration
// and installs the global logger.
func preRunE(cfg *config.Configuration, validate func(*config.Configuration) error) cobrautil.CobraRunFunc {
	return cobrautil.CommandStack(
		bindEnvironment,
		func(cmd *cobra.Command, args []string) error {
			if err := validate(cfg); err != nil {
				return err
			}

			logger, err := newLogger(cfg.Logging)
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(logger)

			return nil
		},
	)
}

func bindEnvironment(cmd *cobra.Command, _ []string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	cobraflags.PresetRequiredFlags(envPrefix, make(map[*pflag.Flag]bool), cmd)
	return nil
}

func registerLoggingFlags(fs *pflag.FlagSet, cfg *config.Configuration) {
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level: debug, info, warn or error")
	fs.StringVar(&cfg.Logging.Format, "log-format", cfg.Logging.Format, "Log format: console or json")
}

// registerProviderFlags registers the scan targets, the provider credentials
// and the run limits.
func registerProviderFlags(fs *pflag.FlagSet, cfg *config.Configuration) {
	fs.StringSliceVar(&cfg.Discovery.Regions, "region", cfg.Discovery.Regions, "AWS region to scan (repeatable)")
	fs.StringSliceVar(&cfg.Discovery.SubscriptionIDs, "subscription-id", cfg.Discovery.SubscriptionIDs, "Azure subscription to scan (repeatable)")
	fs.StringSliceVar(&cfg.Discovery.Endpoints, "endpoint", cfg.Discovery.Endpoints, "vCenter endpoint to scan (repeatable)")
	fs.IntVar(&cfg.Discovery.MaxConcurrency, "max-concurrency", cfg.Discovery.MaxConcurrency, "Maximum number of units scanned at once, 0 for no limit")
	fs.DurationVar(&cfg.Discovery.Timeout, "timeout", cfg.Discovery.Timeout, "Timeout of the whole discovery, 0 for none")
	fs.DurationVar(&cfg.Discovery.UnitTimeout, "unit-timeout", cfg.Discovery.UnitTimeout, "Timeout of each unit, 0 for none")

	fs.StringVar(&cfg.AWS.Profile, "aws-profile", cfg.AWS.Profile, "AWS shared configuration profile")
	fs.StringVar(&cfg.AWS.Endpoint, "aws-endpoint", cfg.AWS.Endpoint, "Custom EC2 endpoint")
	fs.Float64Var(&cfg.AWS.RequestsPerSecond, "aws-requests-per-second", cfg.AWS.RequestsPerSecond, "EC2 request rate per region, 0 for no limit")

	fs.StringVar(&cfg.Azure.TenantID, "azure-tenant-id", cfg.Azure.TenantID, "Azure tenant id")
	fs.StringVar(&cfg.Azure.ClientID, "azure-client-id", cfg.Azure.ClientID, "Azure client id")
	fs.StringVar(&cfg.Azure.ClientSecret, "azure-client-secret", cfg.Azure.ClientSecret, "Azure client secret")
	fs.Float64Var(&cfg.Azure.RequestsPerSecond, "azure-requests-per-second", cfg.Azure.RequestsPerSecond, "ARM request rate per subscription, 0 for no limit")

	fs.StringVar(&cfg.VSphere.Username, "vsphere-username", cfg.VSphere.Username, "vCenter username")
	fs.StringVar(&cfg.VSphere.Password, "vsphere-password", cfg.VSphere.Password, "vCenter password")
	fs.BoolVar(&cfg.VSphere.Insecure, "vsphere-insecure", cfg.VSphere.Insecure, "Skip vCenter certificate verification")
}

func registerPublisherFlags(fs *pflag.FlagSet, cfg *config.Configuration) {
	fs.StringVar(&cfg.Publisher.URL, "publisher-url", cfg.Publisher.URL, "Base URL catalogs are published to")
	fs.StringVar(&cfg.Publisher.Token, "publisher-token", cfg.Publisher.Token, "Token sent as X-Agent-Token when publishing")
}
