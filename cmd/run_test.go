package cmd

import (
	"os"
	"time"

	"github.com/go-extras/cobraflags"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/pflag"

	"github.com/kubev2v/migration-discovery/internal/config"
)

var _ = Describe("Run Command", func() {
	var cfg *config.Configuration

	BeforeEach(func() {
		cfg = config.NewConfigurationWithOptionsAndDefaults()
	})

	Describe("Flag Parsing", func() {
		It("should parse all server flags", func() {
			cmd := NewRunCommand(cfg)

			err := cmd.ParseFlags([]string{
				"--server-http-port", "9000",
				"--server-mode", "prod",
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(cfg.Server.HTTPPort).To(Equal(9000))
			Expect(cfg.Server.ServerMode).To(Equal("prod"))
		})

		It("should parse all agent flags", func() {
			cmd := NewRunCommand(cfg)

			err := cmd.ParseFlags([]string{
				"--data-folder", "/var/data",
				"--retention", "3",
				"--db-threads", "4",
				"--db-memory-limit", "1GB",
				"--log-level", "debug",
				"--log-format", "json",
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(cfg.Agent.DataFolder).To(Equal("/var/data"))
			Expect(cfg.Agent.Retention).To(Equal(3))
			Expect(cfg.Agent.DatabaseThreads).To(Equal(4))
			Expect(cfg.Agent.DatabaseMemoryLimit).To(Equal("1GB"))
			Expect(cfg.Logging.Level).To(Equal("debug"))
			Expect(cfg.Logging.Format).To(Equal("json"))
		})

		It("should parse all discovery and provider flags", func() {
			cmd := NewRunCommand(cfg)

			err := cmd.ParseFlags([]string{
				"--region", "us-east-1",
				"--region", "eu-west-1",
				"--subscription-id", "sub-1",
				"--endpoint", "vc1.example.com",
				"--max-concurrency", "4",
				"--timeout", "10m",
				"--unit-timeout", "1m",
				"--aws-profile", "prod",
				"--aws-requests-per-second", "5",
				"--azure-tenant-id", "tenant",
				"--azure-client-id", "client",
				"--azure-client-secret", "secret",
				"--vsphere-username", "admin",
				"--vsphere-password", "pass",
				"--vsphere-insecure",
				"--publisher-url", "https://console.example.com",
				"--publisher-token", "token",
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(cfg.Discovery.Regions).To(Equal([]string{"us-east-1", "eu-west-1"}))
			Expect(cfg.Discovery.SubscriptionIDs).To(Equal([]string{"sub-1"}))
			Expect(cfg.Discovery.Endpoints).To(Equal([]string{"vc1.example.com"}))
			Expect(cfg.Discovery.MaxConcurrency).To(Equal(4))
			Expect(cfg.Discovery.Timeout).To(Equal(10 * time.Minute))
			Expect(cfg.Discovery.UnitTimeout).To(Equal(time.Minute))
			Expect(cfg.AWS.Profile).To(Equal("prod"))
			Expect(cfg.AWS.RequestsPerSecond).To(Equal(5.0))
			Expect(cfg.Azure.TenantID).To(Equal("tenant"))
			Expect(cfg.Azure.ClientID).To(Equal("client"))
			Expect(cfg.Azure.ClientSecret).To(Equal("secret"))
			Expect(cfg.VSphere.Username).To(Equal("admin"))
			Expect(cfg.VSphere.Password).To(Equal("pass"))
			Expect(cfg.VSphere.Insecure).To(BeTrue())
			Expect(cfg.Publisher.URL).To(Equal("https://console.example.com"))
			Expect(cfg.Publisher.Token).To(Equal("token"))
		})

		It("should use default values when flags are not provided", func() {
			cmd := NewRunCommand(cfg)
			err := cmd.ParseFlags([]string{})
			Expect(err).ToNot(HaveOccurred())

			Expect(cfg.Server.HTTPPort).To(Equal(8000))
			Expect(cfg.Server.ServerMode).To(Equal("dev"))
			Expect(cfg.Agent.DataFolder).To(BeEmpty())
			Expect(cfg.Agent.Retention).To(Equal(10))
			Expect(cfg.Discovery.MaxConcurrency).To(Equal(8))
			Expect(cfg.Discovery.Timeout).To(BeZero())
			Expect(cfg.Logging.Level).To(Equal("info"))
			Expect(cfg.Logging.Format).To(Equal("console"))
		})
	})

	Describe("Environment Variable Binding", func() {
		AfterEach(func() {
			os.Unsetenv("DISCOVERY_SERVER_HTTP_PORT")
			os.Unsetenv("DISCOVERY_SERVER_MODE")
			os.Unsetenv("DISCOVERY_DATA_FOLDER")
			os.Unsetenv("DISCOVERY_RETENTION")
			os.Unsetenv("DISCOVERY_AZURE_CLIENT_SECRET")
			os.Unsetenv("DISCOVERY_VSPHERE_PASSWORD")
			os.Unsetenv("DISCOVERY_PUBLISHER_URL")
		})

		It("should read server and agent configuration from environment variables", func() {
			os.Setenv("DISCOVERY_SERVER_HTTP_PORT", "9001")
			os.Setenv("DISCOVERY_SERVER_MODE", "prod")
			os.Setenv("DISCOVERY_DATA_FOLDER", "/env/data")
			os.Setenv("DISCOVERY_RETENTION", "5")

			cmd := NewRunCommand(cfg)
			err := cmd.ParseFlags([]string{})
			Expect(err).ToNot(HaveOccurred())

			setupViperForEnvVars("DISCOVERY")
			cobraflags.PresetRequiredFlags("DISCOVERY", make(map[*pflag.Flag]bool), cmd)

			Expect(cfg.Server.HTTPPort).To(Equal(9001))
			Expect(cfg.Server.ServerMode).To(Equal("prod"))
			Expect(cfg.Agent.DataFolder).To(Equal("/env/data"))
			Expect(cfg.Agent.Retention).To(Equal(5))
		})

		// Given secrets set in the environment
		// When the flags are bound
		// Then the secrets should reach the configuration without appearing on the command line
		It("should read provider secrets from environment variables", func() {
			os.Setenv("DISCOVERY_AZURE_CLIENT_SECRET", "env-secret")
			os.Setenv("DISCOVERY_VSPHERE_PASSWORD", "env-pass")
			os.Setenv("DISCOVERY_PUBLISHER_URL", "https://env.console.com")

			cmd := NewRunCommand(cfg)
			err := cmd.ParseFlags([]string{})
			Expect(err).ToNot(HaveOccurred())

			setupViperForEnvVars("DISCOVERY")
			cobraflags.PresetRequiredFlags("DISCOVERY", make(map[*pflag.Flag]bool), cmd)

			Expect(cfg.Azure.ClientSecret).To(Equal("env-secret"))
			Expect(cfg.VSphere.Password).To(Equal("env-pass"))
			Expect(cfg.Publisher.URL).To(Equal("https://env.console.com"))
		})

		It("should prefer command line flags over environment variables", func() {
			os.Setenv("DISCOVERY_SERVER_HTTP_PORT", "9001")

			cmd := NewRunCommand(cfg)
			err := cmd.ParseFlags([]string{"--server-http-port", "8080"})
			Expect(err).ToNot(HaveOccurred())

			Expect(cfg.Server.HTTPPort).To(Equal(8080))
		})
	})

	Describe("Configuration Validation", func() {
		It("should pass validation with the default configuration", func() {
			Expect(validateConfiguration(cfg)).To(Succeed())
		})

		It("should fail with invalid server mode", func() {
			cfg.Server.ServerMode = "invalid"
			err := validateConfiguration(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("invalid server-mode"))
		})

		DescribeTable("http-port validation",
			func(port int, valid bool) {
				cfg.Server.HTTPPort = port
				err := validateConfiguration(cfg)
				if valid {
					Expect(err).ToNot(HaveOccurred())
					return
				}
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("invalid server-http-port"))
			},
			Entry("port 0", 0, false),
			Entry("port 1", 1, true),
			Entry("port 65535", 65535, true),
			Entry("port above 65535", 70000, false),
		)

		It("should fail with a negative retention", func() {
			cfg.Agent.Retention = -1
			err := validateConfiguration(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("invalid retention"))
		})

		It("should fail with an invalid publisher url", func() {
			cfg.Publisher.URL = "not a url"
			err := validateConfiguration(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("invalid publisher-url"))
		})

		It("should fail when a publisher token is set without url", func() {
			cfg.Publisher.Token = "token"
			err := validateConfiguration(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("publisher-token requires publisher-url"))
		})

		It("should fail with an invalid log level", func() {
			cfg.Logging.Level = "verbose"
			err := validateConfiguration(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("invalid log-level"))
		})
	})

	Describe("databasePath", func() {
		It("should keep catalogs in memory without a data folder", func() {
			Expect(databasePath("")).To(Equal(":memory:"))
		})

		It("should place the database in the data folder", func() {
			Expect(databasePath("/var/data")).To(Equal("/var/data/discovery.duckdb"))
		})
	})
})
