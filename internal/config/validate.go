package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the field constraints declared on the configuration.
// The first failing field is reported by its flag name.
func (c *Configuration) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	return fmt.Errorf("invalid %s: %v does not satisfy %q", flagName(fe.Namespace()), fe.Value(), fe.Tag())
}

var flagNames = map[string]string{
	"Configuration.Server.HTTPPort":           "server-http-port",
	"Configuration.Server.ServerMode":         "server-mode",
	"Configuration.Agent.Retention":           "retention",
	"Configuration.Agent.DatabaseThreads":     "db-threads",
	"Configuration.Agent.DatabaseMemoryLimit": "db-memory-limit",
	"Configuration.Discovery.MaxConcurrency":  "max-concurrency",
	"Configuration.Discovery.Timeout":         "timeout",
	"Configuration.Discovery.UnitTimeout":     "unit-timeout",
	"Configuration.AWS.RequestsPerSecond":     "aws-requests-per-second",
	"Configuration.Azure.RequestsPerSecond":   "azure-requests-per-second",
	"Configuration.Publisher.URL":             "publisher-url",
	"Configuration.Logging.Level":             "log-level",
	"Configuration.Logging.Format":            "log-format",
}

func flagName(namespace string) string {
	if name, found := flagNames[namespace]; found {
		return name
	}
	return namespace
}
