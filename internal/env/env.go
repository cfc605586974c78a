package env

import (
	"os"
	"strings"

	"github.com/ekisa-team/sample/internal/envvar"
)

// Environment is the deployment environment the binary runs in.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// Parse maps s to an Environment. Unknown values fall back to Development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prod", "production":
		return Production
	default:
		return Development
	}
}

// FromEnv reads the environment from SAMPLE_ENV.
func FromEnv() Environment {
	return Parse(os.Getenv(envvar.SampleEnv))
}

// IsProduction reports whether e is Production.
func (e Environment) IsProduction() bool {
	return e == Production
}
