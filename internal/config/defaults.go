package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/ekisa-team/sample/internal/envvar"
	"github.com/ekisa-team/sample/internal/xfs"
)

const defaultGRPCPort = 50051

// DefaultConfigPath returns the default path for the sample config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "sample", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "sample")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "sample")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "sample")
		}
		return filepath.Join(home, ".config", "sample")
	}
}

// DefaultConfigFile returns the config file path.
// Precedence:
// 1. SAMPLE_CONFIG environment variable.
// 2. config.yaml inside the default config directory.
func DefaultConfigFile() string {
	if p := os.Getenv(envvar.SampleConfig); p != "" {
		return xfs.ExpandTilde(p)
	}

	return filepath.Join(DefaultConfigPath(), "config.yaml")
}

// DefaultGRPCPort returns the gRPC port, honoring SAMPLE_SERVER_GRPC_PORT.
func DefaultGRPCPort() int {
	if v := os.Getenv(envvar.SampleServerGRPCPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			return port
		}
	}

	return defaultGRPCPort
}

// GRPCPort returns the configured gRPC port, or the default.
func (c *Config) GRPCPort() int {
	if c.Server.GRPCPort > 0 {
		return c.Server.GRPCPort
	}

	return DefaultGRPCPort()
}
