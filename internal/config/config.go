package config

import (
	"github.com/ekisa-team/sample/internal/core"
)

// Config holds the main configuration for the application.
type Config struct {
	Version  string          `json:"version"            yaml:"version"`
	Name     string          `json:"name"               yaml:"name"`
	Contexts []ContextConfig `json:"contexts,omitempty" yaml:"contexts,omitempty"`
	Log      LogConfig       `json:"log,omitempty"      yaml:"log,omitempty"`
	Server   ServerConfig    `json:"server,omitempty"   yaml:"server,omitempty"`
}

// ContextConfig holds configuration for an additional named context.
type ContextConfig struct {
	Name string   `json:"name"           yaml:"name"`
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `json:"level,omitempty"   yaml:"level,omitempty"` // "debug", "info", "warn", "error"
	File   string `json:"file,omitempty"    yaml:"file,omitempty"`
	ToFile bool   `json:"to_file,omitempty" yaml:"to_file,omitempty"`
}

// ServerConfig holds configuration for the gRPC health server.
type ServerConfig struct {
	GRPCPort int `json:"grpc_port,omitempty" yaml:"grpc_port,omitempty"`
}

// DefaultContext returns the core configuration of the top-level context.
func (c *Config) DefaultContext() core.Config {
	return core.Config{Name: c.Name}
}

// ContextConfigs returns the core configuration of every context, the
// top-level one first.
func (c *Config) ContextConfigs() []core.Config {
	out := make([]core.Config, 0, len(c.Contexts)+1)
	out = append(out, c.DefaultContext())
	for _, cc := range c.Contexts {
		out = append(out, core.Config{Name: cc.Name, Tags: cc.Tags})
	}

	return out
}
