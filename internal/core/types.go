package core

import "strings"

// Config holds the settings of a single processing context.
type Config struct {
	Name string
	Tags []string
}

// Context is the unit of work handed to the engine.
type Context struct {
	Config Config
}

// NewContext validates cfg and wraps it in a Context.
func NewContext(cfg Config) (*Context, error) {
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, InvalidInput("context name must not be blank")
	}

	return &Context{Config: cfg}, nil
}

// Name returns the configured context name, or "" for a nil Context.
func (c *Context) Name() string {
	if c == nil {
		return ""
	}

	return c.Config.Name
}
