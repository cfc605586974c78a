package engine

import (
	"log/slog"
	"slices"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/ekisa-team/sample/internal/config"
	"github.com/ekisa-team/sample/internal/core"
)

// Registry stores the contexts known to the engine, keyed by name.
type Registry struct {
	contexts *xsync.Map[string, *core.Context]
	logger   *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the registry logger (slog.Default by default).
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = l
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		contexts: xsync.NewMap[string, *core.Context](),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Load replaces the registry contents with the contexts declared in cfg.
// Nothing is changed if any context is invalid.
func (r *Registry) Load(cfg *config.Config) error {
	if cfg == nil {
		return core.InvalidInput("config must not be nil")
	}

	next := make(map[string]*core.Context)
	for _, cc := range cfg.ContextConfigs() {
		c, err := core.NewContext(cc)
		if err != nil {
			return err
		}

		if _, dup := next[c.Name()]; dup {
			return core.InvalidInput("duplicate context: " + c.Name())
		}
		next[c.Name()] = c
	}

	r.contexts.Range(func(name string, _ *core.Context) bool {
		if _, keep := next[name]; !keep {
			r.contexts.Delete(name)
			r.logger.Info("Context removed from registry", "context", name)
		}
		return true
	})

	for name, c := range next {
		r.contexts.Store(name, c)
	}

	r.logger.Debug("Registry loaded", "contexts", len(next))
	return nil
}

// Get returns the context with the given name.
func (r *Registry) Get(name string) (*core.Context, error) {
	c, ok := r.contexts.Load(name)
	if !ok {
		return nil, core.NotFound("context " + name)
	}

	return c, nil
}

// Names returns the registered context names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.contexts.Size())
	r.contexts.Range(func(name string, _ *core.Context) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)

	return names
}

// Len returns the number of registered contexts.
func (r *Registry) Len() int {
	return r.contexts.Size()
}
