// Package engine drives processing of named contexts.
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Context is the capability the engine needs from a processing context.
type Context interface {
	// Name returns the printable context name.
	Name() string
}

// Engine writes processing output to a single stream.
type Engine struct {
	out    io.Writer
	logger *slog.Logger
	mu     sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithOutput sets the output stream (stdout by default).
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.out = w
	}
}

// WithLogger sets the logger (slog.Default by default).
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		out:    os.Stdout,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Process writes one line naming c. The name is rendered quoted.
// A nil context, or one without a name, writes nothing.
func (e *Engine) Process(c Context) {
	if c == nil {
		e.logger.Warn("Process called without a context")
		return
	}

	name := c.Name()
	if name == "" {
		e.logger.Warn("Process called with an unnamed context")
		return
	}

	e.println(fmt.Sprintf("Processing with context: %q", name))
	e.logger.Debug("Context processed", "context", name)
}

// Run writes the engine banner.
func (e *Engine) Run() {
	e.println("Engine running")
}

func (e *Engine) println(line string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := fmt.Fprintln(e.out, line); err != nil {
		e.logger.Error("Failed to write engine output", "error", err)
	}
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// stdout forwards to whatever os.Stdout is at write time.
type stdout struct{}

func (stdout) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

// Default returns the process-wide engine bound to stdout.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = New(WithOutput(stdout{}))
	})

	return defaultEngine
}

// Process processes c with the default engine.
func Process(c Context) {
	Default().Process(c)
}

// Run runs the default engine.
func Run() {
	Default().Run()
}
