package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/ekisa-team/sample/internal/config"
	"github.com/ekisa-team/sample/internal/engine"
	grpcserver "github.com/ekisa-team/sample/internal/server/grpc"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Print the engine banner",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			engine.New(engine.WithOutput(cmd.OutOrStdout())).Run()
		},
	}
}

func newProcessCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "process [context]",
		Short: "Process a context (the config's default when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			reg := engine.NewRegistry(engine.WithRegistryLogger(slog.Default()))
			if err := reg.Load(cfg); err != nil {
				return fmt.Errorf("load contexts: %w", err)
			}

			name := cfg.Name
			if len(args) == 1 {
				name = args[0]
			}

			c, err := reg.Get(name)
			if err != nil {
				return err
			}

			engine.New(engine.WithOutput(cmd.OutOrStdout())).Process(c)
			return nil
		},
	}
}

func newContextsCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "contexts",
		Short: "List the configured contexts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			reg := engine.NewRegistry(engine.WithRegistryLogger(slog.Default()))
			if err := reg.Load(cfg); err != nil {
				return fmt.Errorf("load contexts: %w", err)
			}

			for _, name := range reg.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newServeCmd(opts *Options) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the engine, serve health checks and reload on config change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cmd, opts, port)
		},
	}

	cmd.Flags().IntVar(&port, "grpc-port", 0, "gRPC port to listen on (defaults to config or SAMPLE_SERVER_GRPC_PORT)")

	return cmd
}

func serve(ctx context.Context, cmd *cobra.Command, opts *Options, port int) error {
	if _, err := loadConfig(cmd, opts); err != nil {
		return err
	}

	eng := engine.New(engine.WithOutput(cmd.OutOrStdout()), engine.WithLogger(slog.Default()))
	reg := engine.NewRegistry(engine.WithRegistryLogger(slog.Default()))

	processAll := func() {
		for _, name := range reg.Names() {
			c, err := reg.Get(name)
			if err != nil {
				slog.Warn("Context vanished during processing", "context", name)
				continue
			}
			eng.Process(c)
		}
	}

	watcher, err := config.NewWatcher(opts.ConfigPath, opts.SchemaPath, func(cfg *config.Config, err error) {
		if err != nil {
			slog.Error("Failed to reload config", "error", err)
			return
		}

		if err := reg.Load(cfg); err != nil {
			slog.Error("Failed to load contexts from config", "error", err)
			return
		}

		processAll()
	})
	if err != nil {
		return err
	}

	cfg := watcher.Snapshot()
	if err := reg.Load(cfg); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("load contexts: %w", err)
	}

	if port == 0 {
		port = cfg.GRPCPort()
	}

	eng.Run()
	processAll()

	srv := grpcserver.NewServer()
	srv.SetServing(true)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx, port)
	})
	g.Go(func() error {
		<-gctx.Done()
		return watcher.Close()
	})

	slog.Info("Engine serving", "config", opts.ConfigPath, "contexts", reg.Len(), "grpc_port", port)

	return g.Wait()
}

func newStatusCmd() *cobra.Command {
	var (
		addr    string
		service string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Query the health of a running engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := grpcserver.Dial(addr)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			resp, err := grpcserver.CheckHealth(ctx, conn, service)
			if err != nil {
				return err
			}

			out, err := grpcserver.FormatHealth(resp)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
				return fmt.Errorf("service %s is %s", service, resp.GetStatus())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", fmt.Sprintf("localhost:%d", config.DefaultGRPCPort()), "Address of the engine gRPC server")
	cmd.Flags().StringVar(&service, "service", grpcserver.ServiceName, "Health service name to query")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Health check timeout")

	return cmd
}
