// Package grpc exposes the standard gRPC health and reflection services
// for a running engine.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported for the engine.
const ServiceName = "sample.Engine"

// Server serves health checks for the engine.
type Server struct {
	srv    *grpc.Server
	health *health.Server
}

// NewServer creates a server whose engine service starts as NOT_SERVING.
func NewServer() *Server {
	srv := grpc.NewServer()
	h := health.NewServer()

	healthpb.RegisterHealthServer(srv, h)
	reflection.Register(srv)

	h.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &Server{
		srv:    srv,
		health: h,
	}
}

// SetServing updates the engine health status.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	s.health.SetServingStatus(ServiceName, status)
	slog.Info("Health status updated", "service", ServiceName, "status", status.String())
}

// Serve serves on lis until ctx is canceled, then stops gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(lis)
	}()

	slog.Info("gRPC server listening", "addr", lis.Addr().String())

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.srv.GracefulStop()
		<-errCh
		slog.Info("gRPC server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("grpc: serve failed: %w", err)
	}
}

// ListenAndServe listens on the given TCP port and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	var lc net.ListenConfig
	lis, err := lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("grpc: failed to listen on port %d: %w", port, err)
	}

	return s.Serve(ctx, lis)
}
