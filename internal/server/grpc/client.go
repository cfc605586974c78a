package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/encoding/protojson"
)

// Dial opens an insecure client connection to addr.
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc: failed to create client for %s: %w", addr, err)
	}

	return conn, nil
}

// CheckHealth queries the health status of service over conn.
func CheckHealth(ctx context.Context, conn grpc.ClientConnInterface, service string) (*healthpb.HealthCheckResponse, error) {
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return nil, fmt.Errorf("grpc: health check failed: %w", err)
	}

	return resp, nil
}

// FormatHealth renders a health response as indented JSON.
func FormatHealth(resp *healthpb.HealthCheckResponse) (string, error) {
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("grpc: failed to encode health response: %w", err)
	}

	return string(data), nil
}
