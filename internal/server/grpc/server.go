// Package grpc runs the standard grpc.health.v1 service so orchestrators can
// probe the marketplace server.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/umkmhub/marketplace/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the named service reported next to the overall "" entry.
const ServiceName = "marketplace"

// Pinger is implemented by the repository manager.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthServer struct {
	address  string
	pinger   Pinger
	logger   logging.Logger
	interval time.Duration
	health   *health.Server
}

func NewHealthServer(address string, pinger Pinger, l logging.Logger) *HealthServer {
	return &HealthServer{
		address:  address,
		pinger:   pinger,
		logger:   l.With("module", "grpc_health"),
		interval: 10 * time.Second,
		health:   health.NewServer(),
	}
}

func (s *HealthServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve answers health checks on lis until ctx is cancelled. The store is
// pinged every interval; once shutdown begins every service reports
// NOT_SERVING.
func (s *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.refresh(ctx)

	stop := make(chan struct{})
	defer close(stop)

	go func() {
		t := time.NewTicker(s.interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info(ctx, "Stopping gRPC health server...")
				s.health.Shutdown()
				srv.GracefulStop()
				return
			case <-stop:
				return
			case <-t.C:
				s.refresh(ctx)
			}
		}
	}()

	s.logger.Info(ctx, "Starting gRPC health server", "address", lis.Addr().String())

	return srv.Serve(lis)
}

func (s *HealthServer) refresh(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.pinger.Ping(pingCtx); err != nil {
		s.logger.Warn(ctx, "store ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
