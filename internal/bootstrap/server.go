package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/safaribooking/config"
	dashboardapi "github.com/Domenick1991/safaribooking/internal/api/dashboard_service_api"
	"google.golang.org/grpc"
)

const shutdownTimeout = 5 * time.Second

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
}

// Run starts the gRPC dashboard service and the HTTP API and blocks until ctx
// is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler, dashboard dashboardapi.DashboardServiceServer, opts ...grpc.ServerOption) error {
	s := newServers(cfg, handler, dashboard, opts...)

	grpcLis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	httpLis, err := net.Listen("tcp", cfg.HTTP.Address)
	if err != nil {
		grpcLis.Close()
		return fmt.Errorf("listen HTTP %s: %w", cfg.HTTP.Address, err)
	}
	return s.serve(ctx, grpcLis, httpLis)
}

func newServers(cfg *config.Config, handler http.Handler, dashboard dashboardapi.DashboardServiceServer, opts ...grpc.ServerOption) *Servers {
	grpcSrv := grpc.NewServer(append([]grpc.ServerOption{grpc.ForceServerCodec(dashboardapi.JSONCodec{})}, opts...)...)
	dashboardapi.RegisterDashboardServiceServer(grpcSrv, dashboard)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: httpSrv,
	}
}

func (s *Servers) serve(ctx context.Context, grpcLis, httpLis net.Listener) error {
	errCh := make(chan error, 2)

	go func() {
		log.Printf("[BOOTSTRAP] grpc listening addr=%s", grpcLis.Addr())
		errCh <- s.grpcServer.Serve(grpcLis)
	}()
	go func() {
		log.Printf("[BOOTSTRAP] http listening addr=%s", httpLis.Addr())
		if err := s.httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.grpcServer.Stop()
		_ = s.httpServer.Close()
		return err
	case <-ctx.Done():
		log.Printf("[BOOTSTRAP] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
