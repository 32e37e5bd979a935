package dashboard_service_api

import (
	"context"
	"strings"

	"github.com/Domenick1991/safaribooking/internal/domain"
	"github.com/Domenick1991/safaribooking/internal/service/reports"
	"github.com/Domenick1991/safaribooking/internal/service/users"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Server exposes the dashboard aggregates over gRPC.
type Server struct {
	reports reports.ReportUseCase
}

func NewServer(reports reports.ReportUseCase) *Server {
	return &Server{reports: reports}
}

func (s *Server) Summary(ctx context.Context, _ *SummaryRequest) (*reports.Summary, error) {
	sum, err := s.reports.Summary(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &sum, nil
}

func (s *Server) Dashboard(ctx context.Context, req *DashboardRequest) (*reports.Dashboard, error) {
	if req.Year < 0 {
		return nil, status.Error(codes.InvalidArgument, "year must not be negative")
	}
	d, err := s.reports.Dashboard(ctx, req.Year)
	if err != nil {
		return nil, toStatus(err)
	}
	return d, nil
}

// AuthInterceptor requires a live bearer token in the "authorization" metadata.
func AuthInterceptor(verifier users.AuthUseCase) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing bearer token")
		}
		token, found := strings.CutPrefix(values[0], "Bearer ")
		if !found || token == "" {
			return nil, status.Error(codes.Unauthenticated, "missing bearer token")
		}
		if _, err := verifier.Verify(ctx, token); err != nil {
			return nil, toStatus(err)
		}
		return handler(ctx, req)
	}
}

func toStatus(err error) error {
	switch {
	case domain.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case domain.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case domain.IsUnauthorized(err):
		return status.Error(codes.Unauthenticated, err.Error())
	case domain.IsConflict(err):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

var _ DashboardServiceServer = (*Server)(nil)
