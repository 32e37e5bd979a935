package dashboard_service_api

import (
	"context"

	"github.com/Domenick1991/safaribooking/internal/service/reports"
	"google.golang.org/grpc"
)

const ServiceName = "safaribooking.v1.DashboardService"

const (
	SummaryMethod   = "/" + ServiceName + "/Summary"
	DashboardMethod = "/" + ServiceName + "/Dashboard"
)

type SummaryRequest struct{}

type DashboardRequest struct {
	// Year defaults to the current year when zero.
	Year int `json:"year"`
}

type DashboardServiceServer interface {
	Summary(ctx context.Context, req *SummaryRequest) (*reports.Summary, error)
	Dashboard(ctx context.Context, req *DashboardRequest) (*reports.Dashboard, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DashboardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Summary", Handler: summaryHandler},
		{MethodName: "Dashboard", Handler: dashboardHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "safaribooking/v1/dashboard",
}

func RegisterDashboardServiceServer(s grpc.ServiceRegistrar, srv DashboardServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func summaryHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SummaryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).Summary(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SummaryMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DashboardServiceServer).Summary(ctx, req.(*SummaryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func dashboardHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DashboardRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).Dashboard(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DashboardMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DashboardServiceServer).Dashboard(ctx, req.(*DashboardRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls the dashboard service over a connection that forces JSONCodec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// CallOptions must be passed to every call, or set as the connection's defaults.
func CallOptions() []grpc.CallOption {
	return []grpc.CallOption{grpc.ForceCodec(JSONCodec{})}
}

func (c *Client) Summary(ctx context.Context, opts ...grpc.CallOption) (*reports.Summary, error) {
	out := new(reports.Summary)
	if err := c.cc.Invoke(ctx, SummaryMethod, &SummaryRequest{}, out, append(CallOptions(), opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Dashboard(ctx context.Context, year int, opts ...grpc.CallOption) (*reports.Dashboard, error) {
	out := new(reports.Dashboard)
	if err := c.cc.Invoke(ctx, DashboardMethod, &DashboardRequest{Year: year}, out, append(CallOptions(), opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}
