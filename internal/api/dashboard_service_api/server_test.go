package dashboard_service_api

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/Domenick1991/safaribooking/internal/auth"
	"github.com/Domenick1991/safaribooking/internal/cache"
	"github.com/Domenick1991/safaribooking/internal/service/reports"
	"github.com/Domenick1991/safaribooking/internal/service/users"
	"github.com/Domenick1991/safaribooking/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func startServer(t *testing.T, withAuth bool) (*Client, *users.UserService) {
	t.Helper()

	st, err := store.New(store.WithPasswordCost(bcrypt.MinCost))
	require.NoError(t, err)
	userService := users.NewUserService(st.Users, auth.NewTokens("grpc-test", time.Hour), cache.NewMemorySessions())

	lis := bufconn.Listen(1 << 20)
	opts := []grpc.ServerOption{grpc.ForceServerCodec(JSONCodec{})}
	if withAuth {
		opts = append(opts, grpc.UnaryInterceptor(AuthInterceptor(userService)))
	}
	srv := grpc.NewServer(opts...)
	RegisterDashboardServiceServer(srv, NewServer(reports.NewReportService(st)))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn), userService
}

func TestServer_Summary(t *testing.T) {
	client, _ := startServer(t, false)

	sum, err := client.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, sum.TotalRevenue.Equal(decimal.NewFromInt(690)))
	assert.Equal(t, 2, sum.TotalBookings)
	assert.Equal(t, 1, sum.ConfirmedBookings)
	assert.Equal(t, 1, sum.PendingBookings)
}

func TestServer_Dashboard(t *testing.T) {
	client, _ := startServer(t, false)

	d, err := client.Dashboard(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year)
	require.Len(t, d.MonthlyRevenue, 12)
	assert.True(t, d.MonthlyRevenue[1].Revenue.Equal(decimal.NewFromInt(690)))
	require.Len(t, d.RecentBookings, 2)
	assert.Equal(t, "BK002", d.RecentBookings[0].BookingNumber)
	assert.Equal(t, "2024-02-10", d.RecentBookings[0].TourDate.String())
}

func TestServer_Dashboard_InvalidYear(t *testing.T) {
	client, _ := startServer(t, false)

	_, err := client.Dashboard(context.Background(), -1)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServer_AuthInterceptor(t *testing.T) {
	client, userService := startServer(t, true)
	ctx := context.Background()

	_, err := client.Summary(ctx)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	bad := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer nonsense")
	_, err = client.Summary(bad)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	session, err := userService.Login(ctx, "admin", "password")
	require.NoError(t, err)
	good := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+session.Token)
	sum, err := client.Summary(good)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TotalBookings)
}
