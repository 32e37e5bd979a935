package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Domenick1991/safaribooking/internal/domain"
	"github.com/Domenick1991/safaribooking/internal/store"
	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*ReportService, *store.Store) {
	t.Helper()
	st, err := store.New(store.WithPasswordCost(bcrypt.MinCost))
	require.NoError(t, err)
	return NewReportService(st, WithClock(func() time.Time { return fixedNow })), st
}

func TestReportService_Summary(t *testing.T) {
	svc, _ := newTestService(t)

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, sum.TotalRevenue.Equal(decimal.NewFromInt(690)))
	assert.Equal(t, 2, sum.TotalBookings)
	assert.Equal(t, 1, sum.ConfirmedBookings)
	assert.Equal(t, 1, sum.PendingBookings)
}

func TestReportService_Dashboard(t *testing.T) {
	svc, _ := newTestService(t)

	d, err := svc.Dashboard(context.Background(), 2024)
	require.NoError(t, err)

	assert.Equal(t, []Count{
		{Name: "confirmed", Value: 1},
		{Name: "pending", Value: 1},
		{Name: "completed", Value: 0},
		{Name: "cancelled", Value: 0},
	}, d.StatusDistribution)

	require.Len(t, d.MonthlyRevenue, 12)
	assert.Equal(t, "Feb", d.MonthlyRevenue[1].Month)
	assert.True(t, d.MonthlyRevenue[1].Revenue.Equal(decimal.NewFromInt(690)))
	assert.True(t, d.MonthlyRevenue[0].Revenue.IsZero())

	require.Len(t, d.RecentBookings, 2)
	assert.Equal(t, "BK002", d.RecentBookings[0].BookingNumber)
	assert.Equal(t, "Michael Smith", d.RecentBookings[0].GuestName)
	assert.Equal(t, "BK001", d.RecentBookings[1].BookingNumber)
}

func TestReportService_Dashboard_DefaultsToCurrentYear(t *testing.T) {
	svc, _ := newTestService(t)

	d, err := svc.Dashboard(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year)

	other, err := svc.Dashboard(context.Background(), 2025)
	require.NoError(t, err)
	for _, m := range other.MonthlyRevenue {
		assert.True(t, m.Revenue.IsZero(), m.Month)
	}
}

func TestReportService_Dashboard_RecentLimitAndMissingGuest(t *testing.T) {
	svc, st := newTestService(t)

	for i := 0; i < 6; i++ {
		st.Bookings.Add(domain.Booking{
			BookingNumber:  "BKX",
			GuestID:        "gone",
			ExcursionID:    "1",
			TourDate:       domain.NewDate(2024, time.July, 1),
			NumberOfGuests: 1,
			Status:         domain.BookingStatusPending,
			PaymentStatus:  domain.PaymentStatusUnpaid,
		})
	}

	d, err := svc.Dashboard(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, d.RecentBookings, 5)
	assert.Equal(t, "N/A", d.RecentBookings[0].GuestName)
}

func TestReportService_Report(t *testing.T) {
	svc, st := newTestService(t)

	st.Agents.Add(domain.Agent{Name: "Idle Agent", Email: "idle@safari.com", Commission: decimal.NewFromInt(5)})

	r, err := svc.Report(context.Background(), 2024)
	require.NoError(t, err)

	require.Len(t, r.AgentRevenue, 3)
	assert.Equal(t, "John Safari", r.AgentRevenue[0].Name)
	assert.True(t, r.AgentRevenue[0].Revenue.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, 1, r.AgentRevenue[0].Bookings)
	assert.Equal(t, "Jane Adventure", r.AgentRevenue[1].Name)
	assert.True(t, r.AgentRevenue[1].Revenue.Equal(decimal.NewFromInt(240)))
	assert.Equal(t, "Idle Agent", r.AgentRevenue[2].Name)
	assert.True(t, r.AgentRevenue[2].Revenue.IsZero())

	require.Len(t, r.BookingTrend, 12)
	assert.Equal(t, 2, r.BookingTrend[1].Bookings)

	assert.Equal(t, []Count{
		{Name: "paid", Value: 1},
		{Name: "partially_paid", Value: 1},
		{Name: "unpaid", Value: 0},
	}, r.PaymentStatus)
}

func TestReportService_ExportJSON_DanglingReferences(t *testing.T) {
	svc, st := newTestService(t)
	require.True(t, st.Guests.Delete("1"))

	out, err := svc.Export(context.Background(), "json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", out.ContentType)
	assert.Equal(t, "booking_report_1717243200000.json", out.Filename)

	var doc struct {
		GeneratedDate string `json:"generated_date"`
		TotalBookings int    `json:"total_bookings"`
		TotalGuests   int    `json:"total_guests"`
		Bookings      []struct {
			BookingNumber string          `json:"booking_number"`
			Guest         json.RawMessage `json:"guest"`
			Agent         json.RawMessage `json:"agent"`
		} `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(out.Body, &doc))

	assert.Equal(t, "2024-06-01", doc.GeneratedDate)
	assert.Equal(t, 2, doc.TotalBookings)
	assert.Equal(t, 1, doc.TotalGuests)
	require.Len(t, doc.Bookings, 2)
	assert.Equal(t, "null", string(doc.Bookings[0].Guest))
	assert.NotEqual(t, "null", string(doc.Bookings[0].Agent))
	assert.Contains(t, string(doc.Bookings[1].Guest), "Michael")
}

func TestReportService_ExportPDF(t *testing.T) {
	svc, _ := newTestService(t)

	out, err := svc.Export(context.Background(), "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.Equal(t, "booking_report_1717243200000.pdf", out.Filename)
	assert.True(t, len(out.Body) > 4)
	assert.Equal(t, "%PDF", string(out.Body[:4]))
}

func TestRenderPDF_NonASCIINames(t *testing.T) {
	doc := ExportDocument{
		GeneratedDate: domain.DateOf(fixedNow),
		Bookings: []ExportBooking{{
			Booking: domain.Booking{BookingNumber: "BK100", TourDate: domain.NewDate(2024, time.July, 1), NumberOfGuests: 2},
			Guest:   &domain.Guest{FirstName: "Jürgen", LastName: "Müller"},
			Agent:   &domain.Agent{Name: "Zoë Safaris"},
		}},
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetCompression(false)

	var buf bytes.Buffer
	require.NoError(t, renderPDF(pdf, doc, &buf))

	body := buf.Bytes()
	assert.True(t, bytes.Contains(body, []byte("J\xfcrgen M\xfcller")), "guest name not encoded as cp1252")
	assert.True(t, bytes.Contains(body, []byte("Zo\xeb Safaris")), "agent name not encoded as cp1252")
	assert.False(t, bytes.Contains(body, []byte("Müller")))
}

func TestReportService_Export_UnknownFormat(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Export(context.Background(), "xlsx")
	assert.True(t, domain.IsValidation(err))
}
