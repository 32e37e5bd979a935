// Package reports derives the dashboard, the management report and the
// downloadable exports from the current store contents.
package reports

import (
	"context"
	"slices"
	"time"

	"github.com/Domenick1991/safaribooking/internal/domain"
	"github.com/Domenick1991/safaribooking/internal/store"
	"github.com/shopspring/decimal"
)

const recentBookings = 5

type ReportUseCase interface {
	Summary(ctx context.Context) (Summary, error)
	Dashboard(ctx context.Context, year int) (*Dashboard, error)
	Report(ctx context.Context, year int) (*Report, error)
	Export(ctx context.Context, format string) (*Export, error)
}

type Summary struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalBookings     int             `json:"total_bookings"`
	ConfirmedBookings int             `json:"confirmed_bookings"`
	PendingBookings   int             `json:"pending_bookings"`
}

type Count struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type MonthRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

type MonthBookings struct {
	Month    string `json:"month"`
	Bookings int    `json:"bookings"`
}

type RecentBooking struct {
	ID            string               `json:"id"`
	BookingNumber string               `json:"booking_number"`
	GuestName     string               `json:"guest_name"`
	TourDate      domain.Date          `json:"tour_date"`
	TotalPrice    decimal.Decimal      `json:"total_price"`
	Status        domain.BookingStatus `json:"status"`
}

type Dashboard struct {
	Year int `json:"year"`
	Summary
	StatusDistribution []Count         `json:"status_distribution"`
	MonthlyRevenue     []MonthRevenue  `json:"monthly_revenue"`
	RecentBookings     []RecentBooking `json:"recent_bookings"`
}

type AgentRevenue struct {
	AgentID    string          `json:"agent_id"`
	Name       string          `json:"name"`
	Bookings   int             `json:"bookings"`
	Revenue    decimal.Decimal `json:"revenue"`
	Commission decimal.Decimal `json:"commission"`
}

type Report struct {
	Year int `json:"year"`
	Summary
	AgentRevenue  []AgentRevenue  `json:"agent_revenue"`
	BookingTrend  []MonthBookings `json:"booking_trend"`
	PaymentStatus []Count         `json:"payment_status"`
}

type ReportService struct {
	store *store.Store
	now   func() time.Time
}

type Option func(*ReportService)

func WithClock(now func() time.Time) Option {
	return func(s *ReportService) {
		s.now = now
	}
}

func NewReportService(st *store.Store, opts ...Option) *ReportService {
	s := &ReportService{store: st, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ReportService) Summary(_ context.Context) (Summary, error) {
	return s.summary(), nil
}

// Dashboard reports on year; zero means the current year.
func (s *ReportService) Dashboard(_ context.Context, year int) (*Dashboard, error) {
	year = s.year(year)
	bookings := s.store.Bookings.List()

	d := &Dashboard{
		Year:           year,
		Summary:        s.summary(),
		MonthlyRevenue: make([]MonthRevenue, 0, 12),
		RecentBookings: make([]RecentBooking, 0, recentBookings),
	}
	for _, status := range domain.BookingStatuses {
		d.StatusDistribution = append(d.StatusDistribution, Count{Name: string(status), Value: s.store.CountByStatus(status)})
	}

	// Revenue is attributed to the tour month, not the payment date.
	for m := time.January; m <= time.December; m++ {
		revenue := decimal.Zero
		for _, b := range s.store.BookingsByMonth(m, year) {
			revenue = revenue.Add(s.store.PaidTotal(b.ID))
		}
		d.MonthlyRevenue = append(d.MonthlyRevenue, MonthRevenue{Month: monthLabel(m), Revenue: revenue})
	}

	for i := len(bookings) - 1; i >= 0 && len(d.RecentBookings) < recentBookings; i-- {
		b := bookings[i]
		guest := "N/A"
		if g, ok := s.store.Guests.Get(b.GuestID); ok {
			guest = g.FullName()
		}
		d.RecentBookings = append(d.RecentBookings, RecentBooking{
			ID:            b.ID,
			BookingNumber: b.BookingNumber,
			GuestName:     guest,
			TourDate:      b.TourDate,
			TotalPrice:    b.TotalPrice,
			Status:        b.Status,
		})
	}
	return d, nil
}

func (s *ReportService) Report(_ context.Context, year int) (*Report, error) {
	year = s.year(year)
	bookings := s.store.Bookings.List()

	r := &Report{
		Year:         year,
		Summary:      s.summary(),
		AgentRevenue: make([]AgentRevenue, 0),
		BookingTrend: make([]MonthBookings, 0, 12),
	}

	for _, a := range s.store.Agents.List() {
		row := AgentRevenue{AgentID: a.ID, Name: a.Name, Revenue: decimal.Zero, Commission: a.Commission}
		for _, b := range bookings {
			if b.AgentID != a.ID {
				continue
			}
			row.Bookings++
			row.Revenue = row.Revenue.Add(s.store.PaidTotal(b.ID))
		}
		r.AgentRevenue = append(r.AgentRevenue, row)
	}
	slices.SortStableFunc(r.AgentRevenue, func(a, b AgentRevenue) int {
		return b.Revenue.Cmp(a.Revenue)
	})

	for m := time.January; m <= time.December; m++ {
		r.BookingTrend = append(r.BookingTrend, MonthBookings{Month: monthLabel(m), Bookings: len(s.store.BookingsByMonth(m, year))})
	}
	for _, status := range domain.PaymentStatuses {
		r.PaymentStatus = append(r.PaymentStatus, Count{Name: string(status), Value: s.store.CountByPaymentStatus(status)})
	}
	return r, nil
}

func (s *ReportService) summary() Summary {
	return Summary{
		TotalRevenue:      s.store.TotalRevenue(),
		TotalBookings:     s.store.TotalBookings(),
		ConfirmedBookings: s.store.ConfirmedBookings(),
		PendingBookings:   s.store.PendingBookings(),
	}
}

func (s *ReportService) year(year int) int {
	if year <= 0 {
		return s.now().Year()
	}
	return year
}

func monthLabel(m time.Month) string {
	return m.String()[:3]
}

var _ ReportUseCase = (*ReportService)(nil)
