package store

import (
	"time"

	"github.com/Domenick1991/safaribooking/internal/domain"
	"github.com/shopspring/decimal"
)

// Everything below is recomputed from the current rows on every call.

// TotalRevenue sums every recorded payment.
func (s *Store) TotalRevenue() decimal.Decimal {
	return sumAmounts(s.Payments.List())
}

// PaidTotal sums the payments recorded against one booking.
func (s *Store) PaidTotal(bookingID string) decimal.Decimal {
	return sumAmounts(s.Payments.ByBooking(bookingID))
}

func (s *Store) TotalBookings() int {
	return s.Bookings.Len()
}

func (s *Store) ConfirmedBookings() int {
	return s.CountByStatus(domain.BookingStatusConfirmed)
}

func (s *Store) PendingBookings() int {
	return s.CountByStatus(domain.BookingStatusPending)
}

func (s *Store) CountByStatus(status domain.BookingStatus) int {
	return s.Bookings.Count(func(b domain.Booking) bool {
		return b.Status == status
	})
}

func (s *Store) CountByPaymentStatus(status domain.PaymentStatus) int {
	return s.Bookings.Count(func(b domain.Booking) bool {
		return b.PaymentStatus == status
	})
}

// BookingsByMonth returns the bookings whose tour date falls in month of year.
func (s *Store) BookingsByMonth(month time.Month, year int) []domain.Booking {
	return s.Bookings.Find(func(b domain.Booking) bool {
		return b.InMonth(month, year)
	})
}

func sumAmounts(payments []domain.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
