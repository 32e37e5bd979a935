package store

import (
	"time"

	"github.com/Domenick1991/safaribooking/internal/domain"
)

type noPatch[T any] struct{}

func (noPatch[T]) Apply(*T) {}

// PaymentLedger records payments. Payments are never edited, only added or removed.
// Adding a payment does not touch the booking's payment status.
type PaymentLedger struct {
	table *Table[domain.Payment, noPatch[domain.Payment]]
}

func newPaymentLedger(newID func() string, now func() time.Time) *PaymentLedger {
	return &PaymentLedger{
		table: newTable[domain.Payment, noPatch[domain.Payment], *domain.Payment](newID, now),
	}
}

func (l *PaymentLedger) List() []domain.Payment {
	return l.table.List()
}

func (l *PaymentLedger) Get(id string) (domain.Payment, bool) {
	return l.table.Get(id)
}

// ByBooking returns the payments recorded against bookingID.
func (l *PaymentLedger) ByBooking(bookingID string) []domain.Payment {
	return l.table.Find(func(p domain.Payment) bool {
		return p.BookingID == bookingID
	})
}

func (l *PaymentLedger) Add(p domain.Payment) domain.Payment {
	return l.table.Add(p)
}

func (l *PaymentLedger) Delete(id string) bool {
	return l.table.Delete(id)
}

func (l *PaymentLedger) Find(pred func(domain.Payment) bool) []domain.Payment {
	return l.table.Find(pred)
}

func (l *PaymentLedger) Len() int {
	return l.table.Len()
}
