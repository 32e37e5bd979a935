// Package store holds the booking back office's entity collections in memory.
//
// The store never fails a lookup: absence is reported as (zero, false) or an
// empty slice. Cross-entity ids are soft references and are not checked here.
package store

import (
	"fmt"
	"time"

	"github.com/Domenick1991/safaribooking/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	Agents     *Table[domain.Agent, domain.AgentPatch]
	Suppliers  *Table[domain.Supplier, domain.SupplierPatch]
	Excursions *Table[domain.Excursion, domain.ExcursionPatch]
	Vehicles   *Table[domain.Vehicle, domain.VehiclePatch]
	Guests     *Table[domain.Guest, domain.GuestPatch]
	Bookings   *Table[domain.Booking, domain.BookingPatch]
	Payments   *PaymentLedger
	Users      *UserTable
}

type options struct {
	newID        func() string
	now          func() time.Time
	passwordCost int
	seed         bool
}

type Option func(*options)

// WithIDGenerator replaces the uuid generator. The function must never repeat a value.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		o.newID = fn
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithPasswordCost sets the bcrypt cost used for stored credentials.
func WithPasswordCost(cost int) Option {
	return func(o *options) {
		o.passwordCost = cost
	}
}

// WithoutSeed starts the store empty.
func WithoutSeed() Option {
	return func(o *options) {
		o.seed = false
	}
}

func New(opts ...Option) (*Store, error) {
	o := options{
		newID:        uuid.NewString,
		now:          time.Now,
		passwordCost: bcrypt.DefaultCost,
		seed:         true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{
		Agents:     newTable[domain.Agent, domain.AgentPatch, *domain.Agent](o.newID, o.now),
		Suppliers:  newTable[domain.Supplier, domain.SupplierPatch, *domain.Supplier](o.newID, o.now),
		Excursions: newTable[domain.Excursion, domain.ExcursionPatch, *domain.Excursion](o.newID, o.now),
		Vehicles:   newTable[domain.Vehicle, domain.VehiclePatch, *domain.Vehicle](o.newID, o.now),
		Guests:     newTable[domain.Guest, domain.GuestPatch, *domain.Guest](o.newID, o.now),
		Bookings:   newTable[domain.Booking, domain.BookingPatch, *domain.Booking](o.newID, o.now),
		Payments:   newPaymentLedger(o.newID, o.now),
		Users:      newUserTable(o.newID, o.now, o.passwordCost),
	}

	if o.seed {
		if err := s.seed(); err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}
	return s, nil
}
