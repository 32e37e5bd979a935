package booking

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/safaribooking/internal/domain"
	"github.com/Domenick1991/safaribooking/internal/kafka"
	"github.com/Domenick1991/safaribooking/internal/store"
)

type BookingUseCase interface {
	List(ctx context.Context, query string) ([]domain.Booking, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	Create(ctx context.Context, input domain.Booking) (*domain.Booking, error)
	Update(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	BookingsByMonth(ctx context.Context, month time.Month, year int) ([]domain.Booking, error)

	ListPayments(ctx context.Context, query string) ([]domain.Payment, error)
	PaymentsByBooking(ctx context.Context, bookingID string) ([]domain.Payment, error)
	RecordPayment(ctx context.Context, input domain.Payment) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id string) error
}

type BookingRepository interface {
	List() []domain.Booking
	Get(id string) (domain.Booking, bool)
	Add(b domain.Booking) domain.Booking
	Update(id string, patch domain.BookingPatch) (domain.Booking, bool)
	Delete(id string) bool
}

type PaymentRepository interface {
	List() []domain.Payment
	Get(id string) (domain.Payment, bool)
	ByBooking(bookingID string) []domain.Payment
	Add(p domain.Payment) domain.Payment
	Delete(id string) bool
}

// Lookup resolves a soft reference.
type Lookup[T any] interface {
	Get(id string) (T, bool)
}

type MonthIndex interface {
	BookingsByMonth(month time.Month, year int) []domain.Booking
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	// mu serializes writes so a read-check-write sequence sees no interleaving.
	mu                 sync.Mutex
	bookings           BookingRepository
	payments           PaymentRepository
	guests             Lookup[domain.Guest]
	excursions         Lookup[domain.Excursion]
	vehicles           Lookup[domain.Vehicle]
	agents             Lookup[domain.Agent]
	suppliers          Lookup[domain.Supplier]
	months             MonthIndex
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

// NewBookingService serves bookings and payments from st. A nil producer
// disables events.
func NewBookingService(st *store.Store, producer Producer, eventsTopic string, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings:    st.Bookings,
		payments:    st.Payments,
		guests:      st.Guests,
		excursions:  st.Excursions,
		vehicles:    st.Vehicles,
		agents:      st.Agents,
		suppliers:   st.Suppliers,
		months:      st,
		producer:    producer,
		eventsTopic: eventsTopic,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// List matches query against the booking number and the guest's first name.
func (s *BookingService) List(_ context.Context, query string) ([]domain.Booking, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	rows := s.bookings.List()
	if q == "" {
		return rows, nil
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, b := range rows {
		if strings.Contains(strings.ToLower(b.BookingNumber), q) {
			out = append(out, b)
			continue
		}
		if g, ok := s.guests.Get(b.GuestID); ok && strings.Contains(strings.ToLower(g.FirstName), q) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *BookingService) Get(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := s.bookings.Get(id)
	if !ok {
		return nil, domain.NotFoundError{Resource: "booking", ID: id}
	}
	return &b, nil
}

func (s *BookingService) Create(ctx context.Context, input domain.Booking) (*domain.Booking, error) {
	if input.BookingNumber == "" {
		input.BookingNumber = s.nextBookingNumber()
	}
	if input.Status == "" {
		input.Status = domain.BookingStatusPending
	}
	if input.PaymentStatus == "" {
		input.PaymentStatus = domain.PaymentStatusUnpaid
	}
	if input.BookingDate.IsZero() {
		input.BookingDate = domain.DateOf(s.now())
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkReferences(input); err != nil {
		return nil, err
	}

	created := s.bookings.Add(input)
	log.Printf("[BOOKING] action=create id=%s number=%s status=%s", created.ID, created.BookingNumber, created.Status)

	s.publish(ctx, "booking", "created", created.ID, created)
	if created.Status == domain.BookingStatusConfirmed {
		s.notify(ctx, created)
	}
	return &created, nil
}

// Update merges patch into the booking. Status changes are not restricted to
// any particular order. Only references the patch changes are re-checked.
func (s *BookingService) Update(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.bookings.Get(id)
	if !ok {
		return nil, domain.NotFoundError{Resource: "booking", ID: id}
	}
	merged := current
	patch.Apply(&merged)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkPatchReferences(unchangedReferencesCleared(current, patch)); err != nil {
		return nil, err
	}

	updated, ok := s.bookings.Update(id, patch)
	if !ok {
		return nil, domain.NotFoundError{Resource: "booking", ID: id}
	}
	log.Printf("[BOOKING] action=update id=%s status=%s payment_status=%s", id, updated.Status, updated.PaymentStatus)

	s.publish(ctx, "booking", "updated", id, updated)
	if updated.Status == domain.BookingStatusConfirmed && current.Status != domain.BookingStatusConfirmed {
		s.notify(ctx, updated)
	}
	return &updated, nil
}

// Delete removes the booking only; its payments stay in the ledger.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.bookings.Delete(id) {
		return domain.NotFoundError{Resource: "booking", ID: id}
	}
	log.Printf("[BOOKING] action=delete id=%s", id)
	s.publish(ctx, "booking", "deleted", id, nil)
	return nil
}

func (s *BookingService) BookingsByMonth(_ context.Context, month time.Month, year int) ([]domain.Booking, error) {
	if month < time.January || month > time.December {
		return nil, domain.ValidationError{Field: "month", Msg: "must be between 1 and 12"}
	}
	return s.months.BookingsByMonth(month, year), nil
}

func (s *BookingService) ListPayments(_ context.Context, query string) ([]domain.Payment, error) {
	rows := s.payments.List()
	out := make([]domain.Payment, 0, len(rows))
	for _, p := range rows {
		if p.Matches(query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *BookingService) PaymentsByBooking(_ context.Context, bookingID string) ([]domain.Payment, error) {
	if _, ok := s.bookings.Get(bookingID); !ok {
		return nil, domain.NotFoundError{Resource: "booking", ID: bookingID}
	}
	return s.payments.ByBooking(bookingID), nil
}

// RecordPayment appends to the ledger. The booking's payment_status is left
// for the desk to set.
func (s *BookingService) RecordPayment(ctx context.Context, input domain.Payment) (*domain.Payment, error) {
	if input.PaymentDate.IsZero() {
		input.PaymentDate = domain.DateOf(s.now())
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings.Get(input.BookingID); !ok {
		return nil, domain.NotFoundError{Resource: "booking", ID: input.BookingID}
	}

	created := s.payments.Add(input)
	log.Printf("[PAYMENT] action=record id=%s booking_id=%s amount=%s", created.ID, created.BookingID, created.Amount)

	s.publish(ctx, "payment", "recorded", created.ID, created)
	return &created, nil
}

func (s *BookingService) DeletePayment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.payments.Delete(id) {
		return domain.NotFoundError{Resource: "payment", ID: id}
	}
	log.Printf("[PAYMENT] action=delete id=%s", id)
	s.publish(ctx, "payment", "deleted", id, nil)
	return nil
}

func (s *BookingService) checkReferences(b domain.Booking) error {
	return s.checkPatchReferences(domain.BookingPatch{
		GuestID:     &b.GuestID,
		ExcursionID: &b.ExcursionID,
		VehicleID:   &b.VehicleID,
		AgentID:     &b.AgentID,
		SupplierID:  &b.SupplierID,
	})
}

// checkPatchReferences resolves the references a write sets. Vehicle, agent and
// supplier may be cleared with "".
func (s *BookingService) checkPatchReferences(p domain.BookingPatch) error {
	if p.GuestID != nil && !exists(s.guests, *p.GuestID) {
		return missingReference("guest_id", "guest", *p.GuestID)
	}
	if p.ExcursionID != nil && !exists(s.excursions, *p.ExcursionID) {
		return missingReference("excursion_id", "excursion", *p.ExcursionID)
	}
	if p.VehicleID != nil && *p.VehicleID != "" && !exists(s.vehicles, *p.VehicleID) {
		return missingReference("vehicle_id", "vehicle", *p.VehicleID)
	}
	if p.AgentID != nil && *p.AgentID != "" && !exists(s.agents, *p.AgentID) {
		return missingReference("agent_id", "agent", *p.AgentID)
	}
	if p.SupplierID != nil && *p.SupplierID != "" && !exists(s.suppliers, *p.SupplierID) {
		return missingReference("supplier_id", "supplier", *p.SupplierID)
	}
	return nil
}

// unchangedReferencesCleared drops references the patch repeats from current,
// so a form that re-sends a dangling id does not block the edit.
func unchangedReferencesCleared(current domain.Booking, p domain.BookingPatch) domain.BookingPatch {
	same := func(v *string, stored string) bool { return v != nil && *v == stored }
	if same(p.GuestID, current.GuestID) {
		p.GuestID = nil
	}
	if same(p.ExcursionID, current.ExcursionID) {
		p.ExcursionID = nil
	}
	if same(p.VehicleID, current.VehicleID) {
		p.VehicleID = nil
	}
	if same(p.AgentID, current.AgentID) {
		p.AgentID = nil
	}
	if same(p.SupplierID, current.SupplierID) {
		p.SupplierID = nil
	}
	return p
}

func exists[T any](l Lookup[T], id string) bool {
	_, ok := l.Get(id)
	return ok
}

func missingReference(field, resource, id string) error {
	return domain.ValidationError{Field: field, Msg: fmt.Sprintf("%s %s does not exist", resource, id)}
}

// nextBookingNumber is "BK" plus the last six digits of the millisecond clock.
func (s *BookingService) nextBookingNumber() string {
	ms := fmt.Sprintf("%06d", s.now().UnixMilli())
	return "BK" + ms[len(ms)-6:]
}

func (s *BookingService) publish(ctx context.Context, entity, action, id string, record any) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event, err := kafka.NewEntityEvent(entity, action, id, record)
	if err != nil {
		log.Printf("[BOOKING] action=%s_%s id=%s msg=encode event: %v", entity, action, id, err)
		return
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, id, event); err != nil {
		log.Printf("[BOOKING] action=%s_%s id=%s msg=publish failed: %v", entity, action, id, err)
	}
}

func (s *BookingService) notify(ctx context.Context, b domain.Booking) {
	if s.producer == nil || s.notificationsTopic == "" {
		return
	}
	n := kafka.GuestNotification{
		Type:          "booking_confirmed",
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		TourDate:      b.TourDate.String(),
		Status:        string(b.Status),
	}
	if g, ok := s.guests.Get(b.GuestID); ok {
		n.GuestName = g.FullName()
		n.Email = g.Email
	}
	if e, ok := s.excursions.Get(b.ExcursionID); ok {
		n.Excursion = e.Name
	}
	if n.Email == "" {
		log.Printf("[BOOKING] action=notify id=%s msg=guest has no email, skipping", b.ID)
		return
	}
	if err := s.producer.Publish(ctx, s.notificationsTopic, b.ID, n); err != nil {
		log.Printf("[BOOKING] action=notify id=%s msg=publish failed: %v", b.ID, err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
