package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking ties a guest to an excursion on a tour date. The *ID fields are soft
// references: nothing guarantees the referenced record still exists.
type Booking struct {
	Meta
	BookingNumber  string          `json:"booking_number"`
	GuestID        string          `json:"guest_id"`
	ExcursionID    string          `json:"excursion_id"`
	VehicleID      string          `json:"vehicle_id"`
	AgentID        string          `json:"agent_id"`
	SupplierID     string          `json:"supplier_id"`
	BookingDate    Date            `json:"booking_date"`
	TourDate       Date            `json:"tour_date"`
	NumberOfGuests int             `json:"number_of_guests"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Status         BookingStatus   `json:"status"`
	PaymentStatus  PaymentStatus   `json:"payment_status"`
	Notes          string          `json:"notes"`
}

func (b Booking) Validate() error {
	return firstError(
		required("booking_number", b.BookingNumber),
		required("guest_id", b.GuestID),
		required("excursion_id", b.ExcursionID),
		requiredDate("tour_date", b.TourDate),
		positiveInt("number_of_guests", b.NumberOfGuests),
		nonNegative("total_price", b.TotalPrice),
		validBookingStatus(b.Status),
		validPaymentStatus(b.PaymentStatus),
	)
}

// InMonth reports whether the tour takes place in the given calendar month.
func (b Booking) InMonth(month time.Month, year int) bool {
	return b.TourDate.Month == month && b.TourDate.Year == year
}

type BookingPatch struct {
	BookingNumber  *string          `json:"booking_number,omitempty"`
	GuestID        *string          `json:"guest_id,omitempty"`
	ExcursionID    *string          `json:"excursion_id,omitempty"`
	VehicleID      *string          `json:"vehicle_id,omitempty"`
	AgentID        *string          `json:"agent_id,omitempty"`
	SupplierID     *string          `json:"supplier_id,omitempty"`
	BookingDate    *Date            `json:"booking_date,omitempty"`
	TourDate       *Date            `json:"tour_date,omitempty"`
	NumberOfGuests *int             `json:"number_of_guests,omitempty"`
	TotalPrice     *decimal.Decimal `json:"total_price,omitempty"`
	Status         *BookingStatus   `json:"status,omitempty"`
	PaymentStatus  *PaymentStatus   `json:"payment_status,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
}

func (p BookingPatch) Apply(b *Booking) {
	if p.BookingNumber != nil {
		b.BookingNumber = *p.BookingNumber
	}
	if p.GuestID != nil {
		b.GuestID = *p.GuestID
	}
	if p.ExcursionID != nil {
		b.ExcursionID = *p.ExcursionID
	}
	if p.VehicleID != nil {
		b.VehicleID = *p.VehicleID
	}
	if p.AgentID != nil {
		b.AgentID = *p.AgentID
	}
	if p.SupplierID != nil {
		b.SupplierID = *p.SupplierID
	}
	if p.BookingDate != nil {
		b.BookingDate = *p.BookingDate
	}
	if p.TourDate != nil {
		b.TourDate = *p.TourDate
	}
	if p.NumberOfGuests != nil {
		b.NumberOfGuests = *p.NumberOfGuests
	}
	if p.TotalPrice != nil {
		b.TotalPrice = *p.TotalPrice
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.PaymentStatus != nil {
		b.PaymentStatus = *p.PaymentStatus
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}
}

func (p BookingPatch) Validate() error {
	errs := []error{
		requiredPtr("booking_number", p.BookingNumber),
		requiredPtr("guest_id", p.GuestID),
		requiredPtr("excursion_id", p.ExcursionID),
	}
	if p.TourDate != nil {
		errs = append(errs, requiredDate("tour_date", *p.TourDate))
	}
	if p.NumberOfGuests != nil {
		errs = append(errs, positiveInt("number_of_guests", *p.NumberOfGuests))
	}
	if p.TotalPrice != nil {
		errs = append(errs, nonNegative("total_price", *p.TotalPrice))
	}
	if p.Status != nil {
		errs = append(errs, validBookingStatus(*p.Status))
	}
	if p.PaymentStatus != nil {
		errs = append(errs, validPaymentStatus(*p.PaymentStatus))
	}
	return firstError(errs...)
}

func validBookingStatus(s BookingStatus) error {
	if !s.Valid() {
		return ValidationError{Field: "status", Msg: "must be one of pending, confirmed, completed, cancelled"}
	}
	return nil
}

func validPaymentStatus(s PaymentStatus) error {
	if !s.Valid() {
		return ValidationError{Field: "payment_status", Msg: "must be one of unpaid, partially_paid, paid"}
	}
	return nil
}
