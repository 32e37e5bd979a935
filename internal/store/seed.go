package store

import (
	"time"

	"github.com/Domenick1991/safaribooking/internal/domain"
	"github.com/shopspring/decimal"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func meta(id string, created time.Time) domain.Meta {
	return domain.Meta{ID: id, CreatedAt: created}
}

// seed loads the demonstration data set.
func (s *Store) seed() error {
	if err := s.seedUsers(); err != nil {
		return err
	}

	s.Agents.seed(
		domain.Agent{Meta: meta("1", day(2024, time.January, 15)), Name: "John Safari", Email: "john@safari.com", Phone: "+255123456789", Commission: decimal.NewFromInt(15)},
		domain.Agent{Meta: meta("2", day(2024, time.February, 20)), Name: "Jane Adventure", Email: "jane@safari.com", Phone: "+255987654321", Commission: decimal.NewFromInt(12)},
	)

	s.Suppliers.seed(
		domain.Supplier{Meta: meta("1", day(2024, time.January, 10)), Name: "Serengeti Tours Ltd", Email: "info@serengetitours.com", Phone: "+255555555555", BankDetails: "Bank A - Account 123456"},
	)

	s.Excursions.seed(
		domain.Excursion{
			Meta:        meta("1", day(2024, time.January, 1)),
			Name:        "Serengeti National Park Full Day",
			Description: "Experience the vast plains and wildlife of Serengeti",
			Duration:    decimal.NewFromInt(8),
			BasePrice:   decimal.NewFromInt(150),
			MaxCapacity: 6,
		},
		domain.Excursion{
			Meta:        meta("2", day(2024, time.January, 1)),
			Name:        "Ngorongoro Crater Half Day",
			Description: "Explore the eighth wonder of the world",
			Duration:    decimal.NewFromInt(4),
			BasePrice:   decimal.NewFromInt(120),
			MaxCapacity: 6,
		},
		domain.Excursion{
			Meta:        meta("3", day(2024, time.January, 1)),
			Name:        "Lake Nakuru National Park",
			Description: "Spot flamingos and Big Five animals",
			Duration:    decimal.NewFromInt(6),
			BasePrice:   decimal.NewFromInt(100),
			MaxCapacity: 8,
		},
	)

	expiry := domain.NewDate(2026, time.February, 6)
	s.Vehicles.seed(
		domain.Vehicle{Meta: meta("1", day(2023, time.June, 1)), RegistrationNumber: "KEN-001", Model: "Land Cruiser Prado", Driver: "Kamal", ContactNo: "0771428333", Capacity: 6, RevenueLicenseExpiry: expiry, InsuranceExpiry: expiry, Status: domain.VehicleStatusAvailable},
		domain.Vehicle{Meta: meta("2", day(2023, time.June, 1)), RegistrationNumber: "KEN-002", Model: "Toyota Hilux", Driver: "Kamal", ContactNo: "0771428333", Capacity: 8, RevenueLicenseExpiry: expiry, InsuranceExpiry: expiry, Status: domain.VehicleStatusAvailable},
		// Listed as "expired" in the legacy fleet sheet; off the road until renewed.
		domain.Vehicle{Meta: meta("3", day(2023, time.June, 1)), RegistrationNumber: "KEN-003", Model: "Land Cruiser V8", Driver: "Amal", ContactNo: "0771428333", Capacity: 7, RevenueLicenseExpiry: expiry, InsuranceExpiry: expiry, Status: domain.VehicleStatusMaintenance},
	)

	s.Guests.seed(
		domain.Guest{Meta: meta("1", day(2024, time.January, 20)), FirstName: "Sarah", LastName: "Johnson", Email: "sarah@example.com", Phone: "+1234567890", Nationality: "USA", PassportNumber: "USA123456789"},
		domain.Guest{Meta: meta("2", day(2024, time.February, 15)), FirstName: "Michael", LastName: "Smith", Email: "michael@example.com", Phone: "+1234567891", Nationality: "Canada", PassportNumber: "CAN987654321"},
	)

	s.Bookings.seed(
		domain.Booking{
			Meta:           meta("1", day(2024, time.January, 20)),
			BookingNumber:  "BK001",
			GuestID:        "1",
			ExcursionID:    "1",
			VehicleID:      "1",
			AgentID:        "1",
			SupplierID:     "1",
			BookingDate:    domain.NewDate(2024, time.January, 20),
			TourDate:       domain.NewDate(2024, time.February, 5),
			NumberOfGuests: 3,
			TotalPrice:     decimal.NewFromInt(450),
			Status:         domain.BookingStatusConfirmed,
			PaymentStatus:  domain.PaymentStatusPaid,
			Notes:          "Early morning departure",
		},
		domain.Booking{
			Meta:           meta("2", day(2024, time.February, 1)),
			BookingNumber:  "BK002",
			GuestID:        "2",
			ExcursionID:    "2",
			VehicleID:      "2",
			AgentID:        "2",
			SupplierID:     "1",
			BookingDate:    domain.NewDate(2024, time.February, 1),
			TourDate:       domain.NewDate(2024, time.February, 10),
			NumberOfGuests: 4,
			TotalPrice:     decimal.NewFromInt(480),
			Status:         domain.BookingStatusPending,
			PaymentStatus:  domain.PaymentStatusPartiallyPaid,
		},
	)

	s.Payments.table.seed(
		domain.Payment{Meta: meta("1", day(2024, time.January, 22)), BookingID: "1", Amount: decimal.NewFromInt(450), PaymentDate: domain.NewDate(2024, time.January, 22), Method: "credit_card", Reference: "TXN001"},
		domain.Payment{Meta: meta("2", day(2024, time.February, 2)), BookingID: "2", Amount: decimal.NewFromInt(240), PaymentDate: domain.NewDate(2024, time.February, 2), Method: "bank_transfer", Reference: "TXN002"},
	)
	return nil
}

func (s *Store) seedUsers() error {
	seeds := []struct {
		id, username, password string
		created                time.Time
	}{
		{"1", "admin", "password", day(2024, time.January, 1)},
		{"2", "manager", "password123", day(2024, time.January, 5)},
	}
	for _, u := range seeds {
		hash, err := s.Users.hash(u.password)
		if err != nil {
			return err
		}
		s.Users.table.seed(domain.User{Meta: meta(u.id, u.created), Username: u.username, PasswordHash: hash})
	}
	return nil
}
