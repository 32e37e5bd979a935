package domain

import "github.com/shopspring/decimal"

type Payment struct {
	Meta
	BookingID   string          `json:"booking_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate Date            `json:"payment_date"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference"`
}

func (p Payment) Validate() error {
	return firstError(
		required("booking_id", p.BookingID),
		positive("amount", p.Amount),
		requiredDate("payment_date", p.PaymentDate),
		required("method", p.Method),
	)
}

func (p Payment) Matches(query string) bool {
	return matchesAny(query, p.Reference, p.BookingID)
}
