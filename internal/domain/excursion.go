package domain

import "github.com/shopspring/decimal"

// Excursion is a bookable tour. Duration is in hours.
type Excursion struct {
	Meta
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Duration    decimal.Decimal `json:"duration"`
	BasePrice   decimal.Decimal `json:"base_price"`
	MaxCapacity int             `json:"max_capacity"`
}

func (e Excursion) Validate() error {
	return firstError(
		required("name", e.Name),
		required("description", e.Description),
		positive("duration", e.Duration),
		nonNegative("base_price", e.BasePrice),
		positiveInt("max_capacity", e.MaxCapacity),
	)
}

func (e Excursion) Matches(query string) bool {
	return matchesAny(query, e.Name, e.Description)
}

type ExcursionPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Duration    *decimal.Decimal `json:"duration,omitempty"`
	BasePrice   *decimal.Decimal `json:"base_price,omitempty"`
	MaxCapacity *int             `json:"max_capacity,omitempty"`
}

func (p ExcursionPatch) Apply(e *Excursion) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Duration != nil {
		e.Duration = *p.Duration
	}
	if p.BasePrice != nil {
		e.BasePrice = *p.BasePrice
	}
	if p.MaxCapacity != nil {
		e.MaxCapacity = *p.MaxCapacity
	}
}

func (p ExcursionPatch) Validate() error {
	errs := []error{
		requiredPtr("name", p.Name),
		requiredPtr("description", p.Description),
	}
	if p.Duration != nil {
		errs = append(errs, positive("duration", *p.Duration))
	}
	if p.BasePrice != nil {
		errs = append(errs, nonNegative("base_price", *p.BasePrice))
	}
	if p.MaxCapacity != nil {
		errs = append(errs, positiveInt("max_capacity", *p.MaxCapacity))
	}
	return firstError(errs...)
}
