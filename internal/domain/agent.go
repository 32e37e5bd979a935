package domain

import "github.com/shopspring/decimal"

// Agent sells excursions on commission.
type Agent struct {
	Meta
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Commission decimal.Decimal `json:"commission"`
}

func (a Agent) Validate() error {
	return firstError(
		required("name", a.Name),
		required("email", a.Email),
		required("phone", a.Phone),
		percent("commission", a.Commission),
	)
}

func (a Agent) Matches(query string) bool {
	return matchesAny(query, a.Name, a.Email)
}

type AgentPatch struct {
	Name       *string          `json:"name,omitempty"`
	Email      *string          `json:"email,omitempty"`
	Phone      *string          `json:"phone,omitempty"`
	Commission *decimal.Decimal `json:"commission,omitempty"`
}

func (p AgentPatch) Apply(a *Agent) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
	if p.Commission != nil {
		a.Commission = *p.Commission
	}
}

func (p AgentPatch) Validate() error {
	errs := []error{
		requiredPtr("name", p.Name),
		requiredPtr("email", p.Email),
		requiredPtr("phone", p.Phone),
	}
	if p.Commission != nil {
		errs = append(errs, percent("commission", *p.Commission))
	}
	return firstError(errs...)
}
