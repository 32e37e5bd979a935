package domain

type Supplier struct {
	Meta
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	BankDetails string `json:"bank_details"`
}

func (s Supplier) Validate() error {
	return firstError(
		required("name", s.Name),
		required("email", s.Email),
		required("phone", s.Phone),
		required("bank_details", s.BankDetails),
	)
}

func (s Supplier) Matches(query string) bool {
	return matchesAny(query, s.Name, s.Email)
}

type SupplierPatch struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	BankDetails *string `json:"bank_details,omitempty"`
}

func (p SupplierPatch) Apply(s *Supplier) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.BankDetails != nil {
		s.BankDetails = *p.BankDetails
	}
}

func (p SupplierPatch) Validate() error {
	return firstError(
		requiredPtr("name", p.Name),
		requiredPtr("email", p.Email),
		requiredPtr("phone", p.Phone),
		requiredPtr("bank_details", p.BankDetails),
	)
}
