package domain

type Guest struct {
	Meta
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Nationality    string `json:"nationality"`
	PassportNumber string `json:"passport_number"`
}

func (g Guest) FullName() string {
	switch {
	case g.FirstName == "":
		return g.LastName
	case g.LastName == "":
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}

func (g Guest) Validate() error {
	return firstError(
		required("first_name", g.FirstName),
		required("last_name", g.LastName),
		required("email", g.Email),
		required("phone", g.Phone),
		required("nationality", g.Nationality),
		required("passport_number", g.PassportNumber),
	)
}

func (g Guest) Matches(query string) bool {
	return matchesAny(query, g.FirstName, g.LastName, g.Email)
}

type GuestPatch struct {
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Nationality    *string `json:"nationality,omitempty"`
	PassportNumber *string `json:"passport_number,omitempty"`
}

func (p GuestPatch) Apply(g *Guest) {
	if p.FirstName != nil {
		g.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		g.LastName = *p.LastName
	}
	if p.Email != nil {
		g.Email = *p.Email
	}
	if p.Phone != nil {
		g.Phone = *p.Phone
	}
	if p.Nationality != nil {
		g.Nationality = *p.Nationality
	}
	if p.PassportNumber != nil {
		g.PassportNumber = *p.PassportNumber
	}
}

func (p GuestPatch) Validate() error {
	return firstError(
		requiredPtr("first_name", p.FirstName),
		requiredPtr("last_name", p.LastName),
		requiredPtr("email", p.Email),
		requiredPtr("phone", p.Phone),
		requiredPtr("nationality", p.Nationality),
		requiredPtr("passport_number", p.PassportNumber),
	)
}
