package domain

type Vehicle struct {
	Meta
	RegistrationNumber   string        `json:"registration_number"`
	Model                string        `json:"model"`
	Driver               string        `json:"driver"`
	ContactNo            string        `json:"contact_no"`
	Capacity             int           `json:"capacity"`
	RevenueLicenseExpiry Date          `json:"revenue_license_expiry"`
	InsuranceExpiry      Date          `json:"insurance_expiry"`
	Status               VehicleStatus `json:"status"`
}

func (v Vehicle) Validate() error {
	var statusErr error
	if !v.Status.Valid() {
		statusErr = ValidationError{Field: "status", Msg: "must be one of available, booked, maintenance"}
	}
	return firstError(
		required("registration_number", v.RegistrationNumber),
		required("model", v.Model),
		positiveInt("capacity", v.Capacity),
		statusErr,
	)
}

func (v Vehicle) Matches(query string) bool {
	return matchesAny(query, v.RegistrationNumber, v.Model)
}

type VehiclePatch struct {
	RegistrationNumber   *string        `json:"registration_number,omitempty"`
	Model                *string        `json:"model,omitempty"`
	Driver               *string        `json:"driver,omitempty"`
	ContactNo            *string        `json:"contact_no,omitempty"`
	Capacity             *int           `json:"capacity,omitempty"`
	RevenueLicenseExpiry *Date          `json:"revenue_license_expiry,omitempty"`
	InsuranceExpiry      *Date          `json:"insurance_expiry,omitempty"`
	Status               *VehicleStatus `json:"status,omitempty"`
}

func (p VehiclePatch) Apply(v *Vehicle) {
	if p.RegistrationNumber != nil {
		v.RegistrationNumber = *p.RegistrationNumber
	}
	if p.Model != nil {
		v.Model = *p.Model
	}
	if p.Driver != nil {
		v.Driver = *p.Driver
	}
	if p.ContactNo != nil {
		v.ContactNo = *p.ContactNo
	}
	if p.Capacity != nil {
		v.Capacity = *p.Capacity
	}
	if p.RevenueLicenseExpiry != nil {
		v.RevenueLicenseExpiry = *p.RevenueLicenseExpiry
	}
	if p.InsuranceExpiry != nil {
		v.InsuranceExpiry = *p.InsuranceExpiry
	}
	if p.Status != nil {
		v.Status = *p.Status
	}
}

func (p VehiclePatch) Validate() error {
	errs := []error{
		requiredPtr("registration_number", p.RegistrationNumber),
		requiredPtr("model", p.Model),
	}
	if p.Capacity != nil {
		errs = append(errs, positiveInt("capacity", *p.Capacity))
	}
	if p.Status != nil && !p.Status.Valid() {
		errs = append(errs, ValidationError{Field: "status", Msg: "must be one of available, booked, maintenance"})
	}
	return firstError(errs...)
}
