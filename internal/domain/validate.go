package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Msg: "is required"}
	}
	return nil
}

func requiredPtr(field string, value *string) error {
	if value == nil {
		return nil
	}
	return required(field, *value)
}

func requiredDate(field string, value Date) error {
	if value.IsZero() {
		return ValidationError{Field: field, Msg: "is required"}
	}
	return nil
}

func nonNegative(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return ValidationError{Field: field, Msg: "must not be negative"}
	}
	return nil
}

func positive(field string, value decimal.Decimal) error {
	if !value.IsPositive() {
		return ValidationError{Field: field, Msg: "must be positive"}
	}
	return nil
}

func positiveInt(field string, value int) error {
	if value <= 0 {
		return ValidationError{Field: field, Msg: "must be positive"}
	}
	return nil
}

func percent(field string, value decimal.Decimal) error {
	if value.IsNegative() || value.GreaterThan(hundred) {
		return ValidationError{Field: field, Msg: "must be between 0 and 100"}
	}
	return nil
}
