package models

import (
	"fmt"

	"github.com/go-playground/validator"
)

var validate = validator.New()

// Validate checks the struct tags of a user record.
func (u User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("invalid user %q: %w", u.ID, err)
	}
	return nil
}

// Validate checks that the schedule hours are in range and ordered.
func (s WorkSchedule) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid work schedule %d-%d: %w", s.StartHour, s.EndHour, err)
	}
	return nil
}

// Validate checks that both rates are non-negative.
func (r PayRates) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid pay rates: %w", err)
	}
	return nil
}
