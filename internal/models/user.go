// Package models defines the time-tracking data model shared by the store,
// the payroll engine, persistence backends, and the CLI.
package models

import (
	"fmt"
	"strings"
)

// Role classifies what a user may do in the application.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// User is a person whose working time is tracked.
// Users are created when the store is initialised and never mutated afterwards.
type User struct {
	ID         string  `json:"id" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	FirstName  string  `json:"firstName" validate:"required"`
	LastName   string  `json:"lastName"`
	Role       Role    `json:"role" validate:"oneof=employee admin"`
	HourlyRate float64 `json:"hourlyRate" validate:"gte=0"`
}

// FullName returns "First Last", trimmed when one part is missing.
func (u User) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", u.FirstName, u.LastName))
}

// IsEmployee reports whether the user has the employee role.
func (u User) IsEmployee() bool { return u.Role == RoleEmployee }
