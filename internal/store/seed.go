package store

import (
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/factory"
	"github.com/dmitrijs2005/timekeeper/internal/models"
)

// DefaultSeed returns the demo data set: one admin, six employees and a week
// of February 2025 shifts, one of them still running. Times are wall-clock
// times in loc.
func DefaultSeed(loc *time.Location, f *factory.Factory) models.Snapshot {
	users := []models.User{
		{ID: "1", Email: "admin@example.com", FirstName: "Admin", LastName: "User", Role: models.RoleAdmin, HourlyRate: 50},
		{ID: "2", Email: "employee@example.com", FirstName: "John", LastName: "Doe", Role: models.RoleEmployee, HourlyRate: 25},
		{ID: "3", Email: "sarah.wilson@example.com", FirstName: "Sarah", LastName: "Wilson", Role: models.RoleEmployee, HourlyRate: 28},
		{ID: "4", Email: "michael.brown@example.com", FirstName: "Michael", LastName: "Brown", Role: models.RoleEmployee, HourlyRate: 26},
		{ID: "5", Email: "emily.davis@example.com", FirstName: "Emily", LastName: "Davis", Role: models.RoleEmployee, HourlyRate: 27},
		{ID: "6", Email: "david.miller@example.com", FirstName: "David", LastName: "Miller", Role: models.RoleEmployee, HourlyRate: 25},
		{ID: "7", Email: "lisa.taylor@example.com", FirstName: "Lisa", LastName: "Taylor", Role: models.RoleEmployee, HourlyRate: 29},
	}

	at := func(day, hour, minute int) time.Time {
		return time.Date(2025, time.February, day, hour, minute, 0, 0, loc)
	}
	shift := func(e models.TimeEntry, end time.Time) models.TimeEntry {
		e.EndTime = &end
		return e
	}

	entries := []models.TimeEntry{
		shift(f.CreateRegularTimeEntry("3", at(5, 9, 0)), at(5, 17, 0)),
		shift(f.CreateRegularTimeEntry("4", at(4, 9, 0)), at(4, 13, 0)),
		shift(f.CreateRegularTimeEntry("5", at(3, 10, 0)), at(3, 16, 30)),
		shift(f.CreateRegularTimeEntry("5", at(5, 9, 0)), at(5, 14, 0)),
		shift(f.CreateOvertimeTimeEntry("6", at(4, 8, 0)), at(4, 18, 0)),
		shift(f.CreateRegularTimeEntry("6", at(6, 9, 0)), at(6, 17, 0)),
		shift(f.CreateRegularTimeEntry("7", at(3, 9, 0)), at(3, 15, 0)),
		f.CreateRegularTimeEntry("7", at(5, 9, 0)),
	}

	return models.Snapshot{Users: users, TimeEntries: entries}
}
