package payroll

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/models"
)

// EmployeeHours is the number of whole hours a user worked in some period.
type EmployeeHours struct {
	User  models.User
	Hours int
}

// DayHours is the number of whole hours worked on one calendar day.
type DayHours struct {
	Date  time.Time
	Hours int
}

// EntryPay returns the pay earned by a single entry.
func EntryPay(entry models.TimeEntry, schedule models.WorkSchedule, rates models.PayRates) float64 {
	return Split(entry, schedule).Pay(rates)
}

// DailyPay sums pay over closed entries that start on date's calendar day.
func DailyPay(entries []models.TimeEntry, date time.Time, schedule models.WorkSchedule, rates models.PayRates) float64 {
	var total float64
	for _, e := range entries {
		if e.IsOpen() || !SameDay(e.StartTime, date) {
			continue
		}
		total += EntryPay(e, schedule, rates)
	}
	return total
}

// MonthlyPay sums pay over closed entries that start within referenceDate's month.
func MonthlyPay(entries []models.TimeEntry, referenceDate time.Time, schedule models.WorkSchedule, rates models.PayRates) float64 {
	var total float64
	for _, e := range entries {
		if e.IsOpen() || !InMonth(e.StartTime, referenceDate) {
			continue
		}
		total += EntryPay(e, schedule, rates)
	}
	return total
}

// MonthlyPayForUser is MonthlyPay restricted to one user's entries.
func MonthlyPayForUser(entries []models.TimeEntry, userID string, referenceDate time.Time, schedule models.WorkSchedule, rates models.PayRates) float64 {
	return MonthlyPay(FilterByUser(entries, userID), referenceDate, schedule, rates)
}

// MonthlyHours returns the split hours of closed entries in referenceDate's month.
func MonthlyHours(entries []models.TimeEntry, referenceDate time.Time, schedule models.WorkSchedule) Hours {
	var h Hours
	for _, e := range entries {
		if InMonth(e.StartTime, referenceDate) {
			h = h.Add(Split(e, schedule))
		}
	}
	return h
}

// HoursWorkedPerEmployeeOnDate returns, in user order, every user with at
// least one entry starting on date, together with their summed whole hours.
// A user whose only entry that day is still open is listed with zero hours.
func HoursWorkedPerEmployeeOnDate(users []models.User, entries []models.TimeEntry, date time.Time) []EmployeeHours {
	result := make([]EmployeeHours, 0)
	for _, u := range users {
		found := false
		hours := 0
		for _, e := range entries {
			if e.UserID != u.ID || !SameDay(e.StartTime, date) {
				continue
			}
			found = true
			hours += e.WholeHours()
		}
		if found {
			result = append(result, EmployeeHours{User: u, Hours: hours})
		}
	}
	return result
}

// TotalHoursAllTime sums whole hours over every closed entry.
func TotalHoursAllTime(entries []models.TimeEntry) int {
	total := 0
	for _, e := range entries {
		total += e.WholeHours()
	}
	return total
}

// WorkDays lists the distinct calendar days on which entries start, in
// ascending order, with the whole hours worked on each. Days are computed in
// loc; a nil loc keeps each entry's own location.
func WorkDays(entries []models.TimeEntry, loc *time.Location) []DayHours {
	byDay := make(map[time.Time]int)
	for _, e := range entries {
		start := e.StartTime
		if loc != nil {
			start = start.In(loc)
		}
		day := StartOfDay(start)
		byDay[day] += e.WholeHours()
	}

	days := make([]DayHours, 0, len(byDay))
	for d, h := range byDay {
		days = append(days, DayHours{Date: d, Hours: h})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

// FilterByUser returns the entries belonging to userID, order preserved.
func FilterByUser(entries []models.TimeEntry, userID string) []models.TimeEntry {
	out := make([]models.TimeEntry, 0)
	for _, e := range entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}
