package payroll

import "github.com/dmitrijs2005/timekeeper/internal/models"

// DefaultOvertimeMultiplier is the 50% premium applied on top of a user's own rate.
const DefaultOvertimeMultiplier = 1.5

// ApplyMultiplier scales a computed base amount by multiplier.
func ApplyMultiplier(base, multiplier float64) float64 {
	return base * multiplier
}

// EmployeePay prices a user's closed entries at the user's own hourly rate,
// with overtime hours scaled by multiplier.
func EmployeePay(user models.User, entries []models.TimeEntry, schedule models.WorkSchedule, multiplier float64) float64 {
	var total float64
	for _, e := range entries {
		if e.UserID != user.ID {
			continue
		}
		h := Split(e, schedule)
		total += float64(h.Regular) * user.HourlyRate
		total += ApplyMultiplier(float64(h.Overtime)*user.HourlyRate, multiplier)
	}
	return total
}
