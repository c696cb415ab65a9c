package payroll

import "github.com/dmitrijs2005/timekeeper/internal/models"

// Hours is the split of an entry into regular and overtime whole hours.
type Hours struct {
	Regular  int
	Overtime int
}

// Total returns Regular + Overtime.
func (h Hours) Total() int { return h.Regular + h.Overtime }

// Add returns the element-wise sum.
func (h Hours) Add(o Hours) Hours {
	return Hours{Regular: h.Regular + o.Regular, Overtime: h.Overtime + o.Overtime}
}

// Pay prices the hours at the given rates.
func (h Hours) Pay(rates models.PayRates) float64 {
	return float64(h.Regular)*rates.RegularRate + float64(h.Overtime)*rates.OvertimeRate
}

// Split computes regular and overtime hours for a single entry.
// Open entries yield zero hours. The start hour is read in the location of
// entry.StartTime, so callers convert entries to the reporting zone first.
func Split(entry models.TimeEntry, schedule models.WorkSchedule) Hours {
	if entry.IsOpen() {
		return Hours{}
	}

	total := entry.WholeHours()
	startHour := entry.StartTime.Hour()

	if !schedule.Contains(startHour) {
		return Hours{Overtime: total}
	}

	regular := min(total, schedule.EndHour-startHour)
	return Hours{Regular: regular, Overtime: max(0, total-regular)}
}
