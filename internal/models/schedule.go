package models

// WorkSchedule is the daily window of regular hours, [StartHour, EndHour).
type WorkSchedule struct {
	StartHour int `json:"startHour" validate:"gte=0,lte=23"`
	EndHour   int `json:"endHour" validate:"gte=0,lte=23,gtfield=StartHour"`
}

// Contains reports whether hour-of-day h lies inside the regular window.
func (s WorkSchedule) Contains(h int) bool {
	return h >= s.StartHour && h < s.EndHour
}

// PayRates are the currency-per-hour amounts for regular and overtime hours.
type PayRates struct {
	RegularRate  float64 `json:"regularRate" validate:"gte=0"`
	OvertimeRate float64 `json:"overtimeRate" validate:"gte=0"`
}
