package payroll

import (
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/models"
)

// SlotStatus describes one hour of a day in the dashboard grid.
type SlotStatus string

const (
	SlotRegisteredWork      SlotStatus = "registered-work"
	SlotUnregisteredWork    SlotStatus = "unregistered-work"
	SlotRegisteredOutside   SlotStatus = "registered-outside"
	SlotUnregisteredOutside SlotStatus = "unregistered-outside"
)

// Slot is one hour [Start, Start+1h) of the timeline.
type Slot struct {
	Hour   int
	Start  time.Time
	Status SlotStatus
}

// Timeline returns the 24 hourly slots of date's day. A slot is registered
// when any entry starting that day overlaps it; open entries run until now.
func Timeline(entries []models.TimeEntry, date time.Time, schedule models.WorkSchedule, now time.Time) []Slot {
	day := StartOfDay(date)
	y, m, d := day.Date()

	slots := make([]Slot, 24)
	for h := 0; h < 24; h++ {
		start := time.Date(y, m, d, h, 0, 0, 0, day.Location())
		end := start.Add(time.Hour)

		registered := false
		for _, e := range entries {
			if !SameDay(e.StartTime, day) {
				continue
			}
			entryEnd := now
			if e.EndTime != nil {
				entryEnd = *e.EndTime
			}
			if e.StartTime.Before(end) && start.Before(entryEnd) {
				registered = true
				break
			}
		}

		slots[h] = Slot{Hour: h, Start: start, Status: slotStatus(schedule.Contains(h), registered)}
	}
	return slots
}

func slotStatus(workHour, registered bool) SlotStatus {
	switch {
	case workHour && registered:
		return SlotRegisteredWork
	case workHour:
		return SlotUnregisteredWork
	case registered:
		return SlotRegisteredOutside
	default:
		return SlotUnregisteredOutside
	}
}
