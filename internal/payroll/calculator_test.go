package payroll

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/models"
	"github.com/stretchr/testify/assert"
)

var (
	nineToFive = models.WorkSchedule{StartHour: 9, EndHour: 17}
	rates      = models.PayRates{RegularRate: 20, OvertimeRate: 30}
)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.February, day, hour, minute, 0, 0, time.UTC)
}

func closed(id, userID string, start, end time.Time) models.TimeEntry {
	return models.TimeEntry{ID: id, UserID: userID, StartTime: start, EndTime: &end, Type: models.EntryTypeRegular}
}

func open(id, userID string, start time.Time) models.TimeEntry {
	return models.TimeEntry{ID: id, UserID: userID, StartTime: start, Type: models.EntryTypeRegular}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		entry models.TimeEntry
		want  Hours
	}{
		{"full regular day", closed("a", "1", at(5, 9, 0), at(5, 17, 0)), Hours{Regular: 8}},
		{"starts before window", closed("a", "1", at(4, 8, 0), at(4, 18, 0)), Hours{Overtime: 10}},
		{"runs past window end", closed("a", "1", at(4, 15, 0), at(4, 20, 0)), Hours{Regular: 2, Overtime: 3}},
		{"starts at window end", closed("a", "1", at(4, 17, 0), at(4, 19, 0)), Hours{Overtime: 2}},
		{"partial hours truncated", closed("a", "1", at(3, 10, 0), at(3, 16, 30)), Hours{Regular: 6}},
		{"starts last regular hour", closed("a", "1", at(3, 16, 59), at(3, 19, 0)), Hours{Regular: 1, Overtime: 1}},
		{"crosses midnight from inside", closed("a", "1", at(3, 14, 0), at(4, 2, 0)), Hours{Regular: 3, Overtime: 9}},
		{"under an hour", closed("a", "1", at(3, 9, 0), at(3, 9, 59)), Hours{}},
		{"open entry", open("a", "1", at(5, 9, 0)), Hours{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.entry, nineToFive)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplit_InsideWindowWithinRemainingHoursIsAllRegular(t *testing.T) {
	for h := nineToFive.StartHour; h < nineToFive.EndHour; h++ {
		for d := 0; d <= nineToFive.EndHour-h; d++ {
			start := at(10, h, 0)
			e := closed("x", "1", start, start.Add(time.Duration(d)*time.Hour+time.Second))
			got := Split(e, nineToFive)
			assert.Equal(t, Hours{Regular: d}, got, "start=%d duration=%d", h, d)
		}
	}
}

func TestSplit_OutsideWindowIsAllOvertime(t *testing.T) {
	for h := 0; h < 24; h++ {
		if nineToFive.Contains(h) {
			continue
		}
		for d := 1; d <= 14; d++ {
			start := at(10, h, 15)
			e := closed("x", "1", start, start.Add(time.Duration(d)*time.Hour))
			got := Split(e, nineToFive)
			assert.Equal(t, Hours{Overtime: d}, got, "start=%d duration=%d", h, d)
		}
	}
}

func TestSplit_UsesEntryLocationForStartHour(t *testing.T) {
	plus3 := time.FixedZone("UTC+3", 3*60*60)
	// 07:00 UTC is 10:00 in UTC+3.
	start := time.Date(2025, 2, 5, 10, 0, 0, 0, plus3)
	e := closed("x", "1", start, start.Add(4*time.Hour))

	assert.Equal(t, Hours{Regular: 4}, Split(e, nineToFive))

	utc := closed("x", "1", start.UTC(), start.UTC().Add(4*time.Hour))
	assert.Equal(t, Hours{Overtime: 4}, Split(utc, nineToFive))
}

func TestHours_PayAndAdd(t *testing.T) {
	h := Hours{Regular: 8}.Add(Hours{Regular: 1, Overtime: 2})
	assert.Equal(t, Hours{Regular: 9, Overtime: 2}, h)
	assert.Equal(t, 11, h.Total())
	assert.InDelta(t, 9*20+2*30, h.Pay(rates), 1e-9)
}
