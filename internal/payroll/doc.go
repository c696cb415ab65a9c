// Package payroll turns time entries into payable hours and amounts.
//
// # Hour split
//
// Split divides a closed entry into regular and overtime whole hours against a
// WorkSchedule. Only the hour-of-day of the entry's start decides which side
// of the schedule boundary the entry begins on; the boundary is not
// re-evaluated hour by hour. An entry that starts inside the window is regular
// up to the schedule end and overtime after that. An entry that starts outside
// the window is overtime in full, even if it later runs into the window.
// Entries crossing midnight follow the same single start-hour rule.
//
// # Aggregation
//
// DailyPay, MonthlyPay, HoursWorkedPerEmployeeOnDate, TotalHoursAllTime and
// friends are pure functions of their inputs. Open entries (no end time)
// contribute zero hours and zero pay. Calendar days are compared in the
// location of the reference date.
//
// Durations are truncated to whole hours before any calculation.
package payroll
