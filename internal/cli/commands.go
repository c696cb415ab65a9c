package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/command"
	"github.com/dmitrijs2005/timekeeper/internal/models"
	"github.com/dmitrijs2005/timekeeper/internal/payroll"
	"github.com/dmitrijs2005/timekeeper/internal/store"
)

const clockLayout = "2006-01-02 15:04"

// entries returns all entries with timestamps in the configured timezone,
// so hour splits and day grouping read the same calendar.
func (a *App) entries() []models.TimeEntry {
	return inLocation(a.store.TimeEntries(), a.loc)
}

func (a *App) userEntries(userID string) []models.TimeEntry {
	return inLocation(a.store.TimeEntriesByUserID(userID), a.loc)
}

func inLocation(entries []models.TimeEntry, loc *time.Location) []models.TimeEntry {
	for i, e := range entries {
		entries[i] = e.In(loc)
	}
	return entries
}

func (a *App) Users(ctx context.Context, args []string) error {
	rows := [][]string{{"ID", "Name", "Email", "Role", "Rate"}}
	for _, u := range a.store.Users() {
		rows = append(rows, []string{u.ID, u.FullName(), u.Email, string(u.Role), payroll.FormatAmount(u.HourlyRate)})
	}
	printlnFn(a.styles.table(rows))
	return nil
}

func (a *App) Entries(ctx context.Context, args []string) error {
	entries := a.entries()
	if len(args) > 0 {
		u, err := findUser(a.store.Users(), args[0])
		if err != nil {
			return err
		}
		entries = a.userEntries(u.ID)
	}
	if len(entries) == 0 {
		printlnFn(a.styles.muted.Render("no entries"))
		return nil
	}

	schedule, _, _ := a.payrollSettings()
	rows := [][]string{{"ID", "User", "Start", "End", "Type", "Regular", "Overtime"}}
	for _, e := range entries {
		name := e.UserID
		if u, ok := a.store.UserByID(e.UserID); ok {
			name = u.FullName()
		}
		end := "open"
		if e.EndTime != nil {
			end = e.EndTime.In(a.loc).Format(clockLayout)
		}
		h := payroll.Split(e, schedule)
		rows = append(rows, []string{
			e.ID, name, e.StartTime.In(a.loc).Format(clockLayout), end, string(e.Type),
			strconv.Itoa(h.Regular), strconv.Itoa(h.Overtime),
		})
	}
	printlnFn(a.styles.table(rows))
	return nil
}

func (a *App) Start(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("start <user> [regular|overtime]")
	}
	u, err := findUser(a.store.Users(), args[0])
	if err != nil {
		return err
	}
	t := models.EntryTypeRegular
	if len(args) == 2 {
		if t, err = models.ParseEntryType(args[1]); err != nil {
			return err
		}
	}

	entry, err := a.executor.Execute(ctx, command.StartSession(u.ID, a.now(), t))
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Started %s session for %s at %s", entry.Type, u.FullName(),
		entry.StartTime.In(a.loc).Format(clockLayout)))
	return nil
}

func (a *App) Stop(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("stop <user>")
	}
	u, err := findUser(a.store.Users(), args[0])
	if err != nil {
		return err
	}

	entry, err := a.executor.Execute(ctx, command.StopSession(u.ID, a.now()))
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Stopped session for %s after %s (%dh counted)", u.FullName(),
		payroll.ElapsedClock(entry.StartTime, *entry.EndTime), entry.WholeHours()))
	return nil
}

func (a *App) Status(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("status <user>")
	}
	u, err := findUser(a.store.Users(), args[0])
	if err != nil {
		return err
	}

	active, ok := a.store.ActiveEntry(u.ID)
	if !ok {
		printlnFn(fmt.Sprintf("%s is not working", u.FullName()))
		return nil
	}
	printlnFn(fmt.Sprintf("%s is working (%s) since %s, elapsed %s", u.FullName(), active.Type,
		active.StartTime.In(a.loc).Format(clockLayout), payroll.ElapsedClock(active.StartTime, a.now())))
	return nil
}

func (a *App) Daily(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("daily <date>")
	}
	date, err := parseDate(args[0], a.now(), a.loc)
	if err != nil {
		return err
	}

	schedule, rates, _ := a.payrollSettings()
	total := payroll.DailyPay(a.entries(), date, schedule, rates)
	printlnFn(fmt.Sprintf("%s %s", a.styles.title.Render("Daily payroll "+date.Format(dateLayout)+":"),
		a.styles.amount.Render(payroll.FormatAmount(total))))
	return nil
}

func (a *App) Monthly(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("monthly <date> [user]")
	}
	date, err := parseDate(args[0], a.now(), a.loc)
	if err != nil {
		return err
	}
	schedule, rates, multiplier := a.payrollSettings()
	entries := a.entries()
	month := date.Format("January 2006")

	if len(args) == 1 {
		hours := payroll.MonthlyHours(entries, date, schedule)
		total := payroll.MonthlyPay(entries, date, schedule, rates)
		body := fmt.Sprintf("Regular hours: %d\nOvertime hours: %d\nTotal: %s",
			hours.Regular, hours.Overtime, a.styles.amount.Render(payroll.FormatAmount(total)))
		printlnFn(a.styles.box.Render(a.styles.title.Render("Monthly payroll "+month) + "\n" + body))
		return nil
	}

	u, err := findUser(a.store.Users(), args[1])
	if err != nil {
		return err
	}
	var inMonth []models.TimeEntry
	for _, e := range a.userEntries(u.ID) {
		if payroll.InMonth(e.StartTime, date) {
			inMonth = append(inMonth, e)
		}
	}
	total := payroll.MonthlyPayForUser(entries, u.ID, date, schedule, rates)
	own := payroll.EmployeePay(u, inMonth, schedule, multiplier)
	body := fmt.Sprintf("At company rates: %s\nAt own rate (%s/h, overtime x%.2g): %s",
		a.styles.amount.Render(payroll.FormatAmount(total)), payroll.FormatAmount(u.HourlyRate), multiplier,
		a.styles.amount.Render(payroll.FormatAmount(own)))
	printlnFn(a.styles.box.Render(a.styles.title.Render(u.FullName()+", "+month) + "\n" + body))
	return nil
}

func (a *App) Hours(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("hours <date>")
	}
	date, err := parseDate(args[0], a.now(), a.loc)
	if err != nil {
		return err
	}

	worked := payroll.HoursWorkedPerEmployeeOnDate(a.store.Employees(), a.entries(), date)
	if len(worked) == 0 {
		printlnFn(a.styles.muted.Render("nobody worked on " + date.Format(dateLayout)))
		return nil
	}
	rows := [][]string{{"Employee", "Hours"}}
	for _, w := range worked {
		rows = append(rows, []string{w.User.FullName(), strconv.Itoa(w.Hours)})
	}
	printlnFn(a.styles.table(rows))
	return nil
}

func (a *App) WorkDays(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("workdays <user>")
	}
	u, err := findUser(a.store.Users(), args[0])
	if err != nil {
		return err
	}

	days := payroll.WorkDays(a.userEntries(u.ID), a.loc)
	if len(days) == 0 {
		printlnFn(a.styles.muted.Render(u.FullName() + " has no work days"))
		return nil
	}
	rows := [][]string{{"Date", "Hours"}}
	for _, d := range days {
		rows = append(rows, []string{d.Date.Format(dateLayout), strconv.Itoa(d.Hours)})
	}
	printlnFn(a.styles.table(rows))
	return nil
}

func (a *App) Timeline(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("timeline <date> <user>")
	}
	now := a.now()
	date, err := parseDate(args[0], now, a.loc)
	if err != nil {
		return err
	}
	u, err := findUser(a.store.Users(), args[1])
	if err != nil {
		return err
	}

	schedule, _, _ := a.payrollSettings()
	slots := payroll.Timeline(a.userEntries(u.ID), date, schedule, now)
	printlnFn(a.styles.title.Render(u.FullName() + ", " + date.Format(dateLayout)))
	printlnFn(a.styles.timeline(slots))
	return nil
}

func (a *App) Total(ctx context.Context, args []string) error {
	printlnFn(fmt.Sprintf("Total hours worked: %d", payroll.TotalHoursAllTime(a.entries())))
	return nil
}

func (a *App) Schedule(ctx context.Context, args []string) error {
	if len(args) == 0 {
		s, _, _ := a.payrollSettings()
		printlnFn(fmt.Sprintf("Work schedule: %02d:00-%02d:00", s.StartHour, s.EndHour))
		return nil
	}
	if len(args) != 2 {
		return usage("schedule <start> <end>")
	}
	start, err := parseHour(args[0])
	if err != nil {
		return err
	}
	end, err := parseHour(args[1])
	if err != nil {
		return err
	}
	s := models.WorkSchedule{StartHour: start, EndHour: end}
	if err := s.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	a.schedule = s
	a.mu.Unlock()
	a.logger.Info(ctx, "work schedule changed", "start_hour", start, "end_hour", end)
	printlnFn(fmt.Sprintf("Work schedule: %02d:00-%02d:00", start, end))
	return nil
}

func (a *App) Rates(ctx context.Context, args []string) error {
	if len(args) == 0 {
		_, r, _ := a.payrollSettings()
		printlnFn(fmt.Sprintf("Rates: regular %s/h, overtime %s/h",
			payroll.FormatAmount(r.RegularRate), payroll.FormatAmount(r.OvertimeRate)))
		return nil
	}
	if len(args) != 2 {
		return usage("rates <regular> <overtime>")
	}
	regular, err := parseRate(args[0])
	if err != nil {
		return err
	}
	overtime, err := parseRate(args[1])
	if err != nil {
		return err
	}
	r := models.PayRates{RegularRate: regular, OvertimeRate: overtime}
	if err := r.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	a.rates = r
	a.mu.Unlock()
	a.logger.Info(ctx, "pay rates changed", "regular", regular, "overtime", overtime)
	printlnFn(fmt.Sprintf("Rates: regular %s/h, overtime %s/h",
		payroll.FormatAmount(regular), payroll.FormatAmount(overtime)))
	return nil
}

// Reset restores the default data set, or empties the store when seeding
// is disabled.
func (a *App) Reset(ctx context.Context, args []string) error {
	if !a.config.SeedDefaults {
		if err := a.store.Clear(ctx); err != nil {
			return err
		}
		printlnFn("All data removed")
		return nil
	}

	if err := a.store.Seed(ctx, store.DefaultSeed(a.loc, a.factory)); err != nil {
		return err
	}
	a.mu.Lock()
	a.warned = make(map[string]struct{})
	a.mu.Unlock()
	printlnFn("Default data restored")
	return nil
}
