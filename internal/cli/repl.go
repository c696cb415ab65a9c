package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a stub.
type execIface interface {
	Users(ctx context.Context, args []string) error
	Entries(ctx context.Context, args []string) error
	Start(ctx context.Context, args []string) error
	Stop(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Daily(ctx context.Context, args []string) error
	Monthly(ctx context.Context, args []string) error
	Hours(ctx context.Context, args []string) error
	WorkDays(ctx context.Context, args []string) error
	Timeline(ctx context.Context, args []string) error
	Total(ctx context.Context, args []string) error
	Schedule(ctx context.Context, args []string) error
	Rates(ctx context.Context, args []string) error
	Reset(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  users                             list users
  entries [user]                    list time entries
  start <user> [regular|overtime]   start a session now
  stop <user>                       stop the active session
  status <user>                     show the active session
  daily <date>                      payroll for one day
  monthly <date> [user]             payroll for the month of date
  hours <date>                      whole hours per employee on date
  workdays <user>                   days worked by an employee
  timeline <date> <user>            24 hour grid for an employee
  total                             total whole hours of all entries
  schedule <start> <end>            set the work window (hours)
  rates <regular> <overtime>        set hourly rates
  reset                             restore default data
  exit | quit                       leave the program
Dates use YYYY-MM-DD, "today" or "yesterday". Users are matched by id, email or first name.`

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit" or "quit". Handler errors are reported and otherwise ignored.
func runREPL(ctx context.Context, a execIface, promptFn func() string, scanner *bufio.Scanner) {
	handlers := map[string]func(context.Context, []string) error{
		"users":    a.Users,
		"entries":  a.Entries,
		"start":    a.Start,
		"stop":     a.Stop,
		"status":   a.Status,
		"daily":    a.Daily,
		"monthly":  a.Monthly,
		"hours":    a.Hours,
		"workdays": a.WorkDays,
		"timeline": a.Timeline,
		"total":    a.Total,
		"schedule": a.Schedule,
		"rates":    a.Rates,
		"reset":    a.Reset,
	}

	for {
		if p := promptFn(); p != "" {
			fmt.Print(p)
		}
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		h, ok := handlers[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if err := h(ctx, args); err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
