package payroll

import (
	"fmt"
	"time"
)

// FormatAmount renders a currency amount as "$160.00".
func FormatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// ElapsedClock renders the running time of a session as HH:MM:SS.
func ElapsedClock(start, now time.Time) string {
	d := now.Sub(start)
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
