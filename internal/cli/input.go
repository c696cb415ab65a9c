package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/models"
)

const dateLayout = "2006-01-02"

var errUsage = errors.New("usage")

func usage(format string) error {
	return fmt.Errorf("%w: %s", errUsage, format)
}

// parseDate accepts YYYY-MM-DD, "today" and "yesterday" in loc.
func parseDate(s string, now time.Time, loc *time.Location) (time.Time, error) {
	switch strings.ToLower(s) {
	case "today":
		return now.In(loc), nil
	case "yesterday":
		return now.In(loc).AddDate(0, 0, -1), nil
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

func parseHour(s string) (int, error) {
	h, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid hour %q", s)
	}
	return h, nil
}

func parseRate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid rate %q", s)
	}
	return v, nil
}

// findUser matches ref against id, email and first name, case-insensitively.
func findUser(users []models.User, ref string) (models.User, error) {
	for _, u := range users {
		if u.ID == ref {
			return u, nil
		}
	}
	var match []models.User
	for _, u := range users {
		if strings.EqualFold(u.Email, ref) || strings.EqualFold(u.FirstName, ref) {
			match = append(match, u)
		}
	}
	switch len(match) {
	case 0:
		return models.User{}, fmt.Errorf("user %q: %w", ref, common.ErrorNotFound)
	case 1:
		return match[0], nil
	default:
		return models.User{}, fmt.Errorf("user %q is ambiguous, use the id or email", ref)
	}
}
