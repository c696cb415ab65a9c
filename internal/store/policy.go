package store

import "fmt"

// ActiveEntryPolicy decides what happens when a user who already has an open
// entry starts another one.
type ActiveEntryPolicy string

const (
	// PolicyReject refuses the new entry with common.ErrConflict.
	PolicyReject ActiveEntryPolicy = "reject"
	// PolicyAllow accepts the new entry and leaves the old one open.
	PolicyAllow ActiveEntryPolicy = "allow"
	// PolicyAutoClose closes the old entry at the start of the new one.
	PolicyAutoClose ActiveEntryPolicy = "autoclose"
)

func ParseActiveEntryPolicy(s string) (ActiveEntryPolicy, error) {
	switch p := ActiveEntryPolicy(s); p {
	case PolicyReject, PolicyAllow, PolicyAutoClose:
		return p, nil
	case "":
		return PolicyReject, nil
	default:
		return "", fmt.Errorf("unknown active entry policy %q", s)
	}
}
