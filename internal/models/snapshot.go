package models

// Snapshot is the persisted state: two ordered collections.
type Snapshot struct {
	Users       []User      `json:"users"`
	TimeEntries []TimeEntry `json:"timeEntries"`
}

// IsEmpty reports whether the snapshot holds no users and no entries.
func (s Snapshot) IsEmpty() bool {
	return len(s.Users) == 0 && len(s.TimeEntries) == 0
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Users:       make([]User, len(s.Users)),
		TimeEntries: make([]TimeEntry, len(s.TimeEntries)),
	}
	copy(out.Users, s.Users)
	for i, e := range s.TimeEntries {
		out.TimeEntries[i] = e.Clone()
	}
	return out
}
