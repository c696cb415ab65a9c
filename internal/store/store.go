package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/logging"
	"github.com/dmitrijs2005/timekeeper/internal/models"
)

// Store is the single authoritative collection of users and time entries.
type Store struct {
	mu      sync.RWMutex
	users   []models.User
	entries []models.TimeEntry
	byID    map[string]int

	persister Persister
	logger    logging.Logger
	policy    ActiveEntryPolicy
	seed      *models.Snapshot
}

// Option configures a Store.
type Option func(*Store)

// WithActiveEntryPolicy sets how a second open entry for a user is handled.
func WithActiveEntryPolicy(p ActiveEntryPolicy) Option {
	return func(s *Store) { s.policy = p }
}

// WithSeedData makes Init fall back to snap when the persister has no data.
func WithSeedData(snap models.Snapshot) Option {
	return func(s *Store) {
		c := snap.Clone()
		s.seed = &c
	}
}

// New returns an empty store bound to the given persistence port.
func New(p Persister, logger logging.Logger, opts ...Option) *Store {
	s := &Store{
		byID:      make(map[string]int),
		persister: p,
		logger:    logger.With("component", "store"),
		policy:    PolicyReject,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads the persisted snapshot. If nothing is persisted and seed data
// was configured, the store is seeded instead.
func (s *Store) Init(ctx context.Context) error {
	snap, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: load: %w", common.ErrPersistence, err)
	}

	if snap.IsEmpty() && s.seed != nil {
		s.logger.Info(ctx, "no persisted data, seeding defaults",
			"users", len(s.seed.Users), "entries", len(s.seed.TimeEntries))
		return s.Seed(ctx, *s.seed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.replace(snap); err != nil {
		return err
	}
	s.logger.Info(ctx, "store loaded", "users", len(s.users), "entries", len(s.entries))
	return nil
}

// Seed replaces the whole state with snap and persists it.
func (s *Store) Seed(ctx context.Context, snap models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.replace(snap); err != nil {
		return err
	}
	return s.save(ctx)
}

// Clear drops all users and entries and persists the empty state.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = nil
	s.entries = nil
	s.byID = make(map[string]int)
	s.logger.Info(ctx, "store cleared")
	return s.save(ctx)
}

// Users returns all users in insertion order.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// Employees returns the users with the employee role, in insertion order.
func (s *Store) Employees() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		if u.IsEmployee() {
			out = append(out, u)
		}
	}
	return out
}

// UserByID looks a user up by id.
func (s *Store) UserByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.userByID(id)
}

// TimeEntries returns all entries in insertion order.
func (s *Store) TimeEntries() []models.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.TimeEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

// TimeEntriesByUserID returns the entries of one user in insertion order.
// No ordering by time is implied.
func (s *Store) TimeEntriesByUserID(userID string) []models.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.TimeEntry, 0)
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e.Clone())
		}
	}
	return out
}

// ActiveEntry returns the most recently added open entry of a user.
func (s *Store) ActiveEntry(userID string) (models.TimeEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.activeIndex(userID)
	if i < 0 {
		return models.TimeEntry{}, false
	}
	return s.entries[i].Clone(), true
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot()
}

// AddTimeEntry appends a new entry and persists the collection.
func (s *Store) AddTimeEntry(ctx context.Context, entry models.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[entry.ID]; exists {
		return fmt.Errorf("add entry %s: %w", entry.ID, common.ErrDuplicateID)
	}
	if _, ok := s.userByID(entry.UserID); !ok {
		return fmt.Errorf("add entry %s for user %s: %w", entry.ID, entry.UserID, common.ErrInvalidReference)
	}
	if !entry.ValidInterval() {
		return fmt.Errorf("add entry %s: %w", entry.ID, common.ErrInvalidInterval)
	}

	if entry.IsOpen() {
		if err := s.applyActivePolicy(ctx, entry); err != nil {
			return err
		}
	}

	s.byID[entry.ID] = len(s.entries)
	s.entries = append(s.entries, entry.Clone())

	s.logger.Info(ctx, "time entry added",
		"entry_id", entry.ID, "user_id", entry.UserID, "type", string(entry.Type), "open", entry.IsOpen())

	return s.save(ctx)
}

// UpdateTimeEntry merges patch into the entry with the given id and persists
// the collection. It returns common.ErrorNotFound when the id is unknown and
// common.ErrConflict when patch sets the end of an entry that is already closed.
func (s *Store) UpdateTimeEntry(ctx context.Context, id string, patch models.EntryPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("update entry %s: %w", id, common.ErrorNotFound)
	}
	if patch.EndTime != nil && !s.entries[i].IsOpen() {
		return fmt.Errorf("update entry %s: already closed: %w", id, common.ErrConflict)
	}

	merged := patch.Apply(s.entries[i])
	if !merged.ValidInterval() {
		return fmt.Errorf("update entry %s: %w", id, common.ErrInvalidInterval)
	}
	s.entries[i] = merged

	s.logger.Info(ctx, "time entry updated", "entry_id", id, "user_id", merged.UserID, "open", merged.IsOpen())

	return s.save(ctx)
}

func (s *Store) applyActivePolicy(ctx context.Context, entry models.TimeEntry) error {
	i := s.activeIndex(entry.UserID)
	if i < 0 {
		return nil
	}
	prev := s.entries[i]

	switch s.policy {
	case PolicyAllow:
		s.logger.Warn(ctx, "user has more than one active entry", "user_id", entry.UserID, "previous_entry_id", prev.ID)
		return nil
	case PolicyAutoClose:
		end := entry.StartTime
		closed := models.EntryPatch{EndTime: &end}.Apply(prev)
		if !closed.ValidInterval() {
			return fmt.Errorf("auto-close entry %s: %w", prev.ID, common.ErrInvalidInterval)
		}
		s.entries[i] = closed
		s.logger.Info(ctx, "previous active entry closed", "entry_id", prev.ID, "user_id", prev.UserID)
		return nil
	default:
		return fmt.Errorf("user %s has active entry %s: %w", entry.UserID, prev.ID, common.ErrConflict)
	}
}

// replace swaps the state for snap after checking its invariants.
// Callers hold the write lock.
func (s *Store) replace(snap models.Snapshot) error {
	users := make(map[string]struct{}, len(snap.Users))
	for _, u := range snap.Users {
		if err := u.Validate(); err != nil {
			return err
		}
		if _, dup := users[u.ID]; dup {
			return fmt.Errorf("user %s: %w", u.ID, common.ErrDuplicateID)
		}
		users[u.ID] = struct{}{}
	}

	byID := make(map[string]int, len(snap.TimeEntries))
	openByUser := make(map[string]string)
	for i, e := range snap.TimeEntries {
		if _, dup := byID[e.ID]; dup {
			return fmt.Errorf("entry %s: %w", e.ID, common.ErrDuplicateID)
		}
		if _, ok := users[e.UserID]; !ok {
			return fmt.Errorf("entry %s for user %s: %w", e.ID, e.UserID, common.ErrInvalidReference)
		}
		if !e.ValidInterval() {
			return fmt.Errorf("entry %s: %w", e.ID, common.ErrInvalidInterval)
		}
		if e.IsOpen() {
			if prev, dup := openByUser[e.UserID]; dup && s.policy == PolicyReject {
				return fmt.Errorf("user %s has active entries %s and %s: %w", e.UserID, prev, e.ID, common.ErrConflict)
			}
			openByUser[e.UserID] = e.ID
		}
		byID[e.ID] = i
	}

	c := snap.Clone()
	s.users = c.Users
	s.entries = c.TimeEntries
	s.byID = byID
	return nil
}

func (s *Store) save(ctx context.Context) error {
	if err := s.persister.Save(ctx, s.snapshot()); err != nil {
		s.logger.Error(ctx, "failed to persist store", "error", err)
		return fmt.Errorf("%w: save: %w", common.ErrPersistence, err)
	}
	return nil
}

func (s *Store) snapshot() models.Snapshot {
	return models.Snapshot{Users: s.users, TimeEntries: s.entries}.Clone()
}

func (s *Store) userByID(id string) (models.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Store) activeIndex(userID string) int {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].UserID == userID && s.entries[i].IsOpen() {
			return i
		}
	}
	return -1
}
