package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/factory"
	"github.com/dmitrijs2005/timekeeper/internal/logging"
	"github.com/dmitrijs2005/timekeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePersister records saves and can be told to fail.
type fakePersister struct {
	mu      sync.Mutex
	loaded  models.Snapshot
	saved   []models.Snapshot
	loadErr error
	saveErr error
}

func (f *fakePersister) Load(context.Context) (models.Snapshot, error) {
	return f.loaded, f.loadErr
}

func (f *fakePersister) Save(_ context.Context, s models.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, s)
	return nil
}

func (f *fakePersister) last() models.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved[len(f.saved)-1]
}

func at(day, hour int) time.Time {
	return time.Date(2025, time.February, day, hour, 0, 0, 0, time.UTC)
}

func testUsers() []models.User {
	return []models.User{
		{ID: "1", Email: "admin@example.com", FirstName: "Admin", Role: models.RoleAdmin, HourlyRate: 50},
		{ID: "2", Email: "john@example.com", FirstName: "John", Role: models.RoleEmployee, HourlyRate: 25},
		{ID: "3", Email: "sarah@example.com", FirstName: "Sarah", Role: models.RoleEmployee, HourlyRate: 28},
	}
}

func newSeededStore(t *testing.T, opts ...Option) (*Store, *fakePersister) {
	t.Helper()
	p := &fakePersister{}
	s := New(p, logging.Nop(), opts...)
	require.NoError(t, s.Seed(context.Background(), models.Snapshot{Users: testUsers()}))
	return s, p
}

func TestInit_SeedsWhenEmpty(t *testing.T) {
	p := &fakePersister{}
	seed := DefaultSeed(time.UTC, factory.New())
	s := New(p, logging.Nop(), WithSeedData(seed))

	require.NoError(t, s.Init(context.Background()))

	assert.Len(t, s.Users(), 7)
	assert.Len(t, s.TimeEntries(), 8)
	assert.Len(t, s.Employees(), 6)
	require.NotEmpty(t, p.saved, "seeding must persist")
	assert.Len(t, p.last().TimeEntries, 8)
}

func TestInit_LoadsPersistedState(t *testing.T) {
	end := at(5, 17)
	p := &fakePersister{loaded: models.Snapshot{
		Users:       testUsers(),
		TimeEntries: []models.TimeEntry{{ID: "e1", UserID: "3", StartTime: at(5, 9), EndTime: &end, Type: models.EntryTypeRegular}},
	}}
	s := New(p, logging.Nop(), WithSeedData(DefaultSeed(time.UTC, factory.New())))

	require.NoError(t, s.Init(context.Background()))

	assert.Len(t, s.Users(), 3)
	require.Len(t, s.TimeEntries(), 1)
	assert.Equal(t, "e1", s.TimeEntries()[0].ID)
	assert.Empty(t, p.saved, "loading must not write")
}

func TestInit_LoadErrorIsPersistenceError(t *testing.T) {
	p := &fakePersister{loadErr: errors.New("disk gone")}
	s := New(p, logging.Nop())

	err := s.Init(context.Background())
	require.ErrorIs(t, err, common.ErrPersistence)
}

func TestInit_RejectsDanglingReference(t *testing.T) {
	p := &fakePersister{loaded: models.Snapshot{
		Users:       testUsers(),
		TimeEntries: []models.TimeEntry{{ID: "e1", UserID: "99", StartTime: at(5, 9)}},
	}}
	s := New(p, logging.Nop())

	require.ErrorIs(t, s.Init(context.Background()), common.ErrInvalidReference)
}

func TestQueries_PreserveInsertionOrder(t *testing.T) {
	s, _ := newSeededStore(t, WithActiveEntryPolicy(PolicyAllow))
	ctx := context.Background()

	ids := []string{"c", "a", "b"}
	starts := []time.Time{at(7, 9), at(3, 9), at(5, 9)}
	for i, id := range ids {
		require.NoError(t, s.AddTimeEntry(ctx, models.TimeEntry{ID: id, UserID: "3", StartTime: starts[i]}))
	}
	require.NoError(t, s.AddTimeEntry(ctx, models.TimeEntry{ID: "x", UserID: "2", StartTime: at(4, 9)}))

	var got []string
	for _, e := range s.TimeEntriesByUserID("3") {
		got = append(got, e.ID)
	}
	assert.Equal(t, ids, got)
	assert.Len(t, s.TimeEntries(), 4)
	assert.Empty(t, s.TimeEntriesByUserID("1"))

	var users []string
	for _, u := range s.Users() {
		users = append(users, u.ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, users)
}

func TestUserByID(t *testing.T) {
	s, _ := newSeededStore(t)

	u, ok := s.UserByID("3")
	require.True(t, ok)
	assert.Equal(t, "Sarah", u.FirstName)

	_, ok = s.UserByID("nope")
	assert.False(t, ok)
}

func TestAddTimeEntry_PersistsBeforeReturning(t *testing.T) {
	s, p := newSeededStore(t)

	e := models.TimeEntry{ID: "e1", UserID: "3", StartTime: at(5, 9), Type: models.EntryTypeRegular}
	require.NoError(t, s.AddTimeEntry(context.Background(), e))

	last := p.last()
	require.Len(t, last.TimeEntries, 1)
	assert.Equal(t, "e1", last.TimeEntries[0].ID)
}

func TestAddTimeEntry_Errors(t *testing.T) {
	s, _ := newSeededStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddTimeEntry(ctx, models.TimeEntry{ID: "e1", UserID: "3", StartTime: at(5, 9)}))

	err := s.AddTimeEntry(ctx, models.TimeEntry{ID: "e1", UserID: "2", StartTime: at(5, 9)})
	require.ErrorIs(t, err, common.ErrDuplicateID)

	err = s.AddTimeEntry(ctx, models.TimeEntry{ID: "e2", UserID: "404", StartTime: at(5, 9)})
	require.ErrorIs(t, err, common.ErrInvalidReference)

	end := at(5, 8)
	err = s.AddTimeEntry(ctx, models.TimeEntry{ID: "e3", UserID: "2", StartTime: at(5, 9), EndTime: &end})
	require.ErrorIs(t, err, common.ErrInvalidInterval)

	assert.Len(t, s.TimeEntries(), 1)
}

func TestAddTimeEntry_ActivePolicies(t *testing.T) {
	ctx := context.Background()
	first := models.TimeEntry{ID: "e1", UserID: "3", StartTime: at(5, 9)}
	second := models.TimeEntry{ID: "e2", UserID: "3", StartTime: at(5, 13)}

	t.Run("reject", func(t *testing.T) {
		s, _ := newSeededStore(t)
		require.NoError(t, s.AddTimeEntry(ctx, first))
		require.ErrorIs(t, s.AddTimeEntry(ctx, second), common.ErrConflict)
		assert.Len(t, s.TimeEntries(), 1)
	})

	t.Run("allow", func(t *testing.T) {
		s, _ := newSeededStore(t, WithActiveEntryPolicy(PolicyAllow))
		require.NoError(t, s.AddTimeEntry(ctx, first))
		require.NoError(t, s.AddTimeEntry(ctx, second))

		active, ok := s.ActiveEntry("3")
		require.True(t, ok)
		assert.Equal(t, "e2", active.ID)
	})

	t.Run("autoclose", func(t *testing.T) {
		s, _ := newSeededStore(t, WithActiveEntryPolicy(PolicyAutoClose))
		require.NoError(t, s.AddTimeEntry(ctx, first))
		require.NoError(t, s.AddTimeEntry(ctx, second))

		entries := s.TimeEntries()
		require.Len(t, entries, 2)
		require.NotNil(t, entries[0].EndTime)
		assert.Equal(t, at(5, 13), *entries[0].EndTime)
		assert.True(t, entries[1].IsOpen())
	})

	t.Run("autoclose refuses backwards start", func(t *testing.T) {
		s, _ := newSeededStore(t, WithActiveEntryPolicy(PolicyAutoClose))
		require.NoError(t, s.AddTimeEntry(ctx, second))
		require.ErrorIs(t, s.AddTimeEntry(ctx, first), common.ErrInvalidInterval)
	})

	t.Run("closed entries bypass policy", func(t *testing.T) {
		s, _ := newSeededStore(t)
		require.NoError(t, s.AddTimeEntry(ctx, first))
		end := at(4, 17)
		require.NoError(t, s.AddTimeEntry(ctx, models.TimeEntry{ID: "old", UserID: "3", StartTime: at(4, 9), EndTime: &end}))
	})
}

func TestUpdateTimeEntry(t *testing.T) {
	s, p := newSeededStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddTimeEntry(ctx, models.TimeEntry{ID: "e1", UserID: "3", StartTime: at(5, 9), Type: models.EntryTypeRegular}))

	end := at(5, 17)
	require.NoError(t, s.UpdateTimeEntry(ctx, "e1", models.EntryPatch{EndTime: &end}))

	got := s.TimeEntries()[0]
	require.NotNil(t, got.EndTime)
	assert.Equal(t, end, *got.EndTime)
	assert.Equal(t, at(5, 9), got.StartTime)
	assert.Equal(t, models.EntryTypeRegular, got.Type)
	require.NotNil(t, p.last().TimeEntries[0].EndTime)

	_, active := s.ActiveEntry("3")
	assert.False(t, active)
}

func TestUpdateTimeEntry_NotFoundAndInvalid(t *testing.T) {
	s, p := newSeededStore(t)
	ctx := context.Background()
	saves := len(p.saved)

	end := at(5, 17)
	require.ErrorIs(t, s.UpdateTimeEntry(ctx, "missing", models.EntryPatch{EndTime: &end}), common.ErrorNotFound)
	assert.Len(t, p.saved, saves, "not found is a no-op")

	require.NoError(t, s.AddTimeEntry(ctx, models.TimeEntry{ID: "e1", UserID: "3", StartTime: at(5, 9)}))
	early := at(5, 9)
	require.ErrorIs(t, s.UpdateTimeEntry(ctx, "e1", models.EntryPatch{EndTime: &early}), common.ErrInvalidInterval)
	assert.True(t, s.TimeEntries()[0].IsOpen())
}

func TestUpdateTimeEntry_ClosedEntryCannotBeClosedAgain(t *testing.T) {
	s, p := newSeededStore(t)
	ctx := context.Background()
	end := at(5, 17)
	require.NoError(t, s.AddTimeEntry(ctx, models.TimeEntry{ID: "e1", UserID: "3", StartTime: at(5, 9), EndTime: &end}))
	saves := len(p.saved)

	later := at(5, 20)
	require.ErrorIs(t, s.UpdateTimeEntry(ctx, "e1", models.EntryPatch{EndTime: &later}), common.ErrConflict)
	assert.Equal(t, end, *s.TimeEntries()[0].EndTime)
	assert.Len(t, p.saved, saves)

	overtime := models.EntryTypeOvertime
	require.NoError(t, s.UpdateTimeEntry(ctx, "e1", models.EntryPatch{Type: &overtime}))
	assert.Equal(t, models.EntryTypeOvertime, s.TimeEntries()[0].Type)
}

func TestInit_TwoOpenEntriesForOneUser(t *testing.T) {
	loaded := models.Snapshot{
		Users: testUsers(),
		TimeEntries: []models.TimeEntry{
			{ID: "e1", UserID: "3", StartTime: at(5, 9)},
			{ID: "e2", UserID: "3", StartTime: at(5, 11)},
		},
	}

	s := New(&fakePersister{loaded: loaded}, logging.Nop())
	require.ErrorIs(t, s.Init(context.Background()), common.ErrConflict)
	assert.Empty(t, s.TimeEntries())

	s = New(&fakePersister{loaded: loaded}, logging.Nop(), WithActiveEntryPolicy(PolicyAllow))
	require.NoError(t, s.Init(context.Background()))
	active, ok := s.ActiveEntry("3")
	require.True(t, ok)
	assert.Equal(t, "e2", active.ID)
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	s, _ := newSeededStore(t)
	ctx := context.Background()
	end := at(5, 17)
	require.NoError(t, s.AddTimeEntry(ctx, models.TimeEntry{ID: "e1", UserID: "3", StartTime: at(5, 9), EndTime: &end}))

	snap := s.Snapshot()
	require.Len(t, snap.Users, 3)
	require.Len(t, snap.TimeEntries, 1)

	*snap.TimeEntries[0].EndTime = at(6, 0)
	snap.Users[0].FirstName = "Mallory"

	again := s.Snapshot()
	assert.Equal(t, at(5, 17), *again.TimeEntries[0].EndTime)
	assert.Equal(t, "Admin", again.Users[0].FirstName)
}

func TestPersistenceFailure_KeepsInMemoryState(t *testing.T) {
	s, p := newSeededStore(t)
	ctx := context.Background()
	p.saveErr = errors.New("quota exceeded")

	err := s.AddTimeEntry(ctx, models.TimeEntry{ID: "e1", UserID: "3", StartTime: at(5, 9)})
	require.ErrorIs(t, err, common.ErrPersistence)
	require.Len(t, s.TimeEntries(), 1)

	end := at(5, 12)
	err = s.UpdateTimeEntry(ctx, "e1", models.EntryPatch{EndTime: &end})
	require.ErrorIs(t, err, common.ErrPersistence)
	assert.False(t, s.TimeEntries()[0].IsOpen())
}

func TestReads_ReturnCopies(t *testing.T) {
	s, _ := newSeededStore(t)
	ctx := context.Background()
	end := at(5, 17)
	require.NoError(t, s.AddTimeEntry(ctx, models.TimeEntry{ID: "e1", UserID: "3", StartTime: at(5, 9), EndTime: &end}))

	got := s.TimeEntries()
	*got[0].EndTime = at(6, 0)
	got[0].UserID = "2"

	users := s.Users()
	users[0].FirstName = "Mallory"

	fresh := s.TimeEntries()[0]
	assert.Equal(t, at(5, 17), *fresh.EndTime)
	assert.Equal(t, "3", fresh.UserID)
	assert.Equal(t, "Admin", s.Users()[0].FirstName)
}

func TestSeed_Validation(t *testing.T) {
	s := New(&fakePersister{}, logging.Nop())
	ctx := context.Background()

	bad := testUsers()
	bad[1].Email = "broken"
	require.Error(t, s.Seed(ctx, models.Snapshot{Users: bad}))

	dup := append(testUsers(), testUsers()[0])
	require.ErrorIs(t, s.Seed(ctx, models.Snapshot{Users: dup}), common.ErrDuplicateID)
}

func TestClear(t *testing.T) {
	s, p := newSeededStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddTimeEntry(ctx, models.TimeEntry{ID: "e1", UserID: "3", StartTime: at(5, 9)}))

	require.NoError(t, s.Clear(ctx))

	assert.Empty(t, s.Users())
	assert.Empty(t, s.TimeEntries())
	assert.True(t, p.last().IsEmpty())

	require.NoError(t, s.Seed(ctx, models.Snapshot{Users: testUsers()}))
	require.NoError(t, s.AddTimeEntry(ctx, models.TimeEntry{ID: "e1", UserID: "3", StartTime: at(5, 9)}))
}

func TestParseActiveEntryPolicy(t *testing.T) {
	p, err := ParseActiveEntryPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyReject, p)

	p, err = ParseActiveEntryPolicy("autoclose")
	require.NoError(t, err)
	assert.Equal(t, PolicyAutoClose, p)

	_, err = ParseActiveEntryPolicy("merge")
	require.Error(t, err)
}

func TestDefaultSeed(t *testing.T) {
	snap := DefaultSeed(time.UTC, factory.New())

	open := 0
	for _, e := range snap.TimeEntries {
		if e.IsOpen() {
			open++
			assert.Equal(t, "7", e.UserID)
		}
	}
	assert.Equal(t, 1, open)
	assert.Equal(t, models.RoleAdmin, snap.Users[0].Role)
}
