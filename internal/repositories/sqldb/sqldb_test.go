package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/timekeeper/internal/dbx"
	"github.com/dmitrijs2005/timekeeper/internal/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *Persister {
	t.Helper()
	p, err := Open(context.Background(), dbx.DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func sample() models.Snapshot {
	loc := time.FixedZone("UTC+3", 3*60*60)
	start := time.Date(2025, 2, 5, 9, 15, 30, 123456789, loc)
	end := start.Add(8 * time.Hour)
	return models.Snapshot{
		Users: []models.User{
			{ID: "2", Email: "john@example.com", FirstName: "John", LastName: "Doe", Role: models.RoleEmployee, HourlyRate: 25},
			{ID: "1", Email: "admin@example.com", FirstName: "Admin", LastName: "User", Role: models.RoleAdmin},
		},
		TimeEntries: []models.TimeEntry{
			{ID: "e2", UserID: "2", StartTime: start, EndTime: &end, Type: models.EntryTypeRegular},
			{ID: "e1", UserID: "2", StartTime: start.Add(24 * time.Hour), Type: models.EntryTypeOvertime},
		},
	}
}

func TestOpen_RunsMigrations(t *testing.T) {
	p := openSQLite(t)

	var n int
	require.NoError(t, p.db.QueryRow(`SELECT COUNT(*) FROM goose_db_version`).Scan(&n))
	assert.Positive(t, n)

	snap, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
}

func TestOpen_UnsupportedDialect(t *testing.T) {
	_, err := Open(context.Background(), dbx.Dialect("oracle"), "")
	require.Error(t, err)
}

func TestSaveLoad_PreservesOrderAndInstants(t *testing.T) {
	p := openSQLite(t)
	ctx := context.Background()
	want := sample()

	require.NoError(t, p.Save(ctx, want))
	got, err := p.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.Users, got.Users)
	require.Len(t, got.TimeEntries, 2)
	assert.Equal(t, "e2", got.TimeEntries[0].ID, "collection order survives")
	assert.True(t, want.TimeEntries[0].StartTime.Equal(got.TimeEntries[0].StartTime))
	_, offset := got.TimeEntries[0].StartTime.Zone()
	assert.Equal(t, 3*60*60, offset)
	require.NotNil(t, got.TimeEntries[0].EndTime)
	assert.True(t, want.TimeEntries[0].EndTime.Equal(*got.TimeEntries[0].EndTime))
	assert.Nil(t, got.TimeEntries[1].EndTime)
	assert.Equal(t, models.EntryTypeOvertime, got.TimeEntries[1].Type)
}

func TestSave_ReplacesPreviousContent(t *testing.T) {
	p := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, p.Save(ctx, sample()))
	require.NoError(t, p.Save(ctx, models.Snapshot{Users: sample().Users[:1]}))

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Users, 1)
	assert.Empty(t, got.TimeEntries)
}

func TestSave_DuplicateIDRollsBack(t *testing.T) {
	p := openSQLite(t)
	ctx := context.Background()
	require.NoError(t, p.Save(ctx, sample()))

	bad := sample()
	bad.TimeEntries[1].ID = bad.TimeEntries[0].ID
	require.Error(t, p.Save(ctx, bad))

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.TimeEntries, 2, "failed save leaves the previous state")
}

func TestLoad_QueryErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`select id, email`).WillReturnError(errors.New("db down"))

	_, err = New(db, dbx.DialectPostgres).Load(context.Background())
	require.ErrorContains(t, err, "failed to select users")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_BadTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`select id, email`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "first_name", "last_name", "role", "hourly_rate"}))
	mock.ExpectQuery(`select id, user_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "start_time", "end_time", "entry_type"}).
			AddRow("e1", "2", "yesterday", nil, "regular"))

	_, err = New(db, dbx.DialectPostgres).Load(context.Background())
	require.ErrorContains(t, err, "start time")
}

func TestSave_PostgresPlaceholdersAndRollback(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`delete from time_entries`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`delete from users`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`values \(\$1, \$2, \$3, \$4, \$5, \$6, \$7\)`).
		WithArgs(sqlmock.AnyArg(), "2", "john@example.com", "John", "Doe", "employee", 25.0).
		WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	snap := sample()
	snap.Users = snap.Users[:1]
	err = New(db, dbx.DialectPostgres).Save(context.Background(), snap)
	require.ErrorContains(t, err, "failed to insert user 2")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_PropagatesError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("migration failed")
	}

	err = RunMigrations(context.Background(), db, dbx.DialectPostgres)
	require.ErrorContains(t, err, "migration failed")
}
