package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/dbx"
	"github.com/dmitrijs2005/timekeeper/internal/migrations"
	"github.com/dmitrijs2005/timekeeper/internal/models"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

// Persister implements store.Persister on top of *sql.DB.
type Persister struct {
	db      *sql.DB
	dialect dbx.Dialect
}

// Open connects to dsn with the dialect's driver and applies migrations.
func Open(ctx context.Context, dialect dbx.Dialect, dsn string) (*Persister, error) {
	driver, err := dialect.DriverName()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == dbx.DialectSQLite {
		// a single connection keeps ":memory:" databases alive across calls
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	if err := RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}

	return New(db, dialect), nil
}

// New wraps an already migrated database.
func New(db *sql.DB, dialect dbx.Dialect) *Persister {
	return &Persister{db: db, dialect: dialect}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	goose.SetBaseFS(migrations.Migrations)

	gooseDialect := "sqlite3"
	if dialect == dbx.DialectPostgres {
		gooseDialect = "pgx"
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (p *Persister) Close() error {
	return p.db.Close()
}

// Load reads both collections ordered by their saved position.
func (p *Persister) Load(ctx context.Context) (models.Snapshot, error) {
	users, err := p.loadUsers(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	entries, err := p.loadEntries(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	return models.Snapshot{Users: users, TimeEntries: entries}, nil
}

func (p *Persister) loadUsers(ctx context.Context) ([]models.User, error) {
	query := `select id, email, first_name, last_name, role, hourly_rate from users order by position`
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		var u models.User
		var role string
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &role, &u.HourlyRate); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = models.Role(role)
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Persister) loadEntries(ctx context.Context) ([]models.TimeEntry, error) {
	query := `select id, user_id, start_time, end_time, entry_type from time_entries order by position`
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select time entries: %w", err)
	}
	defer rows.Close()

	var result []models.TimeEntry
	for rows.Next() {
		var (
			e         models.TimeEntry
			start     string
			end       sql.NullString
			entryType string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &start, &end, &entryType); err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}

		e.StartTime, err = time.Parse(timeLayout, start)
		if err != nil {
			return nil, fmt.Errorf("time entry %s: start time: %w", e.ID, err)
		}
		if end.Valid {
			t, err := time.Parse(timeLayout, end.String)
			if err != nil {
				return nil, fmt.Errorf("time entry %s: end time: %w", e.ID, err)
			}
			e.EndTime = &t
		}
		e.Type = models.EntryType(entryType)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Save replaces the stored collections with snapshot in one transaction.
func (p *Persister) Save(ctx context.Context, snapshot models.Snapshot) error {
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `delete from time_entries`); err != nil {
			return fmt.Errorf("failed to clear time entries: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `delete from users`); err != nil {
			return fmt.Errorf("failed to clear users: %w", err)
		}

		insertUser := p.dialect.Rebind(`insert into users (position, id, email, first_name, last_name, role, hourly_rate)
			values (?, ?, ?, ?, ?, ?, ?)`)
		for i, u := range snapshot.Users {
			if _, err := tx.ExecContext(ctx, insertUser,
				i, u.ID, u.Email, u.FirstName, u.LastName, string(u.Role), u.HourlyRate); err != nil {
				return fmt.Errorf("failed to insert user %s: %w", u.ID, err)
			}
		}

		insertEntry := p.dialect.Rebind(`insert into time_entries (position, id, user_id, start_time, end_time, entry_type)
			values (?, ?, ?, ?, ?, ?)`)
		for i, e := range snapshot.TimeEntries {
			var end sql.NullString
			if e.EndTime != nil {
				end = sql.NullString{String: e.EndTime.Format(timeLayout), Valid: true}
			}
			if _, err := tx.ExecContext(ctx, insertEntry,
				i, e.ID, e.UserID, e.StartTime.Format(timeLayout), end, string(e.Type)); err != nil {
				return fmt.Errorf("failed to insert time entry %s: %w", e.ID, err)
			}
		}
		return nil
	})
}
