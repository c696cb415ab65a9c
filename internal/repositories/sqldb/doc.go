// Package sqldb persists the store snapshot in a relational database.
//
// Two dialects are supported: SQLite through modernc.org/sqlite and
// PostgreSQL through pgx's database/sql driver. The schema is managed by
// goose using the embedded migrations. Save replaces both tables inside a
// single transaction and each row keeps its collection position, so Load
// returns the collections in their saved order.
//
// Timestamps are stored as RFC 3339 text with nanoseconds and their
// original UTC offset.
package sqldb
