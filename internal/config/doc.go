// Package config loads runtime configuration for the timekeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed with TK_ (read with cleanenv).
//  4. Command-line flags.
//
// Later sources override earlier ones. The result is validated before it is
// returned; any problem is reported as common.ErrorIncorrectConfig.
//
// # JSON schema
//
// Durations are timex.Duration values, so they can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "storage": "sqlite",
//	  "data_path": "data/timekeeper.db",
//	  "schedule_start_hour": 9,
//	  "schedule_end_hour": 17,
//	  "regular_rate": 20,
//	  "overtime_rate": 30,
//	  "watch_interval": "1m",
//	  "long_session_after": "10h"
//	}
//
// Storage backends
//
//	memory    nothing persisted
//	json      single JSON document at data_path
//	sqlite    SQLite database file at data_path (or database_dsn)
//	postgres  PostgreSQL reachable at database_dsn
//	s3        JSON document in s3_bucket under s3_key
//
// The json and s3 backends seal the document when data_passphrase (or
// TK_DATA_PASSPHRASE) is set. There is no flag for it, so the secret never
// shows up in the process list.
package config
