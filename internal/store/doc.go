// Package store holds the authoritative, in-process collection of users and
// time entries.
//
// # Overview
//
// A Store is constructed once at start-up with New, filled with Init (load
// from the persistence port, optionally seeding defaults) or Seed, and handed
// to every consumer. There is no package-level instance.
//
// All reads return copies. All writes go through AddTimeEntry and
// UpdateTimeEntry (plus Seed and Clear for lifecycle), and every write saves
// the whole snapshot through the Persister before returning. When the save
// fails the in-memory change is kept and an error wrapping
// common.ErrPersistence is returned.
//
// # Concurrency
//
// The store is meant for a single writer. A RWMutex still guards the state so
// background readers (the CLI session watcher) never observe a half-applied
// mutation; the lock is held across the in-memory change and the save.
package store
