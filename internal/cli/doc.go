// Package cli is the interactive timekeeper front end.
//
// NewApp wires configuration, the configured persister, the entry store and
// the command executor. Run starts a background watcher that warns about
// sessions left open too long and then serves a line-oriented REPL on
// stdin until EOF or "exit". Every handler reports its own errors, so a
// failing command never ends the session.
package cli
