// Package sqlite provides a SQLite-based implementation of the local
// stores sinaliza keeps next to the spreadsheets.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. It currently implements:
//
//   - ReconciliationStore: markers for video registrations that stopped partway
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.sinaliza/data/sinaliza.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
