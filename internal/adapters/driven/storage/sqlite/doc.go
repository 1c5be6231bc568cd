// Package sqlite provides a SQLite-based implementation of the NoteStore port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Notes live in a key/value table as one JSON-encoded array under the key
// "notes", written with a single upsert so readers never see a partial list.
//
// # Data Location
//
// By default, the database is stored at ~/.citewise/data/citewise.db
package sqlite
