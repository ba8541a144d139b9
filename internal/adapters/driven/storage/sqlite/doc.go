// Package sqlite provides the SQLite-backed document store and search
// engine.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. A single database holds two tables:
//
//   - documents: the original markup, decoded text and metadata
//   - postings: one row per token occurrence with its term, position and
//     byte offsets into the original markup
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.fts5html/data/index.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. The store relies on SQLite's
// own locking in WAL mode.
package sqlite
