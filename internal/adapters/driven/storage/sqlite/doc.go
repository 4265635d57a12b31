// Package sqlite provides an SQLite-backed implementation of the
// report store port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. Reports are
// stored as a JSON payload with a handful of indexed columns (user,
// category, eligibility outcome) for listing and filtering.
//
// The database schema is managed through versioned migrations embedded
// at compile time; pending migrations run on store creation.
package sqlite
