// Package migrations embeds the schema migrations for the report store.
package migrations

import "embed"

// FS holds the versioned *.up.sql migration files.
//
//go:embed *.sql
var FS embed.FS
