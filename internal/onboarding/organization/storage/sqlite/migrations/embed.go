package migrations

import "embed"

// FS contains embedded SQLite migrations for organization storage.
//
//go:embed *.sql
var FS embed.FS
