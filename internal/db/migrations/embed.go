// Package migrations holds the catalog schema as goose SQL files.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
