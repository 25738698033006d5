// Package migrations embeds goose SQL migrations for the master data schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
