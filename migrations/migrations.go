// Package migrations embeds the goose SQL migrations for the postgres schema
package migrations

import "embed"

//go:embed *.sql
var MigrationsFS embed.FS
