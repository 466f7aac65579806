// Package migrations embeds the goose migration files so the migrate
// command can run them without needing the source tree on disk.
package migrations

import "embed"

//go:embed projects/*.sql
var FS embed.FS
