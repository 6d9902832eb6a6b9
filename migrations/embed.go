// Package migrations embeds the goose SQL migrations so the migrate command
// and integration tests need no files on disk.
package migrations

import "embed"

// FS holds every *.sql migration. Pass it to goose.NewProvider.
//
//go:embed *.sql
var FS embed.FS
