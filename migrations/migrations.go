// Package migrations embeds the goose SQL migrations so the application can
// bring the schema up at boot without shipping the files separately.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
