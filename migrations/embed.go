// Package migrations holds the goose SQL migrations, embedded into binaries
// and test helpers.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
