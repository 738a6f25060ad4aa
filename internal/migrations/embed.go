// Package migrations embeds the SQL migration files for the demo schemas
// used by the integration tests and `vgctl demo`; vgserve does not apply
// them.
package migrations

import "embed"

// FS contains the embedded SQL migration files.
//
//go:embed *.sql
var FS embed.FS
