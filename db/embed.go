// Package db embeds the SQL migrations so production builds can run
// them without the migration files on disk.
package db

import "embed"

//go:embed migrations
var Migrations embed.FS
