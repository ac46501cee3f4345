// Package db ships the schema migrations shared by every service.
package db

import "embed"

// Migrations holds the versioned *.up.sql / *.down.sql files under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the files.
const MigrationsDir = "migrations"
