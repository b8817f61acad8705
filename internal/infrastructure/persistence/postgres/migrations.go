package postgres

import "embed"

// Migrations holds the schema owned by ApplicationRepo. Pass it to
// pkg/postgres.RunMigrations with MigrationsDir.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the SQL files.
const MigrationsDir = "migrations"
