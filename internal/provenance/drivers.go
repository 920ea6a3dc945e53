// Package provenance records per-session decoding metadata — who decoded
// what, how many big-number scalars it contained, and the sub-tree digest
// of the result — to a relational store chosen at runtime by DSN scheme.
package provenance

import (
	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// driverFor maps a user-facing backend name to the database/sql driver
// name registered by that backend's import above.
func driverFor(backend string) (string, bool) {
	switch backend {
	case "sqlite3":
		return "sqlite3", true
	case "sqlite":
		return "sqlite", true
	case "postgres", "postgresql":
		return "postgres", true
	case "mysql":
		return "mysql", true
	case "sqlserver", "mssql":
		return "sqlserver", true
	default:
		return "", false
	}
}
