// Package dialect names the SQL dialects the query compiler can target
// and implements the per-dialect behavior compilation needs:
// positional placeholder markers, identifier quoting and validation,
// and string-literal escaping.
//
// # Supported Dialects
//
// The following dialects are supported:
//
//   - MySQL: MySQL/MariaDB database
//   - SQLite: SQLite database
//   - Postgres: PostgreSQL database
//   - Oracle: Oracle database
//
// # Dialect Constants
//
// Each dialect is identified by a constant string:
//
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//	dialect.Postgres = "postgres"
//	dialect.Oracle   = "oracle"
//
// # Placeholders
//
// Placeholder returns the marker for the n-th positional parameter:
//
//	dialect.Placeholder(dialect.MySQL, 1)    // "?"
//	dialect.Placeholder(dialect.Postgres, 2) // "$2"
//	dialect.Placeholder(dialect.Oracle, 3)   // ":3"
//
// MySQL and SQLite use an anonymous marker, so the index is ignored;
// unknown dialect names fall back to it.
//
// # Quoting
//
// The compiler emits identifiers unquoted. Quote is for callers that
// embed names in raw fragments:
//
//	dialect.Quote(dialect.Postgres, "select") // `"select"`
//	dialect.Quote(dialect.MySQL, "select")    // "`select`"
package dialect
