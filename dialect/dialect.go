package dialect

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// Dialect names accepted by the compiler.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
	Oracle   = "oracle"
)

// maxIdentifierLen caps identifier length to the common engine limit.
const maxIdentifierLen = 128

// Placeholder returns the marker for the n-th positional parameter
// (1-based) in the given dialect. MySQL and SQLite use an anonymous
// marker, so n is ignored; unknown dialects fall back to it.
func Placeholder(dialect string, n int) string {
	switch dialect {
	case Postgres:
		return "$" + strconv.Itoa(n)
	case Oracle:
		return ":" + strconv.Itoa(n)
	default:
		return "?"
	}
}

// Quote returns ident quoted for the given dialect. MySQL quotes with
// backticks; the others follow the double-quote rules Postgres, SQLite
// and Oracle share.
func Quote(dialect, ident string) string {
	if dialect == MySQL {
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	}
	return pq.QuoteIdentifier(ident)
}

// validIdentifierRe matches identifiers that are safe to emit unquoted.
var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidIdentifier reports whether s can be used as an unquoted SQL
// identifier: non-empty, at most 128 characters, starting with a letter
// or underscore and containing only letters, digits and underscores.
func ValidIdentifier(s string) bool {
	if s == "" || len(s) > maxIdentifierLen {
		return false
	}
	return validIdentifierRe.MatchString(s)
}

// EscapeString escapes s for embedding in a single-quoted SQL literal.
// Backslashes are doubled before quotes, so the result stays correct
// for dialects that treat backslash as an escape character.
func EscapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", "''")
}
