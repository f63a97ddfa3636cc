package sqlstore

import (
	"strconv"
	"strings"
)

// Dialect isolates the differences between the SQL engines the store runs on.
// Queries are written with '?' placeholders and rebound per dialect.
type Dialect interface {
	Name() string
	// GooseDialect is the dialect name handed to goose.SetDialect.
	GooseDialect() string
	// MigrationsDir is the directory inside the embedded migrations FS.
	MigrationsDir() string
	Rebind(query string) string
	IsUniqueViolation(err error) bool
	IsForeignKeyViolation(err error) bool
}

// rebindDollar rewrites '?' placeholders to $1, $2, ... Placeholders inside
// single-quoted literals are left alone.
func rebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
