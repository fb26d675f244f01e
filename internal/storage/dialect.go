package storage

import (
	"strconv"
	"strings"
)

// Dialect identifies which of the two supported backends is active. It is
// chosen once, at Open time, and every query during the process lifetime goes
// through the same dialect.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

func (d Dialect) String() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// rebind rewrites `?` placeholders into the dialect's native form. Queries in
// this package are written with `?` and rebound at the call site, so no SQL
// text is ever branched per dialect outside this file.
func (d Dialect) rebind(query string) string {
	if d == DialectSQLite {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d Dialect) autoIncrementPK() string {
	if d == DialectPostgres {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// hourExpr extracts the hour of day (0-23) from a text timestamp column.
func (d Dialect) hourExpr(col string) string {
	if d == DialectPostgres {
		return "EXTRACT(HOUR FROM " + col + "::timestamp)::int"
	}
	return "CAST(strftime('%H', " + col + ") AS INTEGER)"
}
