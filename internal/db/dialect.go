package db

import (
	"fmt"
	"strings"
)

// Dialect abstracts the SQL differences between the supported engines.
// Stores write every statement with "?" placeholders and let Rebind
// translate them.
type Dialect interface {
	// Name is the canonical driver identifier: sqlite, mysql or postgres.
	Name() string

	// Placeholder returns the bind parameter for the given 1-based index.
	Placeholder(index int) string

	// UseReturning reports whether INSERT retrieves the generated key with
	// a RETURNING clause rather than LastInsertId.
	UseReturning() bool

	// ReturningClause is appended to INSERT statements when UseReturning
	// is true.
	ReturningClause(pk string) string

	// Like is the case-insensitive pattern operator.
	Like() string
}

var (
	SQLite   Dialect = sqliteDialect{}
	MySQL    Dialect = mysqlDialect{}
	Postgres Dialect = postgresDialect{}
)

type sqliteDialect struct{}

func (sqliteDialect) Name() string                    { return "sqlite" }
func (sqliteDialect) Placeholder(_ int) string        { return "?" }
func (sqliteDialect) UseReturning() bool              { return false }
func (sqliteDialect) ReturningClause(_ string) string { return "" }
func (sqliteDialect) Like() string                    { return "LIKE" }

type mysqlDialect struct{}

func (mysqlDialect) Name() string                    { return "mysql" }
func (mysqlDialect) Placeholder(_ int) string        { return "?" }
func (mysqlDialect) UseReturning() bool              { return false }
func (mysqlDialect) ReturningClause(_ string) string { return "" }
func (mysqlDialect) Like() string                    { return "LIKE" }

type postgresDialect struct{}

func (postgresDialect) Name() string                     { return "postgres" }
func (postgresDialect) Placeholder(index int) string     { return fmt.Sprintf("$%d", index) }
func (postgresDialect) UseReturning() bool               { return true }
func (postgresDialect) ReturningClause(pk string) string { return " RETURNING " + pk }
func (postgresDialect) Like() string                     { return "ILIKE" }

// Rebind rewrites the "?" placeholders in query for d. Queries never carry a
// literal "?" inside string constants, so a byte scan is enough.
func Rebind(d Dialect, query string) string {
	if d.Placeholder(1) == "?" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	idx := 1
	for i := range len(query) {
		if query[i] == '?' {
			b.WriteString(d.Placeholder(idx))
			idx++
		} else {
			b.WriteByte(query[i])
		}
	}
	return b.String()
}
