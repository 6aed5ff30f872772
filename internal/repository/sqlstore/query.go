package sqlstore

import (
	"strings"

	"github.com/sakif/edumentor/internal/db"
)

// query is an immutable SELECT builder. Every store defines its base
// query (column list plus joins) once; finders only append WHERE, ORDER BY
// and LIMIT, so every row a store reads has the same shape.
//
// All builder methods return a new query; the receiver is never modified.
type query struct {
	base    string
	wheres  []string
	args    []any
	orderBy []string
	limit   *int
}

func selectFrom(base string) query {
	return query{base: base}
}

// Where adds a condition, AND-ed with the others. Clauses use "?"
// placeholders regardless of dialect.
func (q query) Where(clause string, args ...any) query {
	q.wheres = append(append([]string(nil), q.wheres...), clause)
	q.args = append(append([]any(nil), q.args...), args...)
	return q
}

func (q query) OrderBy(clause string) query {
	q.orderBy = append(append([]string(nil), q.orderBy...), clause)
	return q
}

func (q query) Limit(n int) query {
	q.limit = &n
	return q
}

// build renders the statement for d and returns it with its arguments.
func (q query) build(d db.Dialect) (string, []any) {
	var b strings.Builder
	b.WriteString(q.base)

	args := append([]any(nil), q.args...)
	if len(q.wheres) > 0 {
		b.WriteString(" WHERE ")
		for i, w := range q.wheres {
			if i > 0 {
				b.WriteString(" AND ")
			}
			if len(q.wheres) > 1 {
				b.WriteString("(" + w + ")")
			} else {
				b.WriteString(w)
			}
		}
	}
	if len(q.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(q.orderBy, ", "))
	}
	if q.limit != nil {
		b.WriteString(" LIMIT ?")
		args = append(args, *q.limit)
	}
	return db.Rebind(d, b.String()), args
}

// likeEscape marks a literal wildcard in a LIKE pattern. A backslash would
// itself need escaping inside MySQL string literals, "!" needs it nowhere.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// like builds the case-insensitive pattern condition on column for d. Bind
// it with a pattern from contains.
func like(d db.Dialect, column string) string {
	return column + " " + d.Like() + " ? ESCAPE '" + likeEscape + "'"
}

// contains wraps a search term for a substring match. Wildcards in term
// match themselves.
func contains(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
