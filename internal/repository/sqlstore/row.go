package sqlstore

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Row is one result row keyed by column label. Its accessors accept every
// representation the supported drivers produce for a column type (integers
// as int64, int32 or text; text as string or []byte; times as time.Time or
// text) and return the zero value for NULL. That keeps the per-store mappers
// pure functions of a Row, testable with synthetic rows.
type Row map[string]any

// timeLayouts are tried in order when a driver hands a time back as text.
// The first is the format modernc.org/sqlite writes time.Time values in.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func (r Row) Int64(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case uint64:
		return int64(v)
	case float64:
		return int64(v)
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

func (r Row) Int(col string) int {
	return int(r.Int64(col))
}

func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	default:
		if i := r.Int64(col); i != 0 {
			return strconv.FormatInt(i, 10)
		}
		return ""
	}
}

// Time returns the column as a UTC time.
func (r Row) Time(col string) time.Time {
	var s string
	switch v := r[col].(type) {
	case time.Time:
		return v.UTC()
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return time.Time{}
	}

	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// scanRows reads every row of rows into a Row and hands it to each.
func scanRows(rows *sql.Rows, each func(Row)) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		r := make(Row, len(cols))
		for i, c := range cols {
			r[c] = vals[i]
		}
		each(r)
	}
	return rows.Err()
}
