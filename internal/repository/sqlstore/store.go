// Package sqlstore implements the repository interfaces on database/sql.
//
// One DB value owns the eight entity stores. Every store operation follows
// the same path (see run):
//
//  1. validate the entity, when the operation writes one
//  2. bound the operation with the provider's statement timeout
//  3. check out a pooled connection, released on every exit path
//  4. build the statement from the store's base query and run it
//  5. map each row with the store's mapper
//
// Driver failures are logged and returned as *apperror.StorageError. They
// are never turned into empty results. "No row" is not a failure: single
// entity finders return (nil, nil) and slice finders an empty slice.
//
// Statements are written once with "?" placeholders and rebound for the
// provider's dialect, so the same store code runs on SQLite, MySQL and
// PostgreSQL.
package sqlstore

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"
	"time"

	"github.com/jinzhu/inflection"

	"github.com/sakif/edumentor/internal/apperror"
	"github.com/sakif/edumentor/internal/db"
	"github.com/sakif/edumentor/internal/metrics"
	"github.com/sakif/edumentor/internal/validate"
)

// Connector supplies connections. *db.Provider implements it.
type Connector interface {
	Conn(ctx context.Context) (*sql.Conn, error)
	Dialect() db.Dialect
	StatementTimeout() time.Duration
}

// DB holds the shared dependencies of the stores and hands them out.
// Stores are created once in New and are safe for concurrent use.
type DB struct {
	connector Connector
	dialect   db.Dialect
	logger    *slog.Logger
	now       func() time.Time

	roles      *RoleStore
	categories *CategoryStore
	users      *UserStore
	posts      *PostStore
	questions  *QuestionStore
	answers    *AnswerStore
	reviews    *ReviewStore
	messages   *MessageStore
}

func New(connector Connector, logger *slog.Logger) *DB {
	d := &DB{
		connector: connector,
		dialect:   connector.Dialect(),
		logger:    logger,
		now:       time.Now,
	}
	d.roles = &RoleStore{db: d, base: selectFrom(roleBase)}
	d.categories = &CategoryStore{db: d, base: selectFrom(categoryBase)}
	d.users = &UserStore{db: d, base: selectFrom(userBase)}
	d.posts = &PostStore{db: d, base: selectFrom(postBase)}
	d.questions = &QuestionStore{db: d, base: selectFrom(questionBase)}
	d.answers = &AnswerStore{db: d, base: selectFrom(answerBase)}
	d.reviews = &ReviewStore{db: d, base: selectFrom(reviewBase)}
	d.messages = &MessageStore{db: d, base: selectFrom(messageBase)}
	return d
}

func (d *DB) Roles() *RoleStore          { return d.roles }
func (d *DB) Categories() *CategoryStore { return d.categories }
func (d *DB) Users() *UserStore          { return d.users }
func (d *DB) Posts() *PostStore          { return d.posts }
func (d *DB) Questions() *QuestionStore  { return d.questions }
func (d *DB) Answers() *AnswerStore      { return d.answers }
func (d *DB) Reviews() *ReviewStore      { return d.reviews }
func (d *DB) Messages() *MessageStore    { return d.messages }

// run executes fn on a checked out connection under the statement timeout.
// table and op name the operation in metrics, logs and errors.
func (d *DB) run(ctx context.Context, table, op string, fn func(ctx context.Context, conn *sql.Conn) error) (err error) {
	start := time.Now()
	defer func() {
		result := metrics.ResultOK
		if err != nil {
			result = metrics.ResultError
		}
		metrics.StoreOperationDuration.WithLabelValues(table, op).Observe(time.Since(start).Seconds())
		metrics.StoreOperationsTotal.WithLabelValues(table, op, result).Inc()
	}()

	ctx, cancel := context.WithTimeout(ctx, d.connector.StatementTimeout())
	defer cancel()

	conn, err := d.connector.Conn(ctx)
	if err != nil {
		return d.fail(table, op, err)
	}
	defer conn.Close()

	if err := fn(ctx, conn); err != nil {
		return d.fail(table, op, err)
	}
	return nil
}

func (d *DB) fail(table, op string, err error) error {
	d.logger.Error("store operation failed",
		slog.String("store", table),
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
	return apperror.Storage(table+"."+op, err)
}

// check validates entity before a write. Rejections never reach the
// database and are counted as "invalid".
func (d *DB) check(table, op string, entity any) error {
	if err := validate.Struct(entity); err != nil {
		metrics.StoreOperationsTotal.WithLabelValues(table, op, metrics.ResultInvalid).Inc()
		return err
	}
	return nil
}

// list runs q and maps every row.
func list[T any](ctx context.Context, d *DB, table, op string, q query, mapRow func(Row) T) ([]T, error) {
	out := []T{}
	err := d.run(ctx, table, op, func(ctx context.Context, conn *sql.Conn) error {
		stmt, args := q.build(d.dialect)
		rows, err := conn.QueryContext(ctx, stmt, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		return scanRows(rows, func(r Row) {
			out = append(out, mapRow(r))
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// first runs q and maps its first row. It returns nil when q matches nothing.
func first[T any](ctx context.Context, d *DB, table, op string, q query, mapRow func(Row) T) (*T, error) {
	found, err := list(ctx, d, table, op, q.Limit(1), mapRow)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return &found[0], nil
}

// exec runs a write statement and returns the number of affected rows.
func (d *DB) exec(ctx context.Context, table, op, stmt string, args ...any) (int64, error) {
	var affected int64
	err := d.run(ctx, table, op, func(ctx context.Context, conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, db.Rebind(d.dialect, stmt), args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	return affected, err
}

// insert runs an INSERT and returns the generated value of pk, through
// RETURNING or LastInsertId depending on the dialect.
func (d *DB) insert(ctx context.Context, table, pk, stmt string, args ...any) (int64, error) {
	var id int64
	err := d.run(ctx, table, "save", func(ctx context.Context, conn *sql.Conn) error {
		if d.dialect.UseReturning() {
			return conn.QueryRowContext(ctx, db.Rebind(d.dialect, stmt+d.dialect.ReturningClause(pk)), args...).Scan(&id)
		}
		res, err := conn.ExecContext(ctx, db.Rebind(d.dialect, stmt), args...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// remove deletes by primary key. Zero affected rows is not an error.
func (d *DB) remove(ctx context.Context, table, pk string, id int64) error {
	_, err := d.exec(ctx, table, "delete", "DELETE FROM "+table+" WHERE "+pk+" = ?", id)
	return err
}

// notFound builds the NotFound error for a row of table, e.g. "user not
// found with id 7".
func notFound(table string, id int64) error {
	return apperror.NotFound(inflection.Singular(table), strconv.FormatInt(id, 10))
}

// nullID binds an unset foreign key as NULL.
func nullID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// timestamp normalises t for a timestamp column: UTC, microsecond precision
// (the finest all three engines store), and now when t is unset.
func (d *DB) timestamp(t time.Time) time.Time {
	if t.IsZero() {
		t = d.now()
	}
	return t.UTC().Truncate(time.Microsecond)
}

// date normalises t for a date column: midnight UTC of t's calendar day, and
// today when t is unset. Date columns are bound as "2006-01-02" text, which
// every engine compares against a DATE without a time zone conversion.
func (d *DB) date(t time.Time) time.Time {
	if t.IsZero() {
		t = d.now()
	}
	return day(t)
}

func day(t time.Time) time.Time {
	y, m, dd := t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}
