package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	// Registers the pure Go "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// openPool creates the *sql.DB for cfg. It does not connect; the first
// checkout does.
func openPool(cfg Config, d Dialect) (*sql.DB, error) {
	switch d {
	case SQLite:
		return openSQLite(cfg)
	case MySQL:
		return openMySQL(cfg)
	case Postgres:
		return openPostgres(cfg)
	default:
		return nil, fmt.Errorf("db: no opener for dialect %s", d.Name())
	}
}

func openSQLite(cfg Config) (*sql.DB, error) {
	pool, err := sql.Open("sqlite", sqliteDSN(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("db: opening sqlite: %w", err)
	}
	// SQLite serialises writers anyway, and ":memory:" databases exist per
	// connection: one connection keeps every caller on the same database.
	pool.SetMaxOpenConns(1)
	pool.SetConnMaxIdleTime(0)
	pool.SetConnMaxLifetime(0)
	return pool, nil
}

// sqliteDSN turns on foreign keys for every connection the driver opens.
func sqliteDSN(path string) string {
	path = strings.TrimPrefix(path, "jdbc:sqlite:")
	if strings.Contains(path, "foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

func openMySQL(cfg Config) (*sql.DB, error) {
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr, mc.DBName = mysqlAddr(cfg.URL)
	if cfg.Name != "" {
		mc.DBName = cfg.Name
	}
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.ParseTime = true
	// report matched rather than changed rows, so an UPDATE that rewrites
	// identical values still counts as a hit
	mc.ClientFoundRows = true
	mc.Loc = time.UTC

	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, fmt.Errorf("db: building mysql connector: %w", err)
	}
	pool := sql.OpenDB(connector)
	if cfg.MaxOpenConns > 0 {
		pool.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	return pool, nil
}

// mysqlAddr accepts "host:port", "mysql://host:port/db" and the JDBC form
// "jdbc:mysql://host:port/db". It returns the address and, when present in
// the URL, the database name.
func mysqlAddr(raw string) (addr, name string) {
	raw = strings.TrimPrefix(raw, "jdbc:")
	if !strings.Contains(raw, "://") {
		return raw, ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw, ""
	}
	return u.Host, strings.TrimPrefix(u.Path, "/")
}

func openPostgres(cfg Config) (*sql.DB, error) {
	pc, err := pgx.ParseConfig(strings.TrimPrefix(cfg.URL, "jdbc:"))
	if err != nil {
		return nil, fmt.Errorf("db: parsing postgres url: %w", err)
	}
	if cfg.Name != "" {
		pc.Database = cfg.Name
	}
	if cfg.Username != "" {
		pc.User = cfg.Username
	}
	if cfg.Password != "" {
		pc.Password = cfg.Password
	}

	pool := stdlib.OpenDB(*pc)
	if cfg.MaxOpenConns > 0 {
		pool.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	return pool, nil
}
