package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/sakif/edumentor/internal/apperror"
)

// DefaultStatementTimeout bounds every statement when Config leaves it unset.
const DefaultStatementTimeout = 5 * time.Second

// Config is the connection configuration. It carries the five keys of the
// deployment's properties file (url, name, username, password,
// driverIdentifier) plus the pool settings.
//
// URL is driver specific:
//   - sqlite:   a file path or ":memory:"
//   - mysql:    host:port; Name selects the database
//   - postgres: a postgres:// URL or key=value DSN; Name, Username and
//     Password override what the URL carries
type Config struct {
	URL              string
	Name             string
	Username         string
	Password         string
	Driver           string
	MaxOpenConns     int
	StatementTimeout time.Duration
}

// driverAliases maps the accepted driver identifiers to a dialect. The JDBC
// class names let an existing jdbc.properties file be reused unchanged.
var driverAliases = map[string]Dialect{
	"sqlite":                   SQLite,
	"sqlite3":                  SQLite,
	"mysql":                    MySQL,
	"com.mysql.cj.jdbc.driver": MySQL,
	"com.mysql.jdbc.driver":    MySQL,
	"pgx":                      Postgres,
	"postgres":                 Postgres,
	"postgresql":               Postgres,
	"org.postgresql.driver":    Postgres,
}

// resolve validates cfg and returns the dialect for its driver. The error
// wraps apperror.ErrConfig.
func (cfg Config) resolve() (Dialect, error) {
	d, ok := driverAliases[strings.ToLower(strings.TrimSpace(cfg.Driver))]
	if !ok {
		if cfg.Driver == "" {
			return nil, fmt.Errorf("db: %w: driver identifier is required", apperror.ErrConfig)
		}
		return nil, fmt.Errorf("db: %w: unknown driver %q", apperror.ErrConfig, cfg.Driver)
	}
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("db: %w: url is required", apperror.ErrConfig)
	}
	if cfg.MaxOpenConns < 0 {
		return nil, fmt.Errorf("db: %w: max open connections must not be negative", apperror.ErrConfig)
	}
	if cfg.StatementTimeout < 0 {
		return nil, fmt.Errorf("db: %w: statement timeout must not be negative", apperror.ErrConfig)
	}
	return d, nil
}
