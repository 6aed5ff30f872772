// Package db is the connection provider of the persistence layer.
//
// A Provider owns one *sql.DB pool, created lazily on first use and
// recreated after Close. Every store operation checks out its own
// *sql.Conn with Conn, uses it, and returns it with conn.Close():
//
//	conn, err := provider.Conn(ctx)
//	if err != nil { return err }          // wraps apperror.ErrUnavailable
//	defer conn.Close()
//
// A checked out connection is validated with a ping. A connection that fails
// the ping is discarded and replaced once before the checkout gives up.
//
// Configuration problems are detected once, in NewProvider. A provider with
// a bad configuration stays unusable: every checkout fails with an error
// matching both apperror.ErrUnavailable and apperror.ErrConfig until the
// process restarts.
package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sakif/edumentor/internal/apperror"
	"github.com/sakif/edumentor/internal/metrics"
)

type Provider struct {
	cfg     Config
	cfgErr  error
	dialect Dialect
	logger  *slog.Logger
	open    func(Config, Dialect) (*sql.DB, error)

	mu   sync.Mutex
	pool *sql.DB
}

// NewProvider validates cfg and returns a provider for it. It never connects
// and never fails: a bad configuration is logged here and reported by every
// later checkout.
func NewProvider(cfg Config, logger *slog.Logger) *Provider {
	if cfg.StatementTimeout == 0 {
		cfg.StatementTimeout = DefaultStatementTimeout
	}

	p := &Provider{cfg: cfg, logger: logger, open: openPool}

	d, err := cfg.resolve()
	if err != nil {
		logger.Error("database configuration rejected",
			slog.String("driver", cfg.Driver),
			slog.String("error", err.Error()),
		)
		p.cfgErr = err
		return p
	}
	p.dialect = d
	return p
}

// Conn checks out a validated connection. The caller must Close it.
func (p *Provider) Conn(ctx context.Context) (*sql.Conn, error) {
	if p.cfgErr != nil {
		metrics.ConnectionCheckoutsTotal.WithLabelValues("config_error").Inc()
		return nil, fmt.Errorf("db: %w: %w", apperror.ErrUnavailable, p.cfgErr)
	}

	pool, err := p.getPool()
	if err != nil {
		return nil, p.unavailable(err)
	}

	conn, err := checkout(ctx, pool)
	if err == nil {
		metrics.ConnectionCheckoutsTotal.WithLabelValues("ok").Inc()
		return conn, nil
	}
	if ctx.Err() != nil {
		return nil, p.unavailable(err)
	}

	p.logger.Warn("discarding connection that failed validation",
		slog.String("driver", p.dialect.Name()),
		slog.String("error", err.Error()),
	)
	conn, err = checkout(ctx, pool)
	if err != nil {
		return nil, p.unavailable(err)
	}
	metrics.ConnectionCheckoutsTotal.WithLabelValues("replaced").Inc()
	return conn, nil
}

// checkout takes one connection from pool and pings it. A connection that
// fails the ping is marked bad so the pool drops it instead of reusing it.
func checkout(ctx context.Context, pool *sql.DB) (*sql.Conn, error) {
	conn, err := pool.Conn(ctx)
	if err != nil {
		return nil, err
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Raw(func(any) error { return driver.ErrBadConn })
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func (p *Provider) unavailable(err error) error {
	metrics.ConnectionCheckoutsTotal.WithLabelValues("error").Inc()
	p.logger.Error("failed to get database connection",
		slog.String("driver", p.dialect.Name()),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("db: %w: %w", apperror.ErrUnavailable, err)
}

// getPool returns the pool, opening it when absent.
func (p *Provider) getPool() (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pool != nil {
		return p.pool, nil
	}
	pool, err := p.open(p.cfg, p.dialect)
	if err != nil {
		return nil, err
	}
	p.logger.Info("database pool opened", slog.String("driver", p.dialect.Name()))
	p.pool = pool
	return pool, nil
}

// Ping checks out a connection and returns it straight away.
func (p *Provider) Ping(ctx context.Context) error {
	conn, err := p.Conn(ctx)
	if err != nil {
		return err
	}
	return conn.Close()
}

// Close closes the pool. The next Conn opens a new one.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pool == nil {
		return nil
	}
	err := p.pool.Close()
	p.pool = nil
	if err != nil {
		return fmt.Errorf("db: closing pool: %w", err)
	}
	return nil
}

// Dialect returns the SQL dialect of the configured driver. A provider with a
// bad configuration reports SQLite so statement building never sees nil; its
// checkouts fail anyway.
func (p *Provider) Dialect() Dialect {
	if p.dialect == nil {
		return SQLite
	}
	return p.dialect
}

// StatementTimeout bounds each store operation.
func (p *Provider) StatementTimeout() time.Duration {
	return p.cfg.StatementTimeout
}

// Err reports the configuration error, if any.
func (p *Provider) Err() error {
	return p.cfgErr
}
