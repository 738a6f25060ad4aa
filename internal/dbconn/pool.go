// Package dbconn provides the engine's connection protocol: a thin
// Queryer interface satisfied directly by pgx types, a pool wrapper that
// configures the statement timeout and connection bounds, and a central
// place to translate driver errors into the engine's error taxonomy.
package dbconn

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Queryer is the Go analogue of the connection protocol's
// cursor()/execute()/fetchall() contract. *pgxpool.Pool and pgx.Tx both
// satisfy it without adaptation.
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Pool wraps a pgxpool.Pool, configuring the default statement timeout and
// connection bounds exactly as the teacher's connection-pool wrapper
// does.
type Pool struct {
	pool *pgxpool.Pool
}

// Config bounds the pool's connection lifecycle.
type Config struct {
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	StatementTimeout  time.Duration
}

// DefaultConfig mirrors the teacher's pool defaults, with the statement
// timeout taken from the safety layer's default limits.
func DefaultConfig() Config {
	return Config{
		MaxConns:          21,
		MinConns:          2,
		MaxConnLifetime:   30 * time.Minute,
		MaxConnIdleTime:   5 * time.Minute,
		HealthCheckPeriod: 30 * time.Second,
		StatementTimeout:  30 * time.Second,
	}
}

// NewPool creates a pool against databaseURL, applying cfg's
// statement_timeout as a runtime parameter on every connection.
func NewPool(ctx context.Context, databaseURL string, cfg Config) (*Pool, error) {
	pgxCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	timeoutMS := cfg.StatementTimeout.Milliseconds()
	pgxCfg.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%d", timeoutMS)

	pgxCfg.MaxConns = cfg.MaxConns
	pgxCfg.MinConns = cfg.MinConns
	pgxCfg.MaxConnLifetime = cfg.MaxConnLifetime
	pgxCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	pgxCfg.HealthCheckPeriod = cfg.HealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Pool{pool: pool}, nil
}

// Query executes a query that returns rows.
func (p *Pool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}

// QueryRow executes a query that returns at most one row.
func (p *Pool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

// Exec executes a query that doesn't return rows.
func (p *Pool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}

// BeginReadOnly opens a read-only transaction. Traverse, TraverseCollecting,
// ShortestPath and PathAggregate each run their store queries inside one
// such transaction per call; AllShortestPaths, ConnectedComponents and
// ResilienceAnalysis open several, and the pre-flight estimator queries the
// pool directly. The engine entry points take a *Pool, not a Queryer, so
// they always open their own transactions and cannot join one the caller
// already holds.
func (p *Pool) BeginReadOnly(ctx context.Context) (pgx.Tx, error) {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("beginning read-only transaction: %w", err)
	}

	return tx, nil
}

// Ping verifies the pool can reach the database.
func (p *Pool) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// HealthCheck executes a trivial query to confirm connectivity.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var result int

	if err := p.pool.QueryRow(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("health check query: %w", err)
	}

	return nil
}

// ConnString returns the connection string used to create the pool.
func (p *Pool) ConnString() string {
	return p.pool.Config().ConnString()
}

// Close closes the connection pool.
func (p *Pool) Close() {
	p.pool.Close()
}
