package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/optimal-labs/optimal-api/internal/config"
)

// pingTimeout bounds the connectivity check performed by Open.
const pingTimeout = 5 * time.Second

// DB is a bounded pgx pool exposed through database/sql and sqlx.
// It implements store.DBTX.
type DB struct {
	*sqlx.DB
	pool *pgxpool.Pool
}

// Open creates the connection pool described by cfg and verifies connectivity.
// The pool keeps between MinConns and MaxConns connections.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*DB, error) {
	if log == nil {
		log = slog.Default()
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConns = cfg.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection pool established",
		slog.String("host", cfg.Host),
		slog.Int("port", cfg.Port),
		slog.String("database", cfg.Name),
		slog.Int("min_conns", int(cfg.MinConns)),
		slog.Int("max_conns", int(cfg.MaxConns)))

	return NewDB(pool), nil
}

// NewDB wraps an existing pool.
func NewDB(pool *pgxpool.Pool) *DB {
	sqlDB := stdlib.OpenDBFromPool(pool)
	return &DB{
		DB:   sqlx.NewDb(sqlDB, "pgx"),
		pool: pool,
	}
}

// PoolStats returns a snapshot of pool usage.
func (d *DB) PoolStats() *pgxpool.Stat {
	return d.pool.Stat()
}

// LogValue implements slog.LogValuer with the current pool usage.
func (d *DB) LogValue() slog.Value {
	st := d.PoolStats()
	return slog.GroupValue(
		slog.Int("acquired_conns", int(st.AcquiredConns())),
		slog.Int("idle_conns", int(st.IdleConns())),
		slog.Int("total_conns", int(st.TotalConns())),
		slog.Int("max_conns", int(st.MaxConns())))
}

// Close releases the database/sql handle and then the pool.
func (d *DB) Close() error {
	err := d.DB.Close()
	d.pool.Close()
	return err
}
