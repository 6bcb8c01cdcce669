package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Varun5711/taskmate/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBManager owns the primary Postgres pool. Reads and writes share it, so a
// list always reflects the caller's own writes.
type DBManager struct {
	primary *pgxpool.Pool
}

type Config struct {
	PrimaryDSN string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

func NewDBManager(ctx context.Context, cfg Config) (*DBManager, error) {
	primaryPool, err := openPool(ctx, cfg.PrimaryDSN, cfg)
	if err != nil {
		return nil, fmt.Errorf("primary: %w", err)
	}

	return &DBManager{primary: primaryPool}, nil
}

func openPool(ctx context.Context, dsn string, cfg Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping: %w", err)
	}
	return pool, nil
}

func (m *DBManager) Write() *pgxpool.Pool {
	return m.primary
}

// Ping checks the primary. Used by the health endpoint.
func (m *DBManager) Ping(ctx context.Context) error {
	if err := m.primary.Ping(ctx); err != nil {
		return fmt.Errorf("primary: %w", err)
	}
	return nil
}

func (m *DBManager) Close() {
	if m.primary != nil {
		m.primary.Close()
	}
}

// Stats reports the pool's connection counts for the health endpoint.
func (m *DBManager) Stats() []models.PoolStats {
	if m.primary == nil {
		return nil
	}
	s := m.primary.Stat()
	return []models.PoolStats{{
		TotalConns:    s.TotalConns(),
		IdleConns:     s.IdleConns(),
		AcquiredConns: s.AcquiredConns(),
	}}
}
