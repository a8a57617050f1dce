package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/esferaordo/ordo-api/pkg/config"
)

// NewPoolFromDSN crea el pool, registra los tipos en cada conexión y verifica con Ping.
// opts ajustan la configuración antes de abrir el pool.
func NewPoolFromDSN(ctx context.Context, dsn string, opts ...func(*pgxpool.Config)) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	// NUMERIC -> shopspring/decimal en todas las conexiones del pool.
	poolConfig.AfterConnect = registerTypes
	for _, opt := range opts {
		opt(poolConfig)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

func registerTypes(_ context.Context, conn *pgx.Conn) error {
	pgxdecimal.Register(conn.TypeMap())
	return nil
}

// NewPool crea el pool de la aplicación: DATABASE_URL si está definido, si no el DSN
// armado desde DB_HOST, DB_PORT, etc.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	return NewPoolFromDSN(ctx, cfg.ConnectionString(), func(pc *pgxpool.Config) {
		if cfg.MaxConns > 0 {
			pc.MaxConns = cfg.MaxConns
		}
		if cfg.MinConns > 0 && cfg.MinConns <= pc.MaxConns {
			pc.MinConns = cfg.MinConns
		}
		pc.MaxConnLifetime = time.Hour
		pc.MaxConnIdleTime = 30 * time.Minute
		pc.HealthCheckPeriod = time.Minute
	})
}
