package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgreDB struct {
	Pool     *pgxpool.Pool
	DBConfig *pgxpool.Config
}

type Config interface {
	GetDSN() string
}

// PoolLimits is implemented by configs that want to tune the connection
// pool. Without it pgxpool defaults apply.
type PoolLimits interface {
	Limits() (maxConns, minConns int32, maxConnLifetime, maxConnIdleTime time.Duration)
}

func New(ctx context.Context, config Config) (*PostgreDB, error) {
	dbConfig, err := pgxpool.ParseConfig(config.GetDSN())
	if err != nil {
		return nil, err
	}

	if limits, ok := config.(PoolLimits); ok {
		maxConns, minConns, lifetime, idle := limits.Limits()
		dbConfig.MaxConns = maxConns
		dbConfig.MinConns = minConns
		dbConfig.MaxConnLifetime = lifetime
		dbConfig.MaxConnIdleTime = idle
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, err
	}

	if err = pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &PostgreDB{
		Pool:     pool,
		DBConfig: dbConfig,
	}, nil
}
