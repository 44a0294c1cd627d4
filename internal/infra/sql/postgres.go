package sql

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	_queryTimeout = 5 * time.Second
	maxRetries    = 5
	retryDelay    = 2 * time.Second
)

// NewPostgresORM connects through a pgx pool and hands the pool to gorm. The
// password may come from FIRMGEN_SERVER_POSTGRES_PASSWORD instead of the dsn.
func NewPostgresORM(ctx context.Context, dsn string) (*DB, error) {
	if pass, ok := os.LookupEnv("FIRMGEN_SERVER_POSTGRES_PASSWORD"); ok {
		dsn = fmt.Sprintf("%s password=%s", dsn, pass)
	}

	pool, err := openPool(ctx, dsn)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("opening gorm over pgx pool: %w", err)
	}

	return &DB{
		DB:                   gormDB,
		system:               "postgresql",
		autoMigrationEnabled: true,
		timeout:              _queryTimeout,
	}, nil
}

func openPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	var lastErr error
	for attempt := range maxRetries {
		pool, err := pgxpool.New(ctx, dsn)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				return pool, nil
			}
			pool.Close()
		}

		lastErr = err
		slog.Warn("connecting to postgres", slog.Int("attempt", attempt+1), slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	return nil, fmt.Errorf("impossible to connect to database after %d retries: %w", maxRetries, lastErr)
}
