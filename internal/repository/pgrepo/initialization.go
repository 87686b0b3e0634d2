package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type retryPolicy struct {
	attempts uint
	interval time.Duration
}

var defaultRetry = retryPolicy{attempts: 30, interval: 3 * time.Second}

// Connect подключается к Postgres, повторяя попытки пока база недоступна, и применяет миграции из migrationsDir.
func Connect(ctx context.Context, migrationsDir, dsn string, l *logrus.Logger) (*pgxpool.Pool, error) {
	log := l.WithField("component", "pgrepo")

	pool, err := dialWithRetry(ctx, defaultRetry, log, func(ctx context.Context) (*pgxpool.Pool, error) {
		return newPool(ctx, dsn)
	})
	if err != nil {
		return nil, fmt.Errorf("init postgres connection: %w", err)
	}

	if migrateErr := migrateUp(migrationsDir, dsn); migrateErr != nil {
		pool.Close()
		return nil, migrateErr
	}
	log.Info("postgres storage ready")
	return pool, nil
}

// dialWithRetry вызывает dial, пока тот не вернет nil ошибку, попытки кончатся или отменится ctx.
func dialWithRetry[T any](
	ctx context.Context,
	policy retryPolicy,
	l *logrus.Entry,
	dial func(context.Context) (T, error),
) (T, error) {
	var zero T
	for attempt := uint(1); ; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err() //nolint:wrapcheck
		}

		conn, err := dial(ctx)
		if err == nil {
			return conn, nil
		}
		if attempt >= policy.attempts {
			return zero, fmt.Errorf("after %d attempts: %w", attempt, err)
		}

		l.WithError(err).
			WithField("attempt", fmt.Sprintf("#%d / %d", attempt, policy.attempts)).
			Warnf("postgres unavailable, retrying in %s", policy.interval)

		select {
		case <-ctx.Done():
			return zero, ctx.Err() //nolint:wrapcheck
		case <-time.After(policy.interval):
		}
	}
}

func newPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, confErr := pgxpool.ParseConfig(dsn)
	if confErr != nil {
		return nil, fmt.Errorf("parse postgres config: %w", confErr)
	}
	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		return nil, fmt.Errorf("create pool: %w", poolErr)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", pingErr)
	}
	return pool, nil
}

func migrateUp(dir string, dsn string) error {
	m, mErr := migrate.New("file://"+dir, dsn)
	if mErr != nil {
		return fmt.Errorf("create migrate instance: %w", mErr)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
