package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createPostgresPeriodStartsSQL = `
CREATE TABLE IF NOT EXISTS period_starts (
  id BIGSERIAL PRIMARY KEY,
  start_date TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PostgresStore struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, createPostgresPeriodStartsSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create period_starts table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (store *PostgresStore) Append(ctx context.Context, isoDate string) error {
	_, err := store.pool.Exec(ctx, `INSERT INTO period_starts (start_date) VALUES ($1)`, isoDate)
	return err
}

func (store *PostgresStore) List(ctx context.Context) ([]string, error) {
	rows, err := store.pool.Query(ctx, `SELECT start_date FROM period_starts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	dates, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if dates == nil {
		dates = []string{}
	}
	return dates, nil
}

func (store *PostgresStore) Close() error {
	store.pool.Close()
	return nil
}
