package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/cyclenote/internal/services"
)

const (
	DriverSQLite   = "sqlite"
	DriverCSV      = "csv"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type StoreOptions struct {
	Driver      string
	SQLitePath  string
	CSVPath     string
	DatabaseURL string
	Logger      *logrus.Logger
}

// OpenPeriodStore builds the configured store. The returned close func is never nil.
func OpenPeriodStore(ctx context.Context, options StoreOptions) (services.PeriodStore, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(strings.TrimSpace(options.Driver)) {
	case "", DriverSQLite:
		database, err := OpenSQLite(options.SQLitePath, options.Logger)
		if err != nil {
			return nil, noop, err
		}
		repo := NewPeriodRepository(database)
		return repo, repo.Close, nil
	case DriverCSV:
		store, err := OpenCSVStore(options.CSVPath)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	case DriverPostgres:
		if strings.TrimSpace(options.DatabaseURL) == "" {
			return nil, noop, errors.New("database url is required for the postgres store")
		}
		store, err := OpenPostgres(ctx, options.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case DriverMemory:
		return NewMemoryStore(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown store driver %q", options.Driver)
	}
}

var (
	_ services.PeriodStore = (*PeriodRepository)(nil)
	_ services.PeriodStore = (*CSVStore)(nil)
	_ services.PeriodStore = (*PostgresStore)(nil)
	_ services.PeriodStore = (*MemoryStore)(nil)
)
