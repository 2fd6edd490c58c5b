package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/cyclenote/internal/config"
	"github.com/terraincognita07/cyclenote/internal/db"
	"github.com/terraincognita07/cyclenote/internal/i18n"
	"github.com/terraincognita07/cyclenote/internal/logger"
	"github.com/terraincognita07/cyclenote/internal/services"
)

type appRuntime struct {
	cfg        *config.Config
	log        *logrus.Logger
	i18n       *i18n.Manager
	language   string
	summaries  *services.SummaryService
	closeStore func() error
}

func (options *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if value := strings.TrimSpace(options.storeDriver); value != "" {
		cfg.StoreDriver = strings.ToLower(value)
	}
	if value := strings.TrimSpace(options.dbPath); value != "" {
		cfg.DBPath = value
	}
	if value := strings.TrimSpace(options.csvPath); value != "" {
		cfg.CSVPath = value
	}
	if value := strings.TrimSpace(options.language); value != "" {
		cfg.DefaultLanguage = strings.ToLower(value)
	}
	return cfg, nil
}

func (options *rootOptions) open(ctx context.Context, logOutput io.Writer) (*appRuntime, error) {
	cfg, err := options.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logOutput, cfg.LogLevel, cfg.Environment)

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage, i18n.EmbeddedLocales())
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	store, closeStore, err := db.OpenPeriodStore(ctx, db.StoreOptions{
		Driver:      cfg.StoreDriver,
		SQLitePath:  cfg.DBPath,
		CSVPath:     cfg.CSVPath,
		DatabaseURL: cfg.DatabaseURL,
		Logger:      log,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}

	return &appRuntime{
		cfg:        cfg,
		log:        log,
		i18n:       i18nManager,
		language:   i18nManager.NormalizeLanguage(cfg.DefaultLanguage),
		summaries:  services.NewSummaryService(store),
		closeStore: closeStore,
	}, nil
}

func (env *appRuntime) close() {
	if err := env.closeStore(); err != nil {
		env.log.WithError(err).Warn("close store failed")
	}
}
