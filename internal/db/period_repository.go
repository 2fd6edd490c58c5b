package db

import (
	"context"
	"time"

	"github.com/terraincognita07/cyclenote/internal/models"
	"gorm.io/gorm"
)

type PeriodRepository struct {
	database *gorm.DB
}

func NewPeriodRepository(database *gorm.DB) *PeriodRepository {
	return &PeriodRepository{database: database}
}

func (repo *PeriodRepository) Append(ctx context.Context, isoDate string) error {
	entry := models.PeriodStart{
		StartDate: isoDate,
		CreatedAt: time.Now().UTC(),
	}
	return repo.database.WithContext(ctx).Create(&entry).Error
}

func (repo *PeriodRepository) List(ctx context.Context) ([]string, error) {
	dates := make([]string, 0)
	if err := repo.database.WithContext(ctx).
		Model(&models.PeriodStart{}).
		Order("id ASC").
		Pluck("start_date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

func (repo *PeriodRepository) Close() error {
	sqlDB, err := repo.database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
