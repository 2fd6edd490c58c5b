package models

import "time"

// HeaderSentinel is the label some stores keep as their first row.
const HeaderSentinel = "start_date"

type PeriodStart struct {
	ID        uint      `gorm:"primaryKey"`
	StartDate string    `gorm:"column:start_date;type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (PeriodStart) TableName() string {
	return "period_starts"
}
