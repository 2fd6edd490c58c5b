package services

import (
	"context"
	"strings"

	"github.com/terraincognita07/cyclenote/internal/models"
)

// PeriodStore is an append-only log of ISO calendar dates kept in storage order.
type PeriodStore interface {
	Append(ctx context.Context, isoDate string) error
	List(ctx context.Context) ([]string, error)
}

// StripHeaderRow drops a leading header label if the store keeps one.
func StripHeaderRow(records []string) []string {
	if len(records) > 0 && IsHeaderRow(records[0]) {
		return records[1:]
	}
	return records
}

func IsHeaderRow(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), models.HeaderSentinel)
}
