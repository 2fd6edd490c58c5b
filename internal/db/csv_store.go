package db

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/terraincognita07/cyclenote/internal/models"
)

// CSVStore is a single-column sheet with a start_date header row.
type CSVStore struct {
	mu   sync.Mutex
	path string
}

func OpenCSVStore(path string) (*CSVStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create csv directory: %w", err)
	}

	store := &CSVStore{path: path}
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := store.writeRow(models.HeaderSentinel); err != nil {
			return nil, fmt.Errorf("write csv header: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("stat csv store: %w", err)
	case info.IsDir():
		return nil, fmt.Errorf("csv store path %s is a directory", path)
	}
	return store, nil
}

func (store *CSVStore) Append(ctx context.Context, isoDate string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.writeRow(isoDate)
}

func (store *CSVStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	store.mu.Lock()
	defer store.mu.Unlock()

	file, err := os.Open(store.path)
	if err != nil {
		return nil, fmt.Errorf("open csv store: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	dates := make([]string, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv store: %w", err)
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		dates = append(dates, strings.TrimSpace(row[0]))
	}

	if len(dates) > 0 && strings.EqualFold(dates[0], models.HeaderSentinel) {
		dates = dates[1:]
	}
	return dates, nil
}

func (store *CSVStore) writeRow(value string) error {
	file, err := os.OpenFile(store.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{value}); err != nil {
		_ = file.Close()
		return err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
