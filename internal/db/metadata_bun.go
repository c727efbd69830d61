package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

type metadataRow struct {
	bun.BaseModel `bun:"table:metadata"`

	Name  string `bun:"name,pk"`
	Value string `bun:"value,notnull"`
}

// GetMetadata returns the value stored under name and whether it exists.
func (s *BunStore) GetMetadata(ctx context.Context, name string) (string, bool, error) {
	row := new(metadataRow)
	err := s.bun.NewSelect().Model(row).Where("name = ?", name).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get metadata[%s]: %w", name, err)
	}
	return row.Value, true, nil
}

// SetMetadata upserts name=value.
func (s *BunStore) SetMetadata(ctx context.Context, name, value string) error {
	q := s.bun.NewInsert().Model(&metadataRow{Name: name, Value: value})
	if s.dbType == TypeMySQL {
		q = q.On("DUPLICATE KEY UPDATE").Set("value = VALUES(value)")
	} else {
		q = q.On("CONFLICT (name) DO UPDATE").Set("value = EXCLUDED.value")
	}
	if _, err := q.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", name, err)
	}
	return nil
}
