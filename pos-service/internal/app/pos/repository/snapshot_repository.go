package repository

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const snapshotBatchSize = 500

type snapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) ReadAll(ctx context.Context, dest interface{}) error {
	if err := conn(ctx, r.db).Order("id ASC").Find(dest).Error; err != nil {
		return fmt.Errorf("failed to read table: %w", err)
	}
	return nil
}

func (r *snapshotRepository) DeleteAll(ctx context.Context, model interface{}) error {
	err := conn(ctx, r.db).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(model).Error
	if err != nil {
		return fmt.Errorf("failed to clear table: %w", err)
	}
	return nil
}

// InsertAll writes rows with their ids preserved. rows must be a pointer to a slice.
func (r *snapshotRepository) InsertAll(ctx context.Context, rows interface{}) error {
	if v := reflect.Indirect(reflect.ValueOf(rows)); v.Kind() == reflect.Slice && v.Len() == 0 {
		return nil
	}

	err := conn(ctx, r.db).
		Omit(clause.Associations).
		CreateInBatches(rows, snapshotBatchSize).Error
	if err != nil {
		return fmt.Errorf("failed to insert rows: %w", err)
	}
	return nil
}

// ResetSequence moves the id sequence of table past its current max id.
func (r *snapshotRepository) ResetSequence(ctx context.Context, table string) error {
	err := conn(ctx, r.db).Exec(
		"SELECT setval(pg_get_serial_sequence(?, 'id'), COALESCE((SELECT MAX(id) FROM "+
			quoteIdent(table)+"), 0) + 1, false)",
		table,
	).Error
	if err != nil {
		return fmt.Errorf("failed to reset sequence for %s: %w", table, err)
	}
	return nil
}

func quoteIdent(table string) string {
	return `"` + table + `"`
}
