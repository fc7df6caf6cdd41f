package repository

import (
	"context"
	"fmt"

	"webpos/pos-service/internal/app/pos/entity"

	"gorm.io/gorm"
)

type printerRepository struct {
	db *gorm.DB
}

func NewPrinterRepository(db *gorm.DB) PrinterRepository {
	return &printerRepository{db: db}
}

func (r *printerRepository) Create(ctx context.Context, printer *entity.Printer) error {
	if err := conn(ctx, r.db).Create(printer).Error; err != nil {
		return fmt.Errorf("failed to create printer: %w", err)
	}
	return nil
}

func (r *printerRepository) List(ctx context.Context, activeOnly bool) ([]entity.Printer, error) {
	var printers []entity.Printer
	q := conn(ctx, r.db).Order("id ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&printers).Error; err != nil {
		return nil, fmt.Errorf("failed to list printers: %w", err)
	}
	return printers, nil
}
