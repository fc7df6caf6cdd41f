package repository

import (
	"context"
	"errors"
	"fmt"

	"webpos/pkg/metrics"
	"webpos/pos-service/internal/app/pos/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const saleItemsBatchSize = 100

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "sales")
	defer timer.ObserveDuration()

	err := conn(ctx, r.db).Omit(clause.Associations).Create(sale).Error
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		if isForeignKeyViolation(err) {
			return ErrStaffNotFound
		}
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

func (r *saleRepository) CreateItems(ctx context.Context, items []entity.SaleItem) error {
	if len(items) == 0 {
		return nil
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "sale_items")
	defer timer.ObserveDuration()

	err := conn(ctx, r.db).Omit(clause.Associations).CreateInBatches(&items, saleItemsBatchSize).Error
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		if isForeignKeyViolation(err) {
			return ErrInvalidReference
		}
		return fmt.Errorf("failed to create sale items: %w", err)
	}
	return nil
}

func (r *saleRepository) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	var sale entity.Sale
	err := conn(ctx, r.db).Where("id = ?", id).First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return &sale, nil
}

func (r *saleRepository) GetItems(ctx context.Context, saleID int64) ([]entity.SaleItem, error) {
	var items []entity.SaleItem
	err := conn(ctx, r.db).Where("sale_id = ?", saleID).Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get sale items: %w", err)
	}
	return items, nil
}

// List returns sales newest first.
func (r *saleRepository) List(ctx context.Context, filter entity.SaleFilter) ([]entity.Sale, error) {
	q := conn(ctx, r.db).Model(&entity.Sale{})
	if filter.StaffID != nil {
		q = q.Where("staff_id = ?", *filter.StaffID)
	}
	if filter.Start != nil {
		q = q.Where("created_at >= ?", *filter.Start)
	}
	if filter.End != nil {
		q = q.Where("created_at <= ?", *filter.End)
	}

	var sales []entity.Sale
	if err := q.Order("created_at DESC").Order("id DESC").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

func (r *saleRepository) ExistsForProduct(ctx context.Context, productID int64) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.SaleItem{}).Where("product_id = ?", productID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check sales for product: %w", err)
	}
	return count > 0, nil
}
