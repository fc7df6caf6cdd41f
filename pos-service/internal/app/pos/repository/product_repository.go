package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"webpos/pkg/metrics"
	"webpos/pos-service/internal/app/pos/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	err := conn(ctx, r.db).Omit(clause.Associations).Create(product).Error
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var product entity.Product
	err := conn(ctx, r.db).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// GetForUpdate reads the product and holds a row lock until the surrounding
// transaction ends.
func (r *productRepository) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	var product entity.Product
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to lock product: %w", err)
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := conn(ctx, r.db).Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) ListByCategory(ctx context.Context, categoryID int64) ([]entity.Product, error) {
	var products []entity.Product
	err := conn(ctx, r.db).Where("category_id = ?", categoryID).Order("id ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	return products, nil
}

// FindByIDs loads all products in one query. Missing ids are simply absent from the result.
func (r *productRepository) FindByIDs(ctx context.Context, ids []int64) ([]entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")
	defer timer.ObserveDuration()

	var products []entity.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&products).Error; err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

func (r *productRepository) ExistsInCategory(ctx context.Context, categoryID int64) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check category products: %w", err)
	}
	return count > 0, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := conn(ctx, r.db).
		Model(&entity.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":           product.Name,
			"description":    product.Description,
			"price":          product.Price,
			"category_id":    product.CategoryID,
			"stock_quantity": product.StockQuantity,
			"sku":            product.SKU,
			"updated_at":     product.UpdatedAt,
		})
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) SetStock(ctx context.Context, id int64, quantity int) (*entity.Product, error) {
	result := conn(ctx, r.db).
		Model(&entity.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock_quantity": quantity,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to set stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return r.GetByID(ctx, id)
}

// DecrementStock subtracts quantity only while enough stock is left and
// returns ErrInsufficientStock when no row qualifies.
func (r *productRepository) DecrementStock(ctx context.Context, id int64, quantity int) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "products")
	defer timer.ObserveDuration()

	result := conn(ctx, r.db).
		Model(&entity.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to decrement stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&entity.Product{})
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return ErrHasDependents
		}
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
