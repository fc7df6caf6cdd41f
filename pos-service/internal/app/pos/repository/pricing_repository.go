package repository

import (
	"context"
	"errors"
	"fmt"

	"webpos/pos-service/internal/app/pos/entity"

	"gorm.io/gorm"
)

type taxRepository struct {
	db *gorm.DB
}

func NewTaxRepository(db *gorm.DB) TaxRepository {
	return &taxRepository{db: db}
}

func (r *taxRepository) Create(ctx context.Context, tax *entity.Tax) error {
	if err := conn(ctx, r.db).Create(tax).Error; err != nil {
		return fmt.Errorf("failed to create tax: %w", err)
	}
	return nil
}

func (r *taxRepository) List(ctx context.Context, activeOnly bool) ([]entity.Tax, error) {
	var taxes []entity.Tax
	q := conn(ctx, r.db).Order("id ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&taxes).Error; err != nil {
		return nil, fmt.Errorf("failed to list taxes: %w", err)
	}
	return taxes, nil
}

// FindActiveByID returns ErrTaxNotFound for both missing and inactive taxes.
func (r *taxRepository) FindActiveByID(ctx context.Context, id int64) (*entity.Tax, error) {
	var tax entity.Tax
	err := conn(ctx, r.db).Where("id = ? AND is_active = ?", id, true).First(&tax).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaxNotFound
		}
		return nil, fmt.Errorf("failed to get tax: %w", err)
	}
	return &tax, nil
}

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(ctx context.Context, discount *entity.Discount) error {
	if err := conn(ctx, r.db).Create(discount).Error; err != nil {
		return fmt.Errorf("failed to create discount: %w", err)
	}
	return nil
}

func (r *discountRepository) List(ctx context.Context, activeOnly bool) ([]entity.Discount, error) {
	var discounts []entity.Discount
	q := conn(ctx, r.db).Order("id ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&discounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}
	return discounts, nil
}

// FindActiveByID returns ErrDiscountNotFound for both missing and inactive discounts.
func (r *discountRepository) FindActiveByID(ctx context.Context, id int64) (*entity.Discount, error) {
	var discount entity.Discount
	err := conn(ctx, r.db).Where("id = ? AND is_active = ?", id, true).First(&discount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, fmt.Errorf("failed to get discount: %w", err)
	}
	return &discount, nil
}
