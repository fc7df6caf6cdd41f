package repository

import (
	"fmt"

	"webpos/pos-service/internal/app/pos/entity"

	"gorm.io/gorm"
)

// Models lists every table in FK-safe creation order.
func Models() []interface{} {
	return []interface{}{
		&entity.Category{},
		&entity.Staff{},
		&entity.Printer{},
		&entity.Tax{},
		&entity.Discount{},
		&entity.Product{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.StaffCredential{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
