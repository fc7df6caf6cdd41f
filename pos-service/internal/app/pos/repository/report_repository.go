package repository

import (
	"context"
	"fmt"

	"webpos/pkg/money"
	"webpos/pos-service/internal/app/pos/entity"

	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// completedSales restricts a query on "sales" to completed sales matching q.
// The category filter is a subquery so a sale with several matching items is counted once.
func completedSales(q entity.SalesReportQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("sales.status = ?", entity.SaleStatusCompleted).
			Where("sales.created_at >= ? AND sales.created_at <= ?", q.StartDate, q.EndDate)
		if q.StaffID != nil {
			db = db.Where("sales.staff_id = ?", *q.StaffID)
		}
		if q.CategoryID != nil {
			db = db.Where(
				"sales.id IN (SELECT si.sale_id FROM sale_items si JOIN products p ON p.id = si.product_id WHERE p.category_id = ?)",
				*q.CategoryID,
			)
		}
		return db
	}
}

type totalsRow struct {
	Total money.Money
	Count int64
}

func (r *reportRepository) Totals(ctx context.Context, q entity.SalesReportQuery) (money.Money, int64, error) {
	var row totalsRow
	err := conn(ctx, r.db).
		Model(&entity.Sale{}).
		Select("COALESCE(SUM(sales.total_amount), 0) AS total, COUNT(sales.id) AS count").
		Scopes(completedSales(q)).
		Scan(&row).Error
	if err != nil {
		return money.Zero(), 0, fmt.Errorf("failed to compute sales totals: %w", err)
	}
	return row.Total, row.Count, nil
}

func (r *reportRepository) TopProducts(ctx context.Context, q entity.SalesReportQuery, limit int) ([]entity.TopProduct, error) {
	var top []entity.TopProduct
	err := conn(ctx, r.db).
		Table("sale_items").
		Select("products.id AS product_id, products.name AS product_name, " +
			"SUM(sale_items.quantity) AS quantity_sold, SUM(sale_items.total_price) AS total_revenue").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Scopes(completedSales(q)).
		Group("products.id, products.name").
		Order("total_revenue DESC").
		Limit(limit).
		Scan(&top).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute top products: %w", err)
	}
	return top, nil
}

func (r *reportRepository) DailyBreakdown(ctx context.Context, q entity.SalesReportQuery) ([]entity.DailySummary, error) {
	var days []entity.DailySummary
	err := conn(ctx, r.db).
		Model(&entity.Sale{}).
		Select("TO_CHAR(DATE(sales.created_at), 'YYYY-MM-DD') AS date, " +
			"COUNT(sales.id) AS sales_count, SUM(sales.total_amount) AS total_amount").
		Scopes(completedSales(q)).
		Group("DATE(sales.created_at)").
		Order("DATE(sales.created_at) ASC").
		Scan(&days).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute daily breakdown: %w", err)
	}
	return days, nil
}
