package service

import (
	"context"
	"fmt"

	"webpos/pkg/money"
	"webpos/pos-service/internal/app/pos/entity"
	"webpos/pos-service/internal/app/pos/repository"

	"github.com/xuri/excelize/v2"
)

const topProductsLimit = 10

const (
	sheetSummary     = "Summary"
	sheetTopProducts = "Top Products"
	sheetDaily       = "Daily"
)

type ReportService struct {
	reports repository.ReportRepository
}

func NewReportService(reports repository.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

// GenerateSalesReport aggregates completed sales in [StartDate, EndDate].
func (s *ReportService) GenerateSalesReport(ctx context.Context, query entity.SalesReportQuery) (*entity.SalesReport, error) {
	if query.EndDate.Before(query.StartDate) {
		return nil, validation(ReasonInvalidInput, "end_date must not be before start_date",
			map[string]interface{}{"field": "end_date"})
	}

	total, count, err := s.reports.Totals(ctx, query)
	if err != nil {
		return nil, storage("failed to compute sales totals", err)
	}

	top, err := s.reports.TopProducts(ctx, query, topProductsLimit)
	if err != nil {
		return nil, storage("failed to compute top products", err)
	}
	if top == nil {
		top = []entity.TopProduct{}
	}

	daily, err := s.reports.DailyBreakdown(ctx, query)
	if err != nil {
		return nil, storage("failed to compute daily breakdown", err)
	}
	if daily == nil {
		daily = []entity.DailySummary{}
	}

	average := money.Zero()
	if count > 0 {
		average = total.DivInt(count)
	}

	return &entity.SalesReport{
		TotalSales:         total,
		TotalTransactions:  count,
		AverageTransaction: average,
		TopProducts:        top,
		DailyBreakdown:     daily,
	}, nil
}

// ExportSalesReport renders the report as an xlsx workbook.
func (s *ReportService) ExportSalesReport(ctx context.Context, query entity.SalesReportQuery) ([]byte, error) {
	report, err := s.GenerateSalesReport(ctx, query)
	if err != nil {
		return nil, err
	}

	data, err := renderWorkbook(query, report)
	if err != nil {
		return nil, storage("failed to render report", err)
	}
	return data, nil
}

func renderWorkbook(query entity.SalesReportQuery, report *entity.SalesReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}
	for _, name := range []string{sheetTopProducts, sheetDaily} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	summary := [][]interface{}{
		{"Period start", query.StartDate.Format("2006-01-02")},
		{"Period end", query.EndDate.Format("2006-01-02")},
		{"Total sales", report.TotalSales.Float64()},
		{"Transactions", report.TotalTransactions},
		{"Average transaction", report.AverageTransaction.Float64()},
	}
	if err := writeRows(f, sheetSummary, summary); err != nil {
		return nil, err
	}

	top := [][]interface{}{{"Product ID", "Product", "Quantity sold", "Revenue"}}
	for _, p := range report.TopProducts {
		top = append(top, []interface{}{p.ProductID, p.ProductName, p.QuantitySold, p.TotalRevenue.Float64()})
	}
	if err := writeRows(f, sheetTopProducts, top); err != nil {
		return nil, err
	}

	daily := [][]interface{}{{"Date", "Sales", "Amount"}}
	for _, d := range report.DailyBreakdown {
		daily = append(daily, []interface{}{d.Date, d.SalesCount, d.TotalAmount.Float64()})
	}
	if err := writeRows(f, sheetDaily, daily); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
