package service

import (
	"context"

	"webpos/pos-service/internal/app/pos/entity"
)

type SaleServiceInterface interface {
	CreateSale(ctx context.Context, req *entity.CreateSaleRequest) (*entity.SaleWithItems, error)
	GetSale(ctx context.Context, id int64) (*entity.SaleWithItems, error)
	ListSales(ctx context.Context, filter entity.SaleFilter) ([]entity.Sale, error)
}

type BackupServiceInterface interface {
	CreateBackup(ctx context.Context) (*entity.BackupSnapshot, error)
	RestoreBackup(ctx context.Context, snapshot *entity.BackupSnapshot) (*entity.RestoreResult, error)
}

type CatalogServiceInterface interface {
	CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
	GetCategory(ctx context.Context, id int64) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id int64, req *entity.UpdateCategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID int64) ([]entity.Product, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	UpdateStock(ctx context.Context, req *entity.UpdateStockRequest) (*entity.Product, error)
}

type StaffServiceInterface interface {
	CreateStaff(ctx context.Context, req *entity.CreateStaffRequest) (*entity.Staff, error)
	ListStaff(ctx context.Context, activeOnly bool) ([]entity.Staff, error)
	GetStaff(ctx context.Context, id int64) (*entity.Staff, error)
	UpdateStaff(ctx context.Context, id int64, req *entity.UpdateStaffRequest) (*entity.Staff, error)
	SetPassword(ctx context.Context, req *entity.SetCredentialsRequest) error
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error)
}

type PricingServiceInterface interface {
	CreateTax(ctx context.Context, req *entity.CreateTaxRequest) (*entity.Tax, error)
	ListTaxes(ctx context.Context, activeOnly bool) ([]entity.Tax, error)
	CreateDiscount(ctx context.Context, req *entity.CreateDiscountRequest) (*entity.Discount, error)
	ListDiscounts(ctx context.Context, activeOnly bool) ([]entity.Discount, error)
}

type PrinterServiceInterface interface {
	CreatePrinter(ctx context.Context, req *entity.CreatePrinterRequest) (*entity.Printer, error)
	ListPrinters(ctx context.Context, activeOnly bool) ([]entity.Printer, error)
}

type ReportServiceInterface interface {
	GenerateSalesReport(ctx context.Context, query entity.SalesReportQuery) (*entity.SalesReport, error)
	ExportSalesReport(ctx context.Context, query entity.SalesReportQuery) ([]byte, error)
}

var (
	_ SaleServiceInterface    = (*SaleService)(nil)
	_ BackupServiceInterface  = (*BackupService)(nil)
	_ CatalogServiceInterface = (*CatalogService)(nil)
	_ StaffServiceInterface   = (*StaffService)(nil)
	_ PricingServiceInterface = (*PricingService)(nil)
	_ PrinterServiceInterface = (*PrinterService)(nil)
	_ ReportServiceInterface  = (*ReportService)(nil)
)
