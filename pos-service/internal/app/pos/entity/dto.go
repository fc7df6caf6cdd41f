package entity

import (
	"time"

	"webpos/pkg/money"
)

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1"`
	Description *string `json:"description"`
}

// UpdateCategoryRequest changes only the fields that are present. An empty
// description clears it.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
}

type CreateProductRequest struct {
	Name          string      `json:"name" validate:"required,min=1"`
	Description   *string     `json:"description"`
	Price         money.Money `json:"price"`
	CategoryID    int64       `json:"category_id" validate:"required,gt=0"`
	StockQuantity int         `json:"stock_quantity" validate:"gte=0"`
	SKU           *string     `json:"sku"`
}

type UpdateProductRequest struct {
	Name          *string      `json:"name" validate:"omitempty,min=1"`
	Description   *string      `json:"description"`
	Price         *money.Money `json:"price"`
	CategoryID    *int64       `json:"category_id" validate:"omitempty,gt=0"`
	StockQuantity *int         `json:"stock_quantity" validate:"omitempty,gte=0"`
	SKU           *string      `json:"sku"`
}

type StockOperation string

const (
	StockOperationAdd      StockOperation = "add"
	StockOperationSubtract StockOperation = "subtract"
	StockOperationSet      StockOperation = "set"
)

type UpdateStockRequest struct {
	ProductID      int64          `json:"product_id"`
	QuantityChange int            `json:"quantity_change"`
	Operation      StockOperation `json:"operation" validate:"required,oneof=add subtract set"`
}

type CreateStaffRequest struct {
	Name     string    `json:"name" validate:"required,min=1"`
	Email    string    `json:"email" validate:"required,email"`
	Role     StaffRole `json:"role" validate:"required,oneof=admin cashier manager"`
	IsActive *bool     `json:"is_active"`
}

type UpdateStaffRequest struct {
	Name     *string    `json:"name" validate:"omitempty,min=1"`
	Email    *string    `json:"email" validate:"omitempty,email"`
	Role     *StaffRole `json:"role" validate:"omitempty,oneof=admin cashier manager"`
	IsActive *bool      `json:"is_active"`
}

type SetCredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Staff     Staff     `json:"staff"`
}

type CreatePrinterRequest struct {
	Name        string      `json:"name" validate:"required,min=1"`
	IPAddress   string      `json:"ip_address" validate:"required,ip"`
	Port        int         `json:"port" validate:"required,gt=0,lte=65535"`
	IsActive    *bool       `json:"is_active"`
	PrinterType PrinterType `json:"printer_type" validate:"required,oneof=thermal laser inkjet"`
}

type CreateTaxRequest struct {
	Name     string     `json:"name" validate:"required,min=1"`
	Rate     money.Rate `json:"rate"`
	IsActive *bool      `json:"is_active"`
}

type CreateDiscountRequest struct {
	Name     string       `json:"name" validate:"required,min=1"`
	Type     DiscountType `json:"type" validate:"required,oneof=percentage fixed"`
	Value    money.Money  `json:"value"`
	IsActive *bool        `json:"is_active"`
}

type CreateSaleRequest struct {
	StaffID       int64             `json:"staff_id" validate:"required,gt=0"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxID         *int64            `json:"tax_id" validate:"omitempty,gt=0"`
	DiscountID    *int64            `json:"discount_id" validate:"omitempty,gt=0"`
	PaymentMethod PaymentMethod     `json:"payment_method" validate:"required,oneof=cash card digital_wallet"`
}

type SaleItemRequest struct {
	ProductID int64       `json:"product_id" validate:"required,gt=0"`
	Quantity  int         `json:"quantity" validate:"required,gt=0"`
	UnitPrice money.Money `json:"unit_price" validate:"gt=0"`
}

// SaleFilter narrows ListSales; nil fields are not applied.
type SaleFilter struct {
	StaffID *int64
	Start   *time.Time
	End     *time.Time
}

type SalesReportQuery struct {
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	StaffID    *int64    `json:"staff_id" validate:"omitempty,gt=0"`
	CategoryID *int64    `json:"category_id" validate:"omitempty,gt=0"`
}

type SalesReport struct {
	TotalSales         money.Money    `json:"total_sales"`
	TotalTransactions  int64          `json:"total_transactions"`
	AverageTransaction money.Money    `json:"average_transaction"`
	TopProducts        []TopProduct   `json:"top_products"`
	DailyBreakdown     []DailySummary `json:"daily_breakdown"`
}

type TopProduct struct {
	ProductID    int64       `json:"product_id"`
	ProductName  string      `json:"product_name"`
	QuantitySold int64       `json:"quantity_sold"`
	TotalRevenue money.Money `json:"total_revenue"`
}

type DailySummary struct {
	Date        string      `json:"date"`
	SalesCount  int64       `json:"sales_count"`
	TotalAmount money.Money `json:"total_amount"`
}

// BackupSnapshot is the full export of every entity table. It is also the restore input.
type BackupSnapshot struct {
	Timestamp  time.Time  `json:"timestamp" validate:"required"`
	Categories []Category `json:"categories" validate:"omitempty,dive"`
	Products   []Product  `json:"products" validate:"omitempty,dive"`
	Staff      []Staff    `json:"staff" validate:"omitempty,dive"`
	Printers   []Printer  `json:"printers" validate:"omitempty,dive"`
	Taxes      []Tax      `json:"taxes" validate:"omitempty,dive"`
	Discounts  []Discount `json:"discounts" validate:"omitempty,dive"`
	Sales      []Sale     `json:"sales" validate:"omitempty,dive"`
	SaleItems  []SaleItem `json:"sale_items" validate:"omitempty,dive"`
}

// RecordCount is the number of rows across all tables of the snapshot.
func (b *BackupSnapshot) RecordCount() int {
	return len(b.Categories) + len(b.Products) + len(b.Staff) + len(b.Printers) +
		len(b.Taxes) + len(b.Discounts) + len(b.Sales) + len(b.SaleItems)
}

type RestoreResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type DeleteResult struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error   string                 `json:"error"`
	Kind    string                 `json:"kind,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

const (
	EventSaleCreated    = "SALE_CREATED"
	EventBackupRestored = "BACKUP_RESTORED"
)

// POSEvent is published to Kafka after a sale commits or a backup is restored.
type POSEvent struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	SaleID        int64           `json:"sale_id,omitempty"`
	StaffID       int64           `json:"staff_id,omitempty"`
	TotalAmount   *money.Money    `json:"total_amount,omitempty"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	ItemsCount    int             `json:"items_count,omitempty"`
	Items         []EventLineItem `json:"items,omitempty"`
	Records       int             `json:"records,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

type EventLineItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
