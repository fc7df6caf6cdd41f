package entity

import (
	"time"

	"webpos/pkg/money"
)

type StaffRole string

const (
	StaffRoleAdmin   StaffRole = "admin"
	StaffRoleCashier StaffRole = "cashier"
	StaffRoleManager StaffRole = "manager"
)

type PrinterType string

const (
	PrinterTypeThermal PrinterType = "thermal"
	PrinterTypeLaser   PrinterType = "laser"
	PrinterTypeInkjet  PrinterType = "inkjet"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

type PaymentMethod string

const (
	PaymentMethodCash          PaymentMethod = "cash"
	PaymentMethodCard          PaymentMethod = "card"
	PaymentMethodDigitalWallet PaymentMethod = "digital_wallet"
)

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
	SaleStatusRefunded  SaleStatus = "refunded"
)

type Category struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement" validate:"gt=0"`
	Name        string    `json:"name" gorm:"type:text;not null" validate:"required"`
	Description *string   `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

type Product struct {
	ID            int64       `json:"id" gorm:"primaryKey;autoIncrement" validate:"gt=0"`
	Name          string      `json:"name" gorm:"type:text;not null" validate:"required"`
	Description   *string     `json:"description" gorm:"type:text"`
	Price         money.Money `json:"price" gorm:"type:numeric(10,2);not null"`
	CategoryID    int64       `json:"category_id" gorm:"not null;index" validate:"gt=0"`
	StockQuantity int         `json:"stock_quantity" gorm:"not null;check:stock_quantity >= 0" validate:"gte=0"`
	SKU           *string     `json:"sku" gorm:"column:sku;type:text"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	Category *Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" validate:"-"`
}

func (Product) TableName() string {
	return "products"
}

type Staff struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement" validate:"gt=0"`
	Name      string    `json:"name" gorm:"type:text;not null" validate:"required"`
	Email     string    `json:"email" gorm:"type:text;not null;uniqueIndex" validate:"required,email"`
	Role      StaffRole `json:"role" gorm:"type:varchar(16);not null" validate:"oneof=admin cashier manager"`
	IsActive  bool      `json:"is_active" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Staff) TableName() string {
	return "staff"
}

type Printer struct {
	ID          int64       `json:"id" gorm:"primaryKey;autoIncrement" validate:"gt=0"`
	Name        string      `json:"name" gorm:"type:text;not null" validate:"required"`
	IPAddress   string      `json:"ip_address" gorm:"column:ip_address;type:text;not null" validate:"required"`
	Port        int         `json:"port" gorm:"not null" validate:"gt=0"`
	IsActive    bool        `json:"is_active" gorm:"not null"`
	PrinterType PrinterType `json:"printer_type" gorm:"type:varchar(16);not null" validate:"oneof=thermal laser inkjet"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (Printer) TableName() string {
	return "printers"
}

type Tax struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement" validate:"gt=0"`
	Name      string     `json:"name" gorm:"type:text;not null" validate:"required"`
	Rate      money.Rate `json:"rate" gorm:"type:numeric(5,2);not null"`
	IsActive  bool       `json:"is_active" gorm:"not null"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Tax) TableName() string {
	return "taxes"
}

// Discount.Value is an amount for fixed discounts and a percentage for percentage ones.
type Discount struct {
	ID        int64        `json:"id" gorm:"primaryKey;autoIncrement" validate:"gt=0"`
	Name      string       `json:"name" gorm:"type:text;not null" validate:"required"`
	Type      DiscountType `json:"type" gorm:"type:varchar(16);not null" validate:"oneof=percentage fixed"`
	Value     money.Money  `json:"value" gorm:"type:numeric(10,2);not null"`
	IsActive  bool         `json:"is_active" gorm:"not null"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (Discount) TableName() string {
	return "discounts"
}

// Sale totals are computed once when the sale is created and never recalculated.
type Sale struct {
	ID             int64         `json:"id" gorm:"primaryKey;autoIncrement" validate:"gt=0"`
	StaffID        int64         `json:"staff_id" gorm:"not null;index" validate:"gt=0"`
	Subtotal       money.Money   `json:"subtotal" gorm:"type:numeric(10,2);not null"`
	TaxAmount      money.Money   `json:"tax_amount" gorm:"type:numeric(10,2);not null"`
	DiscountAmount money.Money   `json:"discount_amount" gorm:"type:numeric(10,2);not null"`
	TotalAmount    money.Money   `json:"total_amount" gorm:"type:numeric(10,2);not null"`
	PaymentMethod  PaymentMethod `json:"payment_method" gorm:"type:varchar(16);not null" validate:"oneof=cash card digital_wallet"`
	Status         SaleStatus    `json:"status" gorm:"type:varchar(16);not null;index" validate:"oneof=pending completed cancelled refunded"`
	CreatedAt      time.Time     `json:"created_at" gorm:"index"`
	UpdatedAt      time.Time     `json:"updated_at"`

	Staff *Staff `json:"-" gorm:"foreignKey:StaffID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" validate:"-"`
}

func (Sale) TableName() string {
	return "sales"
}

type SaleItem struct {
	ID         int64       `json:"id" gorm:"primaryKey;autoIncrement" validate:"gt=0"`
	SaleID     int64       `json:"sale_id" gorm:"not null;index" validate:"gt=0"`
	ProductID  int64       `json:"product_id" gorm:"not null;index" validate:"gt=0"`
	Quantity   int         `json:"quantity" gorm:"not null;check:quantity > 0" validate:"gt=0"`
	UnitPrice  money.Money `json:"unit_price" gorm:"type:numeric(10,2);not null"`
	TotalPrice money.Money `json:"total_price" gorm:"type:numeric(10,2);not null"`
	CreatedAt  time.Time   `json:"created_at"`

	Sale    *Sale    `json:"-" gorm:"foreignKey:SaleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`
	Product *Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" validate:"-"`
}

func (SaleItem) TableName() string {
	return "sale_items"
}

// SaleWithItems is a sale together with its line items.
type SaleWithItems struct {
	Sale
	Items []SaleItem `json:"items"`
}

// StaffCredential holds the login secret for a staff email. It is kept out of
// backups and survives restores.
type StaffCredential struct {
	Email        string `gorm:"primaryKey;type:text"`
	PasswordHash string `gorm:"type:text;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (StaffCredential) TableName() string {
	return "staff_credentials"
}
