package repository

import (
	"context"
	"errors"

	"webpos/pkg/money"
	"webpos/pos-service/internal/app/pos/entity"

	"github.com/jackc/pgx/v5/pgconn"
)

const serviceName = "pos-service"

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrStaffNotFound      = errors.New("staff not found")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrTaxNotFound        = errors.New("tax not found")
	ErrDiscountNotFound   = errors.New("discount not found")
	ErrSaleNotFound       = errors.New("sale not found")

	ErrEmailTaken        = errors.New("email already in use")
	ErrHasDependents     = errors.New("record is referenced by other records")
	ErrInvalidReference  = errors.New("referenced record does not exist")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// PostgreSQL SQLSTATE codes mapped to repository errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Transactor runs fn as one unit of work. Repositories called with the ctx
// passed to fn take part in the same transaction; a nil return commits and an
// error or panic rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id int64) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]entity.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]entity.Product, error)
	ExistsInCategory(ctx context.Context, categoryID int64) (bool, error)
	Update(ctx context.Context, product *entity.Product) error
	SetStock(ctx context.Context, id int64, quantity int) (*entity.Product, error)
	DecrementStock(ctx context.Context, id int64, quantity int) error
	Delete(ctx context.Context, id int64) error
}

type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id int64) (*entity.Staff, error)
	GetByEmail(ctx context.Context, email string) (*entity.Staff, error)
	List(ctx context.Context, activeOnly bool) ([]entity.Staff, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, staff *entity.Staff) error
}

type CredentialRepository interface {
	Upsert(ctx context.Context, credential *entity.StaffCredential) error
	GetByEmail(ctx context.Context, email string) (*entity.StaffCredential, error)
}

type PrinterRepository interface {
	Create(ctx context.Context, printer *entity.Printer) error
	List(ctx context.Context, activeOnly bool) ([]entity.Printer, error)
}

type TaxRepository interface {
	Create(ctx context.Context, tax *entity.Tax) error
	List(ctx context.Context, activeOnly bool) ([]entity.Tax, error)
	FindActiveByID(ctx context.Context, id int64) (*entity.Tax, error)
}

type DiscountRepository interface {
	Create(ctx context.Context, discount *entity.Discount) error
	List(ctx context.Context, activeOnly bool) ([]entity.Discount, error)
	FindActiveByID(ctx context.Context, id int64) (*entity.Discount, error)
}

type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItems(ctx context.Context, items []entity.SaleItem) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	GetItems(ctx context.Context, saleID int64) ([]entity.SaleItem, error)
	List(ctx context.Context, filter entity.SaleFilter) ([]entity.Sale, error)
	ExistsForProduct(ctx context.Context, productID int64) (bool, error)
}

type ReportRepository interface {
	Totals(ctx context.Context, query entity.SalesReportQuery) (money.Money, int64, error)
	TopProducts(ctx context.Context, query entity.SalesReportQuery, limit int) ([]entity.TopProduct, error)
	DailyBreakdown(ctx context.Context, query entity.SalesReportQuery) ([]entity.DailySummary, error)
}

// SnapshotRepository gives whole-table access for backup and restore. dest and
// rows are pointers to entity slices, model is a pointer to an entity.
type SnapshotRepository interface {
	ReadAll(ctx context.Context, dest interface{}) error
	DeleteAll(ctx context.Context, model interface{}) error
	InsertAll(ctx context.Context, rows interface{}) error
	ResetSequence(ctx context.Context, table string) error
}

// LookupCache caches the small, read-mostly lists served to every till.
type LookupCache interface {
	GetCategories(ctx context.Context) ([]entity.Category, bool, error)
	SetCategories(ctx context.Context, categories []entity.Category) error
	GetActiveTaxes(ctx context.Context) ([]entity.Tax, bool, error)
	SetActiveTaxes(ctx context.Context, taxes []entity.Tax) error
	GetActiveDiscounts(ctx context.Context) ([]entity.Discount, bool, error)
	SetActiveDiscounts(ctx context.Context, discounts []entity.Discount) error
	Invalidate(ctx context.Context, keys ...string) error
	InvalidateAll(ctx context.Context) error
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}
