package repository

import (
	"context"
	"testing"
	"time"

	"webpos/pos-service/internal/app/pos/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRepository_ReadAllOrdersByID(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "categories" ORDER BY id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
			AddRow(1, "Drinks", nil, now, now).
			AddRow(2, "Food", "hot", now, now))

	var categories []entity.Category
	err := NewSnapshotRepository(db).ReadAll(context.Background(), &categories)

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, int64(2), categories[1].ID)
	require.NotNil(t, categories[1].Description)
	assert.Equal(t, "hot", *categories[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_DeleteAllWithoutWhere(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "sale_items"`).WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectCommit()

	err := NewSnapshotRepository(db).DeleteAll(context.Background(), &entity.SaleItem{})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_InsertAllSkipsEmptySlices(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	err := NewSnapshotRepository(db).InsertAll(context.Background(), &[]entity.Tax{})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_InsertAllKeepsIDs(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	now := time.Now()
	staff := []entity.Staff{
		{ID: 7, Name: "Ann", Email: "ann@shop.test", Role: entity.StaffRoleAdmin, IsActive: true, CreatedAt: now, UpdatedAt: now},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "staff" \("name","email","role","is_active","created_at","updated_at","id"\)`).
		WithArgs("Ann", "ann@shop.test", entity.StaffRoleAdmin, true, now, now, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	err := NewSnapshotRepository(db).InsertAll(context.Background(), &staff)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_ResetSequence(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectExec(`SELECT setval\(pg_get_serial_sequence\(\$1, 'id'\), COALESCE\(\(SELECT MAX\(id\) FROM "products"\), 0\) \+ 1, false\)`).
		WithArgs("products").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewSnapshotRepository(db).ResetSequence(context.Background(), "products")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_TotalsCompletedOnly(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	categoryID := int64(4)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(sales.total_amount\), 0\) AS total, COUNT\(sales.id\) AS count FROM "sales" `+
		`WHERE sales.status = \$1 AND \(sales.created_at >= \$2 AND sales.created_at <= \$3\) AND sales.id IN \(SELECT si.sale_id`).
		WithArgs(entity.SaleStatusCompleted, start, end, categoryID).
		WillReturnRows(sqlmock.NewRows([]string{"total", "count"}).AddRow("150.50", 3))

	total, count, err := NewReportRepository(db).Totals(context.Background(), entity.SalesReportQuery{
		StartDate:  start,
		EndDate:    end,
		CategoryID: &categoryID,
	})

	require.NoError(t, err)
	assert.Equal(t, "150.50", total.String())
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_TopProductsGroupedAndLimited(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT products.id AS product_id.* FROM "sale_items" JOIN sales ON sales.id = sale_items.sale_id ` +
		`JOIN products ON products.id = sale_items.product_id WHERE .* GROUP BY products.id, products.name ORDER BY total_revenue DESC LIMIT (\$4|10)`).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "product_name", "quantity_sold", "total_revenue"}).
			AddRow(1, "Coffee", 12, "42.00").
			AddRow(2, "Bagel", 3, "6.75"))

	top, err := NewReportRepository(db).TopProducts(context.Background(), entity.SalesReportQuery{
		StartDate: time.Now().Add(-time.Hour),
		EndDate:   time.Now(),
	}, 10)

	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Coffee", top[0].ProductName)
	assert.Equal(t, int64(12), top[0].QuantitySold)
	assert.Equal(t, "42.00", top[0].TotalRevenue.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
