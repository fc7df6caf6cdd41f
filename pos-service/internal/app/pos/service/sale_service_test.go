package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"webpos/pkg/money"
	"webpos/pos-service/internal/app/pos/entity"
	"webpos/pos-service/internal/app/pos/repository"
	"webpos/pos-service/internal/app/pos/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type saleFixture struct {
	tx        *mocks.MockTransactor
	products  *mocks.MockProductRepository
	taxes     *mocks.MockTaxRepository
	discounts *mocks.MockDiscountRepository
	sales     *mocks.MockSaleRepository
	publisher *mocks.MockMessagePublisher
	service   *SaleService
}

func newSaleFixture() *saleFixture {
	f := &saleFixture{
		tx:        &mocks.MockTransactor{},
		products:  new(mocks.MockProductRepository),
		taxes:     new(mocks.MockTaxRepository),
		discounts: new(mocks.MockDiscountRepository),
		sales:     new(mocks.MockSaleRepository),
		publisher: &mocks.MockMessagePublisher{Messages: make([][]byte, 0)},
	}
	f.service = NewSaleService(f.tx, f.products, f.taxes, f.discounts, f.sales, f.publisher)
	return f
}

// expectPersist wires a successful write phase that assigns saleID.
func (f *saleFixture) expectPersist(ctx context.Context, saleID int64) {
	f.sales.On("Create", ctx, mock.AnythingOfType("*entity.Sale")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Sale).ID = saleID
		}).
		Return(nil)
	f.sales.On("CreateItems", ctx, mock.AnythingOfType("[]entity.SaleItem")).Return(nil)
	f.publisher.On("PublishMessage", ctx, mock.AnythingOfType("string"), mock.Anything).Return(nil)
}

func productA(stock int) []entity.Product {
	return []entity.Product{{ID: 1, Name: "Product A", Price: money.MustParse("10.00"), CategoryID: 1, StockQuantity: stock}}
}

func saleRequest(quantity int, unitPrice string) *entity.CreateSaleRequest {
	return &entity.CreateSaleRequest{
		StaffID: 1,
		Items: []entity.SaleItemRequest{
			{ProductID: 1, Quantity: quantity, UnitPrice: money.MustParse(unitPrice)},
		},
		PaymentMethod: entity.PaymentMethodCash,
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}

// ===================== CreateSale Tests =====================

func TestCreateSale_NoTaxNoDiscount(t *testing.T) {
	// Arrange
	f := newSaleFixture()
	ctx := context.Background()

	f.products.On("FindByIDs", ctx, []int64{1}).Return(productA(10), nil)
	f.expectPersist(ctx, 10)
	f.products.On("DecrementStock", ctx, int64(1), 2).Return(nil)

	// Act
	result, err := f.service.CreateSale(ctx, saleRequest(2, "10.00"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.ID)
	assert.Equal(t, "20.00", result.Subtotal.String())
	assert.Equal(t, "0.00", result.TaxAmount.String())
	assert.Equal(t, "0.00", result.DiscountAmount.String())
	assert.Equal(t, "20.00", result.TotalAmount.String())
	assert.Equal(t, entity.SaleStatusCompleted, result.Status)
	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(10), result.Items[0].SaleID)
	assert.Equal(t, "20.00", result.Items[0].TotalPrice.String())
	assert.Equal(t, 1, f.tx.Calls)

	f.products.AssertExpectations(t)
	f.sales.AssertExpectations(t)
	f.taxes.AssertNotCalled(t, "FindActiveByID", mock.Anything, mock.Anything)
	f.discounts.AssertNotCalled(t, "FindActiveByID", mock.Anything, mock.Anything)
}

func TestCreateSale_WithActiveTax(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	req := saleRequest(1, "10.00")
	req.TaxID = int64Ptr(3)

	f.products.On("FindByIDs", ctx, []int64{1}).Return(productA(5), nil)
	f.taxes.On("FindActiveByID", ctx, int64(3)).
		Return(&entity.Tax{ID: 3, Name: "VAT", Rate: money.MustParseRate("10"), IsActive: true}, nil)
	f.expectPersist(ctx, 11)
	f.products.On("DecrementStock", ctx, int64(1), 1).Return(nil)

	result, err := f.service.CreateSale(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "1.00", result.TaxAmount.String())
	assert.Equal(t, "11.00", result.TotalAmount.String())
}

func TestCreateSale_WithFixedDiscount(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	req := saleRequest(1, "10.00")
	req.DiscountID = int64Ptr(4)

	f.products.On("FindByIDs", ctx, []int64{1}).Return(productA(5), nil)
	f.discounts.On("FindActiveByID", ctx, int64(4)).
		Return(&entity.Discount{ID: 4, Type: entity.DiscountTypeFixed, Value: money.MustParse("5"), IsActive: true}, nil)
	f.expectPersist(ctx, 12)
	f.products.On("DecrementStock", ctx, int64(1), 1).Return(nil)

	result, err := f.service.CreateSale(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "5.00", result.DiscountAmount.String())
	assert.Equal(t, "5.00", result.TotalAmount.String())
}

func TestCreateSale_FixedDiscountLargerThanSubtotalGivesNegativeTotal(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	req := saleRequest(1, "10.00")
	req.DiscountID = int64Ptr(4)

	f.products.On("FindByIDs", ctx, []int64{1}).Return(productA(5), nil)
	f.discounts.On("FindActiveByID", ctx, int64(4)).
		Return(&entity.Discount{ID: 4, Type: entity.DiscountTypeFixed, Value: money.MustParse("15"), IsActive: true}, nil)
	f.expectPersist(ctx, 13)
	f.products.On("DecrementStock", ctx, int64(1), 1).Return(nil)

	result, err := f.service.CreateSale(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "-5.00", result.TotalAmount.String())
}

func TestCreateSale_PercentageDiscountAndTaxRounding(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	req := saleRequest(3, "19.99")
	req.TaxID = int64Ptr(1)
	req.DiscountID = int64Ptr(2)

	f.products.On("FindByIDs", ctx, []int64{1}).Return(productA(10), nil)
	f.taxes.On("FindActiveByID", ctx, int64(1)).
		Return(&entity.Tax{ID: 1, Rate: money.MustParseRate("7.25"), IsActive: true}, nil)
	f.discounts.On("FindActiveByID", ctx, int64(2)).
		Return(&entity.Discount{ID: 2, Type: entity.DiscountTypePercentage, Value: money.MustParse("25"), IsActive: true}, nil)
	f.expectPersist(ctx, 14)
	f.products.On("DecrementStock", ctx, int64(1), 3).Return(nil)

	result, err := f.service.CreateSale(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "59.97", result.Subtotal.String())
	assert.Equal(t, "4.35", result.TaxAmount.String())
	assert.Equal(t, "14.99", result.DiscountAmount.String())
	assert.Equal(t, "49.33", result.TotalAmount.String())
	assert.True(t, result.TotalAmount.Equal(result.Subtotal.Add(result.TaxAmount).Sub(result.DiscountAmount)))
}

func TestCreateSale_UsesRequestUnitPrice(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	f.products.On("FindByIDs", ctx, []int64{1}).Return(productA(10), nil)
	f.expectPersist(ctx, 15)
	f.products.On("DecrementStock", ctx, int64(1), 2).Return(nil)

	result, err := f.service.CreateSale(ctx, saleRequest(2, "7.50"))

	require.NoError(t, err)
	assert.Equal(t, "15.00", result.Subtotal.String())
	assert.Equal(t, "7.50", result.Items[0].UnitPrice.String())
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	// Arrange
	f := newSaleFixture()
	ctx := context.Background()

	f.products.On("FindByIDs", ctx, []int64{1}).Return(productA(100), nil)

	// Act
	result, err := f.service.CreateSale(ctx, saleRequest(150, "1.00"))

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrValidation)

	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, ReasonInsufficientStock, svcErr.Reason)
	assert.Equal(t, "Product A", svcErr.Details["product_name"])
	assert.Equal(t, 100, svcErr.Details["available"])
	assert.Equal(t, 150, svcErr.Details["required"])

	assert.Equal(t, 0, f.tx.Calls)
	f.sales.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateSale_FirstShortfallInItemOrder(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	req := &entity.CreateSaleRequest{
		StaffID: 1,
		Items: []entity.SaleItemRequest{
			{ProductID: 2, Quantity: 9, UnitPrice: money.MustParse("1")},
			{ProductID: 1, Quantity: 9, UnitPrice: money.MustParse("1")},
		},
		PaymentMethod: entity.PaymentMethodCard,
	}
	f.products.On("FindByIDs", ctx, []int64{2, 1}).Return([]entity.Product{
		{ID: 1, Name: "One", StockQuantity: 1},
		{ID: 2, Name: "Two", StockQuantity: 2},
	}, nil)

	_, err := f.service.CreateSale(ctx, req)

	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "Two", svcErr.Details["product_name"])
}

func TestCreateSale_MissingProducts(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	req := &entity.CreateSaleRequest{
		StaffID: 1,
		Items: []entity.SaleItemRequest{
			{ProductID: 1, Quantity: 1, UnitPrice: money.MustParse("1")},
			{ProductID: 3, Quantity: 1, UnitPrice: money.MustParse("1")},
			{ProductID: 5, Quantity: 1, UnitPrice: money.MustParse("1")},
		},
		PaymentMethod: entity.PaymentMethodCash,
	}
	f.products.On("FindByIDs", ctx, []int64{1, 3, 5}).Return(productA(10), nil)

	_, err := f.service.CreateSale(ctx, req)

	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, ReasonProductsNotFound, svcErr.Reason)
	assert.Equal(t, []int64{3, 5}, svcErr.Details["missing_ids"])
	assert.Equal(t, 0, f.tx.Calls)
}

func TestCreateSale_NonPositiveUnitPrice(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice string
	}{
		{name: "negative", unitPrice: "-10"},
		{name: "zero", unitPrice: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newSaleFixture()
			ctx := context.Background()

			// Act
			sale, err := f.service.CreateSale(ctx, saleRequest(2, tt.unitPrice))

			// Assert
			assert.Nil(t, sale)
			var svcErr *Error
			require.True(t, errors.As(err, &svcErr))
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, ReasonInvalidInput, svcErr.Reason)
			assert.Equal(t, int64(1), svcErr.Details["product_id"])
			f.products.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
			assert.Equal(t, 0, f.tx.Calls)
		})
	}
}

func TestCreateSale_InactiveTax(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	req := saleRequest(1, "10.00")
	req.TaxID = int64Ptr(9)

	f.products.On("FindByIDs", ctx, []int64{1}).Return(productA(5), nil)
	f.taxes.On("FindActiveByID", ctx, int64(9)).Return(nil, repository.ErrTaxNotFound)

	result, err := f.service.CreateSale(ctx, req)

	assert.Nil(t, result)
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, ReasonTaxUnavailable, svcErr.Reason)
	assert.Equal(t, 0, f.tx.Calls)
	f.sales.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateSale_InactiveDiscount(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	req := saleRequest(1, "10.00")
	req.DiscountID = int64Ptr(9)

	f.products.On("FindByIDs", ctx, []int64{1}).Return(productA(5), nil)
	f.discounts.On("FindActiveByID", ctx, int64(9)).Return(nil, repository.ErrDiscountNotFound)

	_, err := f.service.CreateSale(ctx, req)

	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, ReasonDiscountUnavailable, svcErr.Reason)
	assert.Equal(t, 0, f.tx.Calls)
}

func TestCreateSale_ConcurrentDecrementAbortsTransaction(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	f.products.On("FindByIDs", ctx, []int64{1}).Return(productA(2), nil)
	f.sales.On("Create", ctx, mock.AnythingOfType("*entity.Sale")).Return(nil)
	f.sales.On("CreateItems", ctx, mock.AnythingOfType("[]entity.SaleItem")).Return(nil)
	f.products.On("DecrementStock", ctx, int64(1), 2).Return(repository.ErrInsufficientStock)

	result, err := f.service.CreateSale(ctx, saleRequest(2, "1.00"))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, f.publisher.Messages)
}

func TestCreateSale_UnknownStaff(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	f.products.On("FindByIDs", ctx, []int64{1}).Return(productA(2), nil)
	f.sales.On("Create", ctx, mock.AnythingOfType("*entity.Sale")).Return(repository.ErrStaffNotFound)

	_, err := f.service.CreateSale(ctx, saleRequest(1, "1.00"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "staff not found")
}

func TestCreateSale_StorageFailure(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	f.products.On("FindByIDs", ctx, []int64{1}).Return(nil, errors.New("connection reset"))

	_, err := f.service.CreateSale(ctx, saleRequest(1, "1.00"))

	assert.ErrorIs(t, err, ErrStorage)
}

func TestCreateSale_PublishesSaleCreated(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	f.products.On("FindByIDs", ctx, []int64{1}).Return(productA(10), nil)
	f.expectPersist(ctx, 21)
	f.products.On("DecrementStock", ctx, int64(1), 2).Return(nil)

	_, err := f.service.CreateSale(ctx, saleRequest(2, "10.00"))
	require.NoError(t, err)

	f.publisher.AssertCalled(t, "PublishMessage", ctx, "21", mock.Anything)
	require.Len(t, f.publisher.Messages, 1)

	var event entity.POSEvent
	require.NoError(t, json.Unmarshal(f.publisher.Messages[0], &event))
	assert.Equal(t, entity.EventSaleCreated, event.EventType)
	assert.Equal(t, int64(21), event.SaleID)
	assert.Equal(t, "20.00", event.TotalAmount.String())
	assert.Equal(t, []entity.EventLineItem{{ProductID: 1, Quantity: 2}}, event.Items)
}

func TestCreateSale_PublishFailureDoesNotFailSale(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	f.products.On("FindByIDs", ctx, []int64{1}).Return(productA(10), nil)
	f.sales.On("Create", ctx, mock.AnythingOfType("*entity.Sale")).Return(nil)
	f.sales.On("CreateItems", ctx, mock.AnythingOfType("[]entity.SaleItem")).Return(nil)
	f.products.On("DecrementStock", ctx, int64(1), 1).Return(nil)
	f.publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	result, err := f.service.CreateSale(ctx, saleRequest(1, "10.00"))

	assert.NoError(t, err)
	assert.NotNil(t, result)
}

// ===================== GetSale / ListSales Tests =====================

func TestGetSale_NotFound(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	f.sales.On("GetByID", ctx, int64(99)).Return(nil, repository.ErrSaleNotFound)

	result, err := f.service.GetSale(ctx, 99)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSale_WithItems(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()

	f.sales.On("GetByID", ctx, int64(5)).Return(&entity.Sale{ID: 5, TotalAmount: money.MustParse("3")}, nil)
	f.sales.On("GetItems", ctx, int64(5)).Return([]entity.SaleItem{{ID: 1, SaleID: 5}}, nil)

	result, err := f.service.GetSale(ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, int64(5), result.ID)
	assert.Len(t, result.Items, 1)
}

func TestListSales_PassesFilter(t *testing.T) {
	f := newSaleFixture()
	ctx := context.Background()
	filter := entity.SaleFilter{StaffID: int64Ptr(2)}

	f.sales.On("List", ctx, filter).Return([]entity.Sale{{ID: 2}, {ID: 1}}, nil)

	sales, err := f.service.ListSales(ctx, filter)

	require.NoError(t, err)
	assert.Len(t, sales, 2)
}
