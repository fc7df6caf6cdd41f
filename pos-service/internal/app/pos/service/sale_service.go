package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"webpos/pkg/logger"
	"webpos/pkg/metrics"
	"webpos/pkg/money"
	"webpos/pos-service/internal/app/pos/entity"
	"webpos/pos-service/internal/app/pos/infrastructure"
	"webpos/pos-service/internal/app/pos/repository"

	"github.com/google/uuid"
)

// SaleService records sales: it validates the request against current stock
// and pricing, computes the totals and persists everything in one transaction.
type SaleService struct {
	tx        repository.Transactor
	products  repository.ProductRepository
	taxes     repository.TaxRepository
	discounts repository.DiscountRepository
	sales     repository.SaleRepository
	publisher infrastructure.MessagePublisher
	now       func() time.Time
}

func NewSaleService(
	tx repository.Transactor,
	products repository.ProductRepository,
	taxes repository.TaxRepository,
	discounts repository.DiscountRepository,
	sales repository.SaleRepository,
	publisher infrastructure.MessagePublisher,
) *SaleService {
	return &SaleService{
		tx:        tx,
		products:  products,
		taxes:     taxes,
		discounts: discounts,
		sales:     sales,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// saleTotals holds the computed money fields of a sale.
type saleTotals struct {
	subtotal money.Money
	tax      money.Money
	discount money.Money
	total    money.Money
}

// CreateSale validates and records a sale.
//  1. Loads all referenced products in one query and checks stock in item order
//  2. Computes subtotal from the requested unit prices, then tax and discount
//  3. Inserts the sale and its items and decrements stock in one transaction
//  4. Publishes SALE_CREATED after commit
func (s *SaleService) CreateSale(ctx context.Context, req *entity.CreateSaleRequest) (*entity.SaleWithItems, error) {
	if err := s.checkStock(ctx, req.Items); err != nil {
		s.recordRejection(err)
		return nil, err
	}

	totals, err := s.computeTotals(ctx, req)
	if err != nil {
		s.recordRejection(err)
		return nil, err
	}

	now := s.now()
	sale := &entity.Sale{
		StaffID:        req.StaffID,
		Subtotal:       totals.subtotal,
		TaxAmount:      totals.tax,
		DiscountAmount: totals.discount,
		TotalAmount:    totals.total,
		PaymentMethod:  req.PaymentMethod,
		Status:         entity.SaleStatusCompleted,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var items []entity.SaleItem
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.sales.Create(ctx, sale); err != nil {
			return err
		}

		items = make([]entity.SaleItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, entity.SaleItem{
				SaleID:     sale.ID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				TotalPrice: item.UnitPrice.MulQty(item.Quantity),
				CreatedAt:  now,
			})
		}
		if err := s.sales.CreateItems(ctx, items); err != nil {
			return err
		}

		for _, item := range req.Items {
			if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return validation(ReasonInsufficientStock,
						fmt.Sprintf("insufficient stock for product %d", item.ProductID),
						map[string]interface{}{"product_id": item.ProductID, "required": item.Quantity})
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		err = s.mapPersistError(err)
		s.recordRejection(err)
		return nil, err
	}

	metrics.SalesCreated.WithLabelValues(string(sale.PaymentMethod)).Inc()
	if sale.TotalAmount.IsPositive() {
		metrics.SalesAmount.Add(sale.TotalAmount.Float64())
	}

	s.publishSaleCreated(ctx, sale, items)

	logger.Info().
		Int64("sale_id", sale.ID).
		Int64("staff_id", sale.StaffID).
		Str("total", sale.TotalAmount.String()).
		Int("items", len(items)).
		Msg("Sale created")

	return &entity.SaleWithItems{Sale: *sale, Items: items}, nil
}

// checkStock compares every requested quantity with one snapshot of stock
// taken before any write. Quantities of repeated products are not summed.
func (s *SaleService) checkStock(ctx context.Context, items []entity.SaleItemRequest) error {
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for i, item := range items {
		if !item.UnitPrice.IsPositive() {
			return validation(ReasonInvalidInput,
				"unit price must be positive",
				map[string]interface{}{"item": i, "product_id": item.ProductID, "unit_price": item.UnitPrice.String()})
		}
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return storage("failed to load products", err)
	}

	byID := make(map[int64]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	missing := make([]int64, 0)
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return validation(ReasonProductsNotFound,
			fmt.Sprintf("products not found: %v", missing),
			map[string]interface{}{"missing_ids": missing})
	}

	for _, item := range items {
		product := byID[item.ProductID]
		if item.Quantity > product.StockQuantity {
			return validation(ReasonInsufficientStock,
				fmt.Sprintf("insufficient stock for product %s", product.Name),
				map[string]interface{}{
					"product_id":   product.ID,
					"product_name": product.Name,
					"available":    product.StockQuantity,
					"required":     item.Quantity,
				})
		}
	}
	return nil
}

func (s *SaleService) computeTotals(ctx context.Context, req *entity.CreateSaleRequest) (saleTotals, error) {
	t := saleTotals{subtotal: money.Zero(), tax: money.Zero(), discount: money.Zero()}
	for _, item := range req.Items {
		t.subtotal = t.subtotal.Add(item.UnitPrice.MulQty(item.Quantity))
	}

	if req.TaxID != nil {
		tax, err := s.taxes.FindActiveByID(ctx, *req.TaxID)
		if err != nil {
			if errors.Is(err, repository.ErrTaxNotFound) {
				return t, validation(ReasonTaxUnavailable, "tax not found or inactive",
					map[string]interface{}{"tax_id": *req.TaxID})
			}
			return t, storage("failed to load tax", err)
		}
		t.tax = t.subtotal.Percent(tax.Rate)
	}

	if req.DiscountID != nil {
		discount, err := s.discounts.FindActiveByID(ctx, *req.DiscountID)
		if err != nil {
			if errors.Is(err, repository.ErrDiscountNotFound) {
				return t, validation(ReasonDiscountUnavailable, "discount not found or inactive",
					map[string]interface{}{"discount_id": *req.DiscountID})
			}
			return t, storage("failed to load discount", err)
		}
		t.discount = discountAmount(t.subtotal, discount)
	}

	// A fixed discount is not capped, so the total may be negative.
	t.total = t.subtotal.Add(t.tax).Sub(t.discount)
	return t, nil
}

func discountAmount(subtotal money.Money, discount *entity.Discount) money.Money {
	if discount.Type == entity.DiscountTypePercentage {
		return subtotal.Percent(money.RateFromMoney(discount.Value))
	}
	return discount.Value
}

func (s *SaleService) mapPersistError(err error) error {
	var svcErr *Error
	switch {
	case errors.As(err, &svcErr):
		return svcErr
	case errors.Is(err, repository.ErrStaffNotFound):
		return notFound("staff not found")
	case errors.Is(err, repository.ErrInvalidReference):
		return notFound("product not found")
	default:
		return storage("failed to record sale", err)
	}
}

func (s *SaleService) recordRejection(err error) {
	reason := "storage"
	var svcErr *Error
	if errors.As(err, &svcErr) {
		if svcErr.Reason != "" {
			reason = svcErr.Reason
		} else {
			reason = svcErr.KindName()
		}
	}
	metrics.SalesRejected.WithLabelValues(reason).Inc()
}

// publishSaleCreated never fails the sale; the sale is already committed.
func (s *SaleService) publishSaleCreated(ctx context.Context, sale *entity.Sale, items []entity.SaleItem) {
	lines := make([]entity.EventLineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, entity.EventLineItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	total := sale.TotalAmount
	event := entity.POSEvent{
		EventID:       uuid.NewString(),
		EventType:     entity.EventSaleCreated,
		SaleID:        sale.ID,
		StaffID:       sale.StaffID,
		TotalAmount:   &total,
		PaymentMethod: sale.PaymentMethod,
		ItemsCount:    len(items),
		Items:         lines,
		Timestamp:     sale.CreatedAt,
	}

	if err := publishEvent(ctx, s.publisher, strconv.FormatInt(sale.ID, 10), event); err != nil {
		logger.Warn().Err(err).Int64("sale_id", sale.ID).Msg("Failed to publish sale created event")
	}
}

func publishEvent(ctx context.Context, publisher infrastructure.MessagePublisher, key string, event entity.POSEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return publisher.PublishMessage(ctx, key, data)
}

func (s *SaleService) GetSale(ctx context.Context, id int64) (*entity.SaleWithItems, error) {
	sale, err := s.sales.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return nil, notFound("sale not found")
		}
		return nil, storage("failed to get sale", err)
	}

	items, err := s.sales.GetItems(ctx, id)
	if err != nil {
		return nil, storage("failed to get sale items", err)
	}

	return &entity.SaleWithItems{Sale: *sale, Items: items}, nil
}

func (s *SaleService) ListSales(ctx context.Context, filter entity.SaleFilter) ([]entity.Sale, error) {
	sales, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, storage("failed to list sales", err)
	}
	return sales, nil
}
