package service

import (
	"context"
	"errors"
	"time"

	"webpos/pkg/logger"
	"webpos/pos-service/internal/app/pos/entity"
	"webpos/pos-service/internal/app/pos/repository"
)

// CatalogService manages categories, products and stock levels.
type CatalogService struct {
	tx         repository.Transactor
	categories repository.CategoryRepository
	products   repository.ProductRepository
	sales      repository.SaleRepository
	cache      repository.LookupCache
}

func NewCatalogService(
	tx repository.Transactor,
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	sales repository.SaleRepository,
	cache repository.LookupCache,
) *CatalogService {
	return &CatalogService{
		tx:         tx,
		categories: categories,
		products:   products,
		sales:      sales,
		cache:      cache,
	}
}

// ===================== Categories =====================

func (s *CatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	now := time.Now().UTC()
	category := &entity.Category{
		Name:        req.Name,
		Description: emptyToNil(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, storage("failed to create category", err)
	}

	s.invalidate(ctx, repository.CacheKeyCategories)
	return category, nil
}

// ListCategories serves from the lookup cache when it can.
func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	cached, found, err := s.cache.GetCategories(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read categories from cache")
	} else if found {
		return cached, nil
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, storage("failed to list categories", err)
	}
	if categories == nil {
		categories = []entity.Category{}
	}

	if err := s.cache.SetCategories(ctx, categories); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache categories")
	}
	return categories, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*entity.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, notFound("category not found")
		}
		return nil, storage("failed to get category", err)
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = emptyToNil(req.Description)
	}
	category.UpdatedAt = time.Now().UTC()

	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, notFound("category not found")
		}
		return nil, storage("failed to update category", err)
	}

	s.invalidate(ctx, repository.CacheKeyCategories)
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	hasProducts, err := s.products.ExistsInCategory(ctx, id)
	if err != nil {
		return storage("failed to check category products", err)
	}
	if hasProducts {
		return dependency("cannot delete category with associated products")
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			return notFound("category not found")
		case errors.Is(err, repository.ErrHasDependents):
			return dependency("cannot delete category with associated products")
		default:
			return storage("failed to delete category", err)
		}
	}

	s.invalidate(ctx, repository.CacheKeyCategories)
	return nil
}

// ===================== Products =====================

func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	if !req.Price.IsPositive() {
		return nil, validation(ReasonInvalidInput, "price must be greater than zero",
			map[string]interface{}{"field": "price"})
	}
	if _, err := s.GetCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &entity.Product{
		Name:          req.Name,
		Description:   emptyToNil(req.Description),
		Price:         req.Price,
		CategoryID:    req.CategoryID,
		StockQuantity: req.StockQuantity,
		SKU:           emptyToNil(req.SKU),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, notFound("category not found")
		}
		return nil, storage("failed to create product", err)
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, storage("failed to list products", err)
	}
	return products, nil
}

func (s *CatalogService) ListProductsByCategory(ctx context.Context, categoryID int64) ([]entity.Product, error) {
	products, err := s.products.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, storage("failed to list products", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, notFound("product not found")
		}
		return nil, storage("failed to get product", err)
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = emptyToNil(req.Description)
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, validation(ReasonInvalidInput, "price must be greater than zero",
				map[string]interface{}{"field": "price"})
		}
		product.Price = *req.Price
	}
	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		if _, err := s.GetCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *req.CategoryID
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.SKU != nil {
		product.SKU = emptyToNil(req.SKU)
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return nil, notFound("product not found")
		case errors.Is(err, repository.ErrCategoryNotFound):
			return nil, notFound("category not found")
		default:
			return nil, storage("failed to update product", err)
		}
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}

	sold, err := s.sales.ExistsForProduct(ctx, id)
	if err != nil {
		return storage("failed to check product sales", err)
	}
	if sold {
		return dependency("cannot delete product with associated sales")
	}

	if err := s.products.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return notFound("product not found")
		case errors.Is(err, repository.ErrHasDependents):
			return dependency("cannot delete product with associated sales")
		default:
			return storage("failed to delete product", err)
		}
	}
	return nil
}

// UpdateStock applies an add, subtract or set operation. The result may not be negative.
func (s *CatalogService) UpdateStock(ctx context.Context, req *entity.UpdateStockRequest) (*entity.Product, error) {
	var updated *entity.Product
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		product, err := s.products.GetForUpdate(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return notFound("product not found")
			}
			return storage("failed to get product", err)
		}

		var quantity int
		switch req.Operation {
		case entity.StockOperationAdd:
			quantity = product.StockQuantity + req.QuantityChange
		case entity.StockOperationSubtract:
			quantity = product.StockQuantity - req.QuantityChange
		case entity.StockOperationSet:
			quantity = req.QuantityChange
		default:
			return validation(ReasonInvalidInput, "invalid stock operation",
				map[string]interface{}{"operation": req.Operation})
		}

		if quantity < 0 {
			return validation(ReasonNegativeStock, "stock quantity cannot be negative",
				map[string]interface{}{
					"product_id": product.ID,
					"available":  product.StockQuantity,
					"requested":  quantity,
				})
		}

		updated, err = s.products.SetStock(ctx, product.ID, quantity)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return notFound("product not found")
			}
			return storage("failed to update stock", err)
		}
		return nil
	})
	if err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			return nil, svcErr
		}
		return nil, storage("failed to update stock", err)
	}
	return updated, nil
}

func (s *CatalogService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		logger.Warn().Err(err).Strs("keys", keys).Msg("Failed to invalidate cache")
	}
}

// emptyToNil treats an empty optional string as absent.
func emptyToNil(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	v := *value
	return &v
}
