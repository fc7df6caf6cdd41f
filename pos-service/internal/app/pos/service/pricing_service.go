package service

import (
	"context"
	"time"

	"webpos/pkg/logger"
	"webpos/pkg/money"
	"webpos/pos-service/internal/app/pos/entity"
	"webpos/pos-service/internal/app/pos/repository"
)

var hundredPercent = money.MustParse("100")

// PricingService manages taxes and discounts. Active lists are cached.
type PricingService struct {
	taxes     repository.TaxRepository
	discounts repository.DiscountRepository
	cache     repository.LookupCache
}

func NewPricingService(
	taxes repository.TaxRepository,
	discounts repository.DiscountRepository,
	cache repository.LookupCache,
) *PricingService {
	return &PricingService{taxes: taxes, discounts: discounts, cache: cache}
}

func (s *PricingService) CreateTax(ctx context.Context, req *entity.CreateTaxRequest) (*entity.Tax, error) {
	if !req.Rate.Valid() {
		return nil, validation(ReasonInvalidInput, "tax rate must be between 0 and 100",
			map[string]interface{}{"field": "rate", "value": req.Rate.String()})
	}

	now := time.Now().UTC()
	tax := &entity.Tax{
		Name:      req.Name,
		Rate:      req.Rate,
		IsActive:  req.IsActive == nil || *req.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.taxes.Create(ctx, tax); err != nil {
		return nil, storage("failed to create tax", err)
	}

	s.invalidate(ctx, repository.CacheKeyActiveTaxes)
	return tax, nil
}

func (s *PricingService) ListTaxes(ctx context.Context, activeOnly bool) ([]entity.Tax, error) {
	if activeOnly {
		if cached, found, err := s.cache.GetActiveTaxes(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to read taxes from cache")
		} else if found {
			return cached, nil
		}
	}

	taxes, err := s.taxes.List(ctx, activeOnly)
	if err != nil {
		return nil, storage("failed to list taxes", err)
	}
	if taxes == nil {
		taxes = []entity.Tax{}
	}

	if activeOnly {
		if err := s.cache.SetActiveTaxes(ctx, taxes); err != nil {
			logger.Warn().Err(err).Msg("Failed to cache taxes")
		}
	}
	return taxes, nil
}

func (s *PricingService) CreateDiscount(ctx context.Context, req *entity.CreateDiscountRequest) (*entity.Discount, error) {
	if !req.Value.IsPositive() {
		return nil, validation(ReasonInvalidInput, "discount value must be greater than zero",
			map[string]interface{}{"field": "value", "value": req.Value.String()})
	}
	if req.Type == entity.DiscountTypePercentage && req.Value.Cmp(hundredPercent) > 0 {
		return nil, validation(ReasonInvalidInput, "percentage discount cannot exceed 100",
			map[string]interface{}{"field": "value", "value": req.Value.String()})
	}

	now := time.Now().UTC()
	discount := &entity.Discount{
		Name:      req.Name,
		Type:      req.Type,
		Value:     req.Value,
		IsActive:  req.IsActive == nil || *req.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.discounts.Create(ctx, discount); err != nil {
		return nil, storage("failed to create discount", err)
	}

	s.invalidate(ctx, repository.CacheKeyActiveDiscounts)
	return discount, nil
}

func (s *PricingService) ListDiscounts(ctx context.Context, activeOnly bool) ([]entity.Discount, error) {
	if activeOnly {
		if cached, found, err := s.cache.GetActiveDiscounts(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to read discounts from cache")
		} else if found {
			return cached, nil
		}
	}

	discounts, err := s.discounts.List(ctx, activeOnly)
	if err != nil {
		return nil, storage("failed to list discounts", err)
	}
	if discounts == nil {
		discounts = []entity.Discount{}
	}

	if activeOnly {
		if err := s.cache.SetActiveDiscounts(ctx, discounts); err != nil {
			logger.Warn().Err(err).Msg("Failed to cache discounts")
		}
	}
	return discounts, nil
}

func (s *PricingService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		logger.Warn().Err(err).Strs("keys", keys).Msg("Failed to invalidate cache")
	}
}
