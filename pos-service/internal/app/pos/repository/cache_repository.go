package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"webpos/pkg/metrics"
	"webpos/pos-service/internal/app/pos/entity"

	"github.com/redis/go-redis/v9"
)

const (
	CacheKeyCategories      = "pos:categories:all"
	CacheKeyActiveTaxes     = "pos:taxes:active"
	CacheKeyActiveDiscounts = "pos:discounts:active"
)

var allCacheKeys = []string{CacheKeyCategories, CacheKeyActiveTaxes, CacheKeyActiveDiscounts}

// NewRedisClient connects to Redis and pings it once.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

type redisLookupCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLookupCache(client *redis.Client, ttl time.Duration) LookupCache {
	return &redisLookupCache{client: client, ttl: ttl}
}

func (c *redisLookupCache) GetCategories(ctx context.Context) ([]entity.Category, bool, error) {
	var categories []entity.Category
	found, err := c.get(ctx, CacheKeyCategories, &categories)
	return categories, found, err
}

func (c *redisLookupCache) SetCategories(ctx context.Context, categories []entity.Category) error {
	return c.set(ctx, CacheKeyCategories, categories)
}

func (c *redisLookupCache) GetActiveTaxes(ctx context.Context) ([]entity.Tax, bool, error) {
	var taxes []entity.Tax
	found, err := c.get(ctx, CacheKeyActiveTaxes, &taxes)
	return taxes, found, err
}

func (c *redisLookupCache) SetActiveTaxes(ctx context.Context, taxes []entity.Tax) error {
	return c.set(ctx, CacheKeyActiveTaxes, taxes)
}

func (c *redisLookupCache) GetActiveDiscounts(ctx context.Context) ([]entity.Discount, bool, error) {
	var discounts []entity.Discount
	found, err := c.get(ctx, CacheKeyActiveDiscounts, &discounts)
	return discounts, found, err
}

func (c *redisLookupCache) SetActiveDiscounts(ctx context.Context, discounts []entity.Discount) error {
	return c.set(ctx, CacheKeyActiveDiscounts, discounts)
}

func (c *redisLookupCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}

func (c *redisLookupCache) InvalidateAll(ctx context.Context) error {
	return c.Invalidate(ctx, allCacheKeys...)
}

func (c *redisLookupCache) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(serviceName, key)
			return false, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return false, fmt.Errorf("failed to read %s from cache: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	metrics.RecordCacheHit(serviceName, key)
	return true, nil
}

func (c *redisLookupCache) set(ctx context.Context, key string, value interface{}) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to write %s to cache: %w", key, err)
	}
	return nil
}

// nopCache is used when Redis is not configured: every read misses.
type nopCache struct{}

func NewNopCache() LookupCache {
	return nopCache{}
}

func (nopCache) GetCategories(context.Context) ([]entity.Category, bool, error) {
	return nil, false, nil
}
func (nopCache) SetCategories(context.Context, []entity.Category) error     { return nil }
func (nopCache) GetActiveTaxes(context.Context) ([]entity.Tax, bool, error) { return nil, false, nil }
func (nopCache) SetActiveTaxes(context.Context, []entity.Tax) error         { return nil }
func (nopCache) GetActiveDiscounts(context.Context) ([]entity.Discount, bool, error) {
	return nil, false, nil
}
func (nopCache) SetActiveDiscounts(context.Context, []entity.Discount) error { return nil }
func (nopCache) Invalidate(context.Context, ...string) error                 { return nil }
func (nopCache) InvalidateAll(context.Context) error                         { return nil }
