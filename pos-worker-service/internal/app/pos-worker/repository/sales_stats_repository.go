package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"webpos/pkg/metrics"
	"webpos/pkg/money"
	"webpos/pos-worker-service/internal/app/pos-worker/entity"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName       = "pos-worker"
	processedEventTTL = 7 * 24 * time.Hour
)

type salesStatsRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSalesStatsRepository(client *redis.Client, ttl time.Duration) SalesStatsRepository {
	return &salesStatsRepository{
		client: client,
		ttl:    ttl,
	}
}

// RecordSale adds one sale to the hash of its day in a single pipeline.
func (r *salesStatsRepository) RecordSale(ctx context.Context, eventID, date string, amountCents int64, items []entity.EventLineItem) (bool, error) {
	key := entity.DailySalesKey(date)
	seenKey := entity.ProcessedEventKey(eventID)

	fresh, err := r.client.SetNX(ctx, seenKey, date, processedEventTTL).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return false, fmt.Errorf("failed to mark event %s: %w", eventID, err)
	}
	if !fresh {
		return false, nil
	}

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpHIncr)
	defer timer.ObserveDuration()

	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, key, entity.FieldCount, 1)
	pipe.HIncrBy(ctx, key, entity.FieldAmountCents, amountCents)
	for _, item := range items {
		pipe.HIncrBy(ctx, key, entity.ProductQtyField(item.ProductID), int64(item.Quantity))
	}
	pipe.Expire(ctx, key, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpHIncr)
		r.client.Del(ctx, seenKey)
		return false, fmt.Errorf("failed to record sale stats: %w", err)
	}
	return true, nil
}

func (r *salesStatsRepository) GetDaily(ctx context.Context, date string) (*entity.DailySales, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpHGet)
	defer timer.ObserveDuration()

	fields, err := r.client.HGetAll(ctx, entity.DailySalesKey(date)).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpHGet)
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	stats := &entity.DailySales{
		Date:       date,
		Amount:     money.Zero(),
		ProductQty: make(map[int64]int64),
	}
	for field, raw := range fields {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for field %s: %w", raw, field, err)
		}

		switch {
		case field == entity.FieldCount:
			stats.Count = value
		case field == entity.FieldAmountCents:
			stats.Amount = money.FromCents(value)
		case strings.HasPrefix(field, entity.FieldProductQtyPrefix):
			productID, err := strconv.ParseInt(strings.TrimPrefix(field, entity.FieldProductQtyPrefix), 10, 64)
			if err != nil {
				continue
			}
			stats.ProductQty[productID] = value
		}
	}
	return stats, nil
}
