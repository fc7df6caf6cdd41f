package repository

import (
	"context"
	"testing"
	"time"

	"webpos/pkg/money"
	"webpos/pos-service/internal/app/pos/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (LookupCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisLookupCache(client, 10*time.Minute), mr
}

func TestLookupCache_CategoriesMissThenHit(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	_, found, err := cache.GetCategories(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.SetCategories(ctx, []entity.Category{{ID: 1, Name: "Drinks"}}))
	assert.True(t, mr.Exists(CacheKeyCategories))
	assert.Equal(t, 10*time.Minute, mr.TTL(CacheKeyCategories))

	categories, found, err := cache.GetCategories(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, categories, 1)
	assert.Equal(t, "Drinks", categories[0].Name)
}

func TestLookupCache_TaxesKeepRates(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetActiveTaxes(ctx, []entity.Tax{{ID: 2, Name: "VAT", Rate: money.MustParseRate("7.25"), IsActive: true}}))

	taxes, found, err := cache.GetActiveTaxes(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "7.25", taxes[0].Rate.String())
}

func TestLookupCache_InvalidateAll(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetCategories(ctx, []entity.Category{{ID: 1, Name: "Drinks"}}))
	require.NoError(t, cache.SetActiveDiscounts(ctx, []entity.Discount{{ID: 1, Name: "Promo"}}))

	require.NoError(t, cache.InvalidateAll(ctx))

	assert.False(t, mr.Exists(CacheKeyCategories))
	assert.False(t, mr.Exists(CacheKeyActiveDiscounts))
	_, found, err := cache.GetActiveDiscounts(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLookupCache_CorruptEntryIsError(t *testing.T) {
	cache, mr := setupCache(t)
	require.NoError(t, mr.Set(CacheKeyActiveTaxes, "not-json"))

	_, found, err := cache.GetActiveTaxes(context.Background())

	assert.Error(t, err)
	assert.False(t, found)
}

func TestNopCache_AlwaysMisses(t *testing.T) {
	cache := NewNopCache()
	ctx := context.Background()

	require.NoError(t, cache.SetCategories(ctx, []entity.Category{{ID: 1}}))
	_, found, err := cache.GetCategories(ctx)

	assert.NoError(t, err)
	assert.False(t, found)
}
