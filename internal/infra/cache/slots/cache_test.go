package slots

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

func TestKeys(t *testing.T) {
	date := time.Date(2025, 9, 16, 0, 0, 0, 0, time.UTC)
	serviceID := uuid.MustParse("8d3c9c0e-7f0a-4d8e-9a51-1f2b3c4d5e6f")

	assert.Equal(t, "clinic:slots:ver:2025-09-16", VersionKey(date))
	assert.Equal(t,
		"clinic:slots:2025-09-16:v3:8d3c9c0e-7f0a-4d8e-9a51-1f2b3c4d5e6f:30",
		DataKey(date, 3, serviceID, 30),
	)
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewCache(rdb, time.Minute)
}

func TestCache_RoundTripAndInvalidate(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	date := time.Date(2031, 1, 2, 0, 0, 0, 0, time.UTC)
	serviceID := uuid.New()
	slots := []domain.Interval{{Start: types.MustTimeString("05:00"), End: types.MustTimeString("05:30")}}

	_, version, found, err := cache.Get(ctx, date, serviceID, 30)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, version)

	require.NoError(t, cache.Set(ctx, date, version, serviceID, 30, slots))

	got, _, found, err := cache.Get(ctx, date, serviceID, 30)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, slots, got)

	// другая длительность - другой ключ
	_, _, found, err = cache.Get(ctx, date, serviceID, 60)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Invalidate(ctx, date))

	_, version, found, err = cache.Get(ctx, date, serviceID, 30)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, int64(1), version)
}

func TestCache_SetAfterInvalidateIsNotServed(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	date := time.Date(2031, 1, 2, 0, 0, 0, 0, time.UTC)
	serviceID := uuid.New()
	stale := []domain.Interval{{Start: types.MustTimeString("09:00"), End: types.MustTimeString("09:30")}}

	_, version, found, err := cache.Get(ctx, date, serviceID, 30)
	require.NoError(t, err)
	require.False(t, found)

	// запись на дату зафиксирована, пока читатель считал слоты
	require.NoError(t, cache.Invalidate(ctx, date))
	require.NoError(t, cache.Set(ctx, date, version, serviceID, 30, stale))

	got, _, found, err := cache.Get(ctx, date, serviceID, 30)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, got)
}

func TestCache_OtherDatesKeepTheirVersion(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	day := time.Date(2031, 1, 2, 0, 0, 0, 0, time.UTC)
	nextDay := day.AddDate(0, 0, 1)
	serviceID := uuid.New()
	slots := []domain.Interval{{Start: types.MustTimeString("10:00"), End: types.MustTimeString("10:30")}}

	require.NoError(t, cache.Set(ctx, nextDay, 0, serviceID, 30, slots))
	require.NoError(t, cache.Invalidate(ctx, day))

	got, _, found, err := cache.Get(ctx, nextDay, serviceID, 30)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, slots, got)
}
