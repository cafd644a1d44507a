// Package slots кэширует рассчитанные свободные слоты в redis.
//
// Ключ данных содержит версию даты. Любая зафиксированная запись на дату
// увеличивает версию (INCR), и старые ключи перестают читаться, а затем истекают по TTL.
package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

const keyPrefix = "clinic:slots"

type cachedSlot struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Cache кэш свободных слотов
type Cache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewCache создает кэш поверх клиента redis
func NewCache(rdb redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get возвращает слоты из кэша и версию даты, под которой их искали.
// found=false, если значения нет. Версию нужно передать в Set
func (c *Cache) Get(ctx context.Context, date time.Time, serviceID uuid.UUID, durationMinutes int) ([]domain.Interval, int64, bool, error) {
	version, err := c.version(ctx, date)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := c.rdb.Get(ctx, DataKey(date, version, serviceID, durationMinutes)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, version, false, fmt.Errorf("%w: get slots: %w", ErrCache, err)
	}

	var cached []cachedSlot
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, version, false, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	result := make([]domain.Interval, 0, len(cached))
	for _, s := range cached {
		result = append(result, domain.Interval{Start: s.Start, End: s.End})
	}
	return result, version, true, nil
}

// Set сохраняет слоты под версией, прочитанной в Get до расчёта.
// Если дату успели инвалидировать, запись ляжет под устаревшую версию
// и не будет прочитана
func (c *Cache) Set(ctx context.Context, date time.Time, version int64, serviceID uuid.UUID, durationMinutes int, slots []domain.Interval) error {
	cached := make([]cachedSlot, 0, len(slots))
	for _, s := range slots {
		cached = append(cached, cachedSlot{Start: s.Start, End: s.End})
	}

	payload, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("%w: encode slots: %w", ErrCache, err)
	}

	if err := c.rdb.Set(ctx, DataKey(date, version, serviceID, durationMinutes), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set slots: %w", ErrCache, err)
	}
	return nil
}

// Invalidate делает все закэшированные слоты даты неактуальными
func (c *Cache) Invalidate(ctx context.Context, date time.Time) error {
	key := VersionKey(date)

	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, key)
	// версия живёт дольше данных, чтобы не откатиться к старому значению
	pipe.Expire(ctx, key, 2*c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: invalidate %s: %w", ErrCache, date.Format(domain.DateFormat), err)
	}
	return nil
}

func (c *Cache) version(ctx context.Context, date time.Time) (int64, error) {
	version, err := c.rdb.Get(ctx, VersionKey(date)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: get version: %w", ErrCache, err)
	}
	return version, nil
}

// VersionKey ключ счётчика версий даты
func VersionKey(date time.Time) string {
	return fmt.Sprintf("%s:ver:%s", keyPrefix, date.Format(domain.DateFormat))
}

// DataKey ключ списка слотов для услуги заданной длительности
func DataKey(date time.Time, version int64, serviceID uuid.UUID, durationMinutes int) string {
	return fmt.Sprintf("%s:%s:v%d:%s:%d", keyPrefix, date.Format(domain.DateFormat), version, serviceID, durationMinutes)
}
