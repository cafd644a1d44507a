package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/conflicts"
	"github.com/m04kA/SMC-ClinicService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-ClinicService/pkg/apperr"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

var (
	testDate = time.Date(2025, 9, 16, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
)

// memoryCache повторяет схему версий redis-кэша: данные лежат под версией даты
type memoryCache struct {
	data     map[string][]domain.Interval
	versions map[string]int64
	gets     int
	sets     int
	failGet  bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		data:     make(map[string][]domain.Interval),
		versions: make(map[string]int64),
	}
}

func cacheKey(date time.Time, version int64, serviceID uuid.UUID, duration int) string {
	return fmt.Sprintf("%s:v%d:%s:%d", date.Format(domain.DateFormat), version, serviceID, duration)
}

func (c *memoryCache) Get(_ context.Context, date time.Time, serviceID uuid.UUID, duration int) ([]domain.Interval, int64, bool, error) {
	c.gets++
	if c.failGet {
		return nil, 0, false, errors.New("redis down")
	}
	version := c.versions[date.Format(domain.DateFormat)]
	slots, ok := c.data[cacheKey(date, version, serviceID, duration)]
	return slots, version, ok, nil
}

func (c *memoryCache) Set(_ context.Context, date time.Time, version int64, serviceID uuid.UUID, duration int, slots []domain.Interval) error {
	c.sets++
	c.data[cacheKey(date, version, serviceID, duration)] = slots
	return nil
}

func (c *memoryCache) Invalidate(date time.Time) {
	c.versions[date.Format(domain.DateFormat)]++
}

type countingOccupancy struct {
	*conflicts.Detector
	calls int
	// afterRead вызывается после чтения занятости, до записи в кэш
	afterRead func()
}

func (o *countingOccupancy) OccupiedIntervals(ctx context.Context, date time.Time) ([]domain.Interval, error) {
	o.calls++
	result, err := o.Detector.OccupiedIntervals(ctx, date)
	if o.afterRead != nil {
		o.afterRead()
	}
	return result, err
}

type fixture struct {
	store     *usecasetest.Store
	occupancy *countingOccupancy
	cache     *memoryCache
	uc        *UseCase
}

func newFixture(withCache bool) *fixture {
	log := logger.NewNop()
	f := &fixture{store: usecasetest.NewStore()}
	f.occupancy = &countingOccupancy{Detector: conflicts.NewDetector(f.store.Appointments(), log)}

	var cache SlotCache
	if withCache {
		f.cache = newMemoryCache()
		cache = f.cache
	}
	f.uc = NewUseCase(f.store.Services(), f.occupancy, cache, log)
	f.uc.timeProvider = usecasetest.Clock{At: testNow}
	return f
}

func TestExecute_EmptyDayCoversWorkingHours(t *testing.T) {
	f := newFixture(false)
	svc := f.store.AddService("Консультация", 30, true)

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: svc.ID, Date: testDate})
	require.NoError(t, err)

	// 05:00 .. 22:30 с шагом 30 минут
	require.Len(t, resp.Slots, 36)
	assert.Equal(t, Slot{Start: "05:00:00", End: "05:30:00"}, resp.Slots[0])
	assert.Equal(t, Slot{Start: "22:30:00", End: "23:00:00"}, resp.Slots[35])
	assert.Equal(t, 30, resp.DurationMinutes)

	for i := 1; i < len(resp.Slots); i++ {
		assert.True(t, resp.Slots[i-1].Start.IsBefore(resp.Slots[i].Start))
		assert.False(t, resp.Slots[i].End.IsAfter(domain.WorkDayEnd))
	}
}

func TestExecute_LongServiceNeverPastDayEnd(t *testing.T) {
	f := newFixture(false)
	svc := f.store.AddService("Массаж спины", 90, true)

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: svc.ID, Date: testDate})
	require.NoError(t, err)

	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, types.TimeString("21:30:00"), last.Start)
	assert.Equal(t, types.TimeString("23:00:00"), last.End)
}

func TestExecute_SkipsOccupiedAcrossServices(t *testing.T) {
	f := newFixture(false)
	svc := f.store.AddService("Консультация", 60, true)
	other := f.store.AddService("Анализы крови", 30, true)
	f.store.AddAppointment(uuid.New(), other.ID, testDate, "09:00", "09:30", domain.StatusScheduled)
	f.store.AddAppointment(uuid.New(), other.ID, testDate, "12:00", "12:30", domain.StatusCancelled)

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: svc.ID, Date: testDate})
	require.NoError(t, err)

	starts := make(map[types.TimeString]bool)
	for _, s := range resp.Slots {
		starts[s.Start] = true
	}
	assert.False(t, starts["08:30:00"], "08:30-09:30 overlaps the booked 09:00-09:30")
	assert.False(t, starts["09:00:00"])
	assert.True(t, starts["08:00:00"], "08:00-09:00 only touches the booking")
	assert.True(t, starts["09:30:00"])
	assert.True(t, starts["12:00:00"], "cancelled rows do not occupy time")
}

func TestExecute_FullyBookedDayIsEmptyNotError(t *testing.T) {
	f := newFixture(false)
	svc := f.store.AddService("Консультация", 30, true)
	other := f.store.AddService("Кабинет МРТ", 30, true)
	f.store.AddAppointment(uuid.New(), other.ID, testDate, "05:00", "23:00", domain.StatusScheduled)

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: svc.ID, Date: testDate})
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TodayDropsStartedSlots(t *testing.T) {
	f := newFixture(false)
	svc := f.store.AddService("Консультация", 30, true)
	f.uc.timeProvider = usecasetest.Clock{At: time.Date(2025, 9, 16, 21, 10, 0, 0, time.UTC)}

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: svc.ID, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("21:30:00"), resp.Slots[0].Start)
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture(false)
	closed := f.store.AddService("Кабинет МРТ", 30, false)

	_, err := f.uc.Execute(context.Background(), &Request{ServiceID: uuid.New(), Date: testDate})
	require.ErrorIs(t, err, ErrServiceNotFound)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = f.uc.Execute(context.Background(), &Request{ServiceID: closed.ID, Date: testDate})
	require.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Equal(t, apperr.KindUnavailable, apperr.KindOf(err))

	_, err = f.uc.Execute(context.Background(), &Request{ServiceID: closed.ID, Date: testNow.AddDate(0, 0, -1)})
	require.ErrorIs(t, err, ErrInvalidDate)

	_, err = f.uc.Execute(context.Background(), &Request{Date: testDate})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, f.occupancy.calls)
}

func TestExecute_CacheHitSkipsStore(t *testing.T) {
	f := newFixture(true)
	svc := f.store.AddService("Консультация", 30, true)
	req := &Request{ServiceID: svc.ID, Date: testDate}

	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
	assert.Equal(t, 1, f.occupancy.calls)
	assert.Equal(t, 1, f.cache.sets)
	assert.Equal(t, 2, f.cache.gets)
}

func TestExecute_CacheFailureFallsBackToStore(t *testing.T) {
	f := newFixture(true)
	f.cache.failGet = true
	svc := f.store.AddService("Консультация", 30, true)

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: svc.ID, Date: testDate})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 36)
	assert.Equal(t, 1, f.occupancy.calls)
}

func TestExecute_CacheWriteAfterInvalidationIsNotServed(t *testing.T) {
	f := newFixture(true)
	svc := f.store.AddService("Консультация", 30, true)
	req := &Request{ServiceID: svc.ID, Date: testDate}

	// запись на 09:00 фиксируется, пока слоты считаются по старой занятости
	f.occupancy.afterRead = func() {
		f.occupancy.afterRead = nil
		f.store.AddAppointment(uuid.New(), svc.ID, testDate, "09:00", "09:30", domain.StatusScheduled)
		f.cache.Invalidate(testDate)
	}

	stale, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, stale.Slots, 36)

	fresh, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, fresh.Slots, 35)
	assert.NotContains(t, fresh.Slots, Slot{Start: "09:00:00", End: "09:30:00"})
	assert.Equal(t, 2, f.occupancy.calls)
}

func TestExecute_CacheReadFailureSkipsWrite(t *testing.T) {
	f := newFixture(true)
	f.cache.failGet = true
	svc := f.store.AddService("Консультация", 30, true)

	_, err := f.uc.Execute(context.Background(), &Request{ServiceID: svc.ID, Date: testDate})
	require.NoError(t, err)
	assert.Zero(t, f.cache.sets)
}
