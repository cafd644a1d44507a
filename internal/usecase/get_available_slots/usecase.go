package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ClinicService/internal/scheduling"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// UseCase use case для получения свободных слотов услуги на дату
type UseCase struct {
	serviceRepo  ServiceRepository
	occupancy    OccupancyReader
	cache        SlotCache
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. cache может быть nil
func NewUseCase(
	serviceRepo ServiceRepository,
	occupancy OccupancyReader,
	cache SlotCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:  serviceRepo,
		occupancy:    occupancy,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.ServiceID == uuid.Nil {
		return nil, fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 2. Услуга
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if !service.IsBookable() {
		uc.logger.Warn("GetAvailableSlots: service id=%s is not available", req.ServiceID)
		return nil, ErrServiceUnavailable
	}

	// 3. Свободные слоты рабочего дня
	free, err := uc.freeSlots(ctx, req.Date, service)
	if err != nil {
		return nil, err
	}

	// 4. Сегодня уже начавшиеся слоты не предлагаем
	if isSameDay(req.Date, now) {
		free = dropStarted(free, types.NewTimeString(now))
	}

	slots := make([]Slot, 0, len(free))
	for _, s := range free {
		slots = append(slots, Slot{Start: s.Start, End: s.End})
	}

	uc.logger.Info("GetAvailableSlots: %d slots for service=%s, date=%s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		ServiceID:       service.ID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}

// freeSlots читает слоты из кэша или считает их по занятости дня
func (uc *UseCase) freeSlots(ctx context.Context, date time.Time, service *domain.Service) ([]domain.Interval, error) {
	var (
		version int64
		cacheOK bool
	)
	if uc.cache != nil {
		cached, v, found, err := uc.cache.Get(ctx, date, service.ID, service.DurationMinutes)
		switch {
		case err != nil:
			uc.logger.Warn("GetAvailableSlots: slots cache read failed: %v", err)
		case found:
			return cached, nil
		default:
			version, cacheOK = v, true
		}
	}

	occupied, err := uc.occupancy.OccupiedIntervals(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get occupied intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to get occupied intervals: %w", ErrInternal, err)
	}

	free := scheduling.FreeSlots(scheduling.WorkingDay(), domain.SlotStepMinutes, service.DurationMinutes, occupied)

	// без известной версии не пишем: запись могла бы пережить инвалидацию
	if cacheOK {
		if err := uc.cache.Set(ctx, date, version, service.ID, service.DurationMinutes, free); err != nil {
			uc.logger.Warn("GetAvailableSlots: slots cache write failed: %v", err)
		}
	}

	return free, nil
}

func dropStarted(slots []domain.Interval, now types.TimeString) []domain.Interval {
	result := make([]domain.Interval, 0, len(slots))
	for _, s := range slots {
		if !s.Start.IsBefore(now) {
			result = append(result, s)
		}
	}
	return result
}

// isDateInPast сравнивает только календарные даты
func isDateInPast(date, now time.Time) bool {
	return date.Format(domain.DateFormat) < now.Format(domain.DateFormat)
}

func isSameDay(date1, date2 time.Time) bool {
	return date1.Format(domain.DateFormat) == date2.Format(domain.DateFormat)
}
