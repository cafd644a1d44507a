package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/service"
	userClient "github.com/m04kA/SMC-ClinicService/internal/integrations/userservice"
	"github.com/m04kA/SMC-ClinicService/internal/scheduling"
	"github.com/m04kA/SMC-ClinicService/pkg/metrics"
)

// UseCase use case для создания записи на приём
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	detector        ConflictDetector
	userClient      UserServiceClient
	emitter         NotificationEmitter
	cache           SlotCache
	metrics         MetricsRecorder
	txManager       TransactionManager
	model           domain.ReservationModel
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// userClient, emitter и cache могут быть nil - соответствующий шаг пропускается
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	detector ConflictDetector,
	userClient UserServiceClient,
	emitter NotificationEmitter,
	cache SlotCache,
	metrics MetricsRecorder,
	txManager TransactionManager,
	model domain.ReservationModel,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		detector:        detector,
		userClient:      userClient,
		emitter:         emitter,
		cache:           cache,
		metrics:         metrics,
		txManager:       txManager,
		model:           model,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверки пересечений и вставка идут в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%s, service=%s, date=%s, time=%s",
		req.UserID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Записать другого пользователя может только администратор
	if !req.Caller.CanAccess(req.UserID) {
		uc.logger.Warn("CreateAppointment: user=%s is not allowed to book for user=%s", req.Caller.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	// 3. Дата по часам клиники
	if err := validateNotInPast(req.Date, req.StartTime, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 4. Пользователь должен существовать во внешнем сервисе
	if err := uc.checkUser(ctx, req); err != nil {
		return nil, err
	}

	var (
		result  *domain.Appointment
		service *domain.Service
	)

	// 5. Сериализуемая транзакция: услуга, время окончания, конфликты, вставка
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// повтор после serialization failure начинает с чистого состояния
		result, service = nil, nil

		// 5.1. Услуга должна существовать и быть доступной, до любых проверок конфликтов
		svc, err := uc.serviceRepo.GetByID(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateAppointment: service id=%s not found", req.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", req.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}
		if !svc.IsBookable() {
			uc.logger.Warn("CreateAppointment: service id=%s is not available", req.ServiceID)
			return ErrServiceUnavailable
		}
		service = svc

		// 5.2. Время окончания по длительности услуги, если не задано явно
		end := req.EndTime
		if end == nil {
			computed, err := scheduling.ComputeEndTime(req.StartTime, svc.DurationMinutes)
			if err != nil {
				uc.logger.Warn("CreateAppointment: failed to compute end time: %v", err)
				return fmt.Errorf("%w: %w", ErrInvalidTimeRange, err)
			}
			end = &computed
		}

		// 5.3. Пересечение с другими scheduled записями дня
		conflict, err := uc.detector.HasTimeConflict(txCtx, req.Date, req.StartTime, end, nil)
		if err != nil {
			uc.logger.Error("CreateAppointment: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %w", ErrInternal, err)
		}
		if conflict {
			uc.logger.Warn("CreateAppointment: time conflict on %s %s-%s",
				req.Date.Format(domain.DateFormat), req.StartTime, *end)
			uc.metrics.RecordAppointmentEvent(metrics.EventConflict)
			return ErrTimeConflict
		}

		// 5.4. Дубль у того же пользователя
		duplicate, err := uc.detector.HasDuplicate(txCtx, req.UserID, req.Date, req.StartTime, nil)
		if err != nil {
			uc.logger.Error("CreateAppointment: duplicate check failed: %v", err)
			return fmt.Errorf("%w: duplicate check failed: %w", ErrInternal, err)
		}
		if duplicate {
			uc.logger.Warn("CreateAppointment: user=%s already has an appointment at %s %s",
				req.UserID, req.Date.Format(domain.DateFormat), req.StartTime)
			uc.metrics.RecordAppointmentEvent(metrics.EventConflict)
			return ErrDuplicate
		}

		// 5.5. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			UserID:    req.UserID,
			ServiceID: req.ServiceID,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   end,
			Status:    domain.StatusScheduled,
			Notes:     req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrConflict):
				// ограничение БД поймало гонку, которую не увидела проверка выше
				uc.logger.Warn("CreateAppointment: storage rejected overlapping appointment: %v", err)
				uc.metrics.RecordAppointmentEvent(metrics.EventConflict)
				return ErrTimeConflict
			case errors.Is(err, appointmentRepo.ErrServiceReference):
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		// 5.6. Услуга как единственный ресурс занимается вместе с записью
		if uc.model == domain.ReservationSingleResource {
			if err := uc.serviceRepo.SetAvailability(txCtx, svc.ID, false); err != nil {
				uc.logger.Error("CreateAppointment: failed to reserve service id=%s: %v", svc.ID, err)
				return fmt.Errorf("%w: failed to reserve service: %w", ErrInternal, err)
			}
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	// 6. Побочные эффекты только после коммита
	uc.afterCommit(ctx, result)

	return &Response{
		ID:          result.ID,
		UserID:      result.UserID,
		ServiceID:   result.ServiceID,
		Date:        result.Date,
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		Status:      string(result.Status),
		Notes:       result.Notes,
		ServiceName: service.Name,
		Price:       service.Price,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// checkUser проверяет пользователя во внешнем сервисе.
// При недоступности сервиса доверяем токену
func (uc *UseCase) checkUser(ctx context.Context, req *Request) error {
	if uc.userClient == nil {
		return nil
	}

	_, err := uc.userClient.GetUserWithGracefulDegradation(ctx, req.UserID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, userClient.ErrUserNotFound):
		uc.logger.Warn("CreateAppointment: user id=%s not found", req.UserID)
		return ErrUserNotFound
	default:
		uc.logger.Error("CreateAppointment: user check degraded for user id=%s: %v", req.UserID, err)
		return nil
	}
}

func (uc *UseCase) afterCommit(ctx context.Context, appt *domain.Appointment) {
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, appt.Date); err != nil {
			uc.logger.Warn("CreateAppointment: failed to invalidate slots cache: %v", err)
		}
	}

	uc.metrics.RecordAppointmentEvent(metrics.EventCreated)

	if uc.emitter != nil {
		uc.emitter.AppointmentEvent(ctx, domain.NotificationAppointmentCreated, appt.Snapshot())
	}
}
