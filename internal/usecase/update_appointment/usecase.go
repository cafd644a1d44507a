package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ClinicService/internal/scheduling"
	"github.com/m04kA/SMC-ClinicService/pkg/metrics"
)

// UseCase use case для изменения записи: перенос, смена услуги, заметки, смена статуса
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	detector        ConflictDetector
	emitter         NotificationEmitter
	cache           SlotCache
	metrics         MetricsRecorder
	txManager       TransactionManager
	model           domain.ReservationModel
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. emitter и cache могут быть nil
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	detector ConflictDetector,
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
		emitter:         emitter,
		cache:           cache,
		metrics:         metrics,
		txManager:       txManager,
		model:           model,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// change итог применённого изменения, нужен для побочных эффектов после коммита
type change struct {
	before         domain.Appointment
	after          *domain.Appointment
	statusChanged  bool
	timeChanged    bool
	serviceChanged bool
}

// Execute выполняет use case изменения записи.
// Все проверки, запись и переключение доступности услуги идут в одной транзакции:
// при любой ошибке откатываются вместе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: id=%s, caller=%s", req.AppointmentID, req.Caller.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var ch *change
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		ch, err = uc.apply(txCtx, req, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: appointment id=%s updated, status=%s", ch.after.ID, ch.after.Status)

	uc.afterCommit(ctx, ch)

	return &Response{
		ID:        ch.after.ID,
		UserID:    ch.after.UserID,
		ServiceID: ch.after.ServiceID,
		Date:      ch.after.Date,
		StartTime: ch.after.StartTime,
		EndTime:   ch.after.EndTime,
		Status:    string(ch.after.Status),
		Notes:     ch.after.Notes,
		CreatedAt: ch.after.CreatedAt,
		UpdatedAt: ch.after.UpdatedAt,
	}, nil
}

func (uc *UseCase) apply(ctx context.Context, req *Request, now time.Time) (*change, error) {
	// 1. Загружаем запись (в транзакции строка блокируется)
	current, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateAppointment: appointment id=%s not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to get appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
	}

	// 2. Права: владелец или администратор
	if !req.Caller.CanAccess(current.UserID) {
		uc.logger.Warn("UpdateAppointment: access denied for user=%s to appointment id=%s", req.Caller.UserID, current.ID)
		return nil, ErrAccessDenied
	}

	ch := &change{before: current.Snapshot()}
	next := current.Snapshot()

	// 3. Смена статуса по допустимым переходам
	if req.Status != nil {
		target := domain.AppointmentStatus(*req.Status)
		switch {
		case target == current.Status && current.IsCancelled():
			return nil, ErrAlreadyCancelled
		case target == current.Status:
			// статус не меняется
		case !current.Status.CanTransitionTo(target):
			uc.logger.Warn("UpdateAppointment: transition %s -> %s is not allowed", current.Status, target)
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, target)
		default:
			next.Status = target
			ch.statusChanged = true
		}
	}
	reopen := ch.statusChanged && next.Status == domain.StatusScheduled

	// 4. Поля времени и услуги
	if req.ServiceID != nil && *req.ServiceID != current.ServiceID {
		next.ServiceID = *req.ServiceID
		ch.serviceChanged = true
	}
	dateChanged := req.Date != nil && !scheduling.SameDate(*req.Date, current.Date)
	if dateChanged {
		next.Date = *req.Date
	}
	startChanged := req.StartTime != nil && !req.StartTime.Equal(current.StartTime)
	if startChanged {
		next.StartTime = *req.StartTime
	}
	endChanged := req.EndTime != nil && (current.EndTime == nil || !req.EndTime.Equal(*current.EndTime))
	if endChanged {
		end := *req.EndTime
		next.EndTime = &end
	}
	if req.Notes != nil {
		notes := *req.Notes
		next.Notes = &notes
	}
	ch.timeChanged = ch.serviceChanged || dateChanged || startChanged || endChanged

	if ch.timeChanged && next.Status != domain.StatusScheduled {
		uc.logger.Warn("UpdateAppointment: cannot reschedule appointment id=%s in status %s", current.ID, next.Status)
		return nil, ErrNotRescheduled
	}

	// 5. Услуга нужна для пересчёта окончания и проверки доступности
	recomputeEnd := req.EndTime == nil && (startChanged || ch.serviceChanged)
	if ch.serviceChanged || reopen || recomputeEnd {
		svc, err := uc.getService(ctx, next.ServiceID)
		if err != nil {
			return nil, err
		}

		if (ch.serviceChanged || reopen) && !svc.IsBookable() {
			uc.logger.Warn("UpdateAppointment: service id=%s is not available", svc.ID)
			return nil, ErrServiceUnavailable
		}

		if recomputeEnd {
			end, err := scheduling.ComputeEndTime(next.StartTime, svc.DurationMinutes)
			if err != nil {
				uc.logger.Warn("UpdateAppointment: failed to compute end time: %v", err)
				return nil, fmt.Errorf("%w: %w", ErrInvalidTimeRange, err)
			}
			next.EndTime = &end
		}
	}

	if next.EndTime != nil && !next.StartTime.IsBefore(*next.EndTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidTimeRange)
	}

	if dateChanged || startChanged || reopen {
		if err := validateNotInPast(next.Date, next.StartTime, now); err != nil {
			uc.logger.Warn("UpdateAppointment: date validation failed: %v", err)
			return nil, err
		}
	}

	// 6. Конфликты проверяются только если менялись время, услуга или запись переоткрывается
	if next.Status == domain.StatusScheduled && (ch.timeChanged || reopen) {
		if err := uc.checkConflicts(ctx, &next); err != nil {
			return nil, err
		}
	}

	// 7. Сохраняем
	updated, err := uc.appointmentRepo.Update(ctx, &next)
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			return nil, ErrAppointmentNotFound
		case errors.Is(err, appointmentRepo.ErrConflict):
			uc.logger.Warn("UpdateAppointment: storage rejected overlapping appointment: %v", err)
			uc.metrics.RecordAppointmentEvent(metrics.EventConflict)
			return nil, ErrTimeConflict
		case errors.Is(err, appointmentRepo.ErrServiceReference):
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to update appointment id=%s: %v", current.ID, err)
		return nil, fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
	}
	ch.after = updated

	// 8. Доступность услуги в модели единственного ресурса
	if uc.model == domain.ReservationSingleResource {
		if err := uc.reconcileAvailability(ctx, ch); err != nil {
			return nil, err
		}
	}

	return ch, nil
}

func (uc *UseCase) getService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	svc, err := uc.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("UpdateAppointment: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to get service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	return svc, nil
}

func (uc *UseCase) checkConflicts(ctx context.Context, next *domain.Appointment) error {
	conflict, err := uc.detector.HasTimeConflict(ctx, next.Date, next.StartTime, next.EndTime, &next.ID)
	if err != nil {
		uc.logger.Error("UpdateAppointment: conflict check failed: %v", err)
		return fmt.Errorf("%w: conflict check failed: %w", ErrInternal, err)
	}
	if conflict {
		uc.logger.Warn("UpdateAppointment: time conflict for appointment id=%s", next.ID)
		uc.metrics.RecordAppointmentEvent(metrics.EventConflict)
		return ErrTimeConflict
	}

	duplicate, err := uc.detector.HasDuplicate(ctx, next.UserID, next.Date, next.StartTime, &next.ID)
	if err != nil {
		uc.logger.Error("UpdateAppointment: duplicate check failed: %v", err)
		return fmt.Errorf("%w: duplicate check failed: %w", ErrInternal, err)
	}
	if duplicate {
		uc.logger.Warn("UpdateAppointment: user=%s already has an appointment at this time", next.UserID)
		uc.metrics.RecordAppointmentEvent(metrics.EventConflict)
		return ErrDuplicate
	}

	return nil
}

// reconcileAvailability освобождает услугу, которую запись перестала занимать,
// и занимает ту, которую запись заняла
func (uc *UseCase) reconcileAvailability(ctx context.Context, ch *change) error {
	heldBefore := ch.before.Status == domain.StatusScheduled
	holdsNow := ch.after.Status == domain.StatusScheduled

	if heldBefore && (!holdsNow || ch.serviceChanged) {
		if err := uc.serviceRepo.SetAvailability(ctx, ch.before.ServiceID, true); err != nil {
			uc.logger.Error("UpdateAppointment: failed to release service id=%s: %v", ch.before.ServiceID, err)
			return fmt.Errorf("%w: failed to release service: %w", ErrInternal, err)
		}
	}

	if holdsNow && (!heldBefore || ch.serviceChanged) {
		if err := uc.serviceRepo.SetAvailability(ctx, ch.after.ServiceID, false); err != nil {
			uc.logger.Error("UpdateAppointment: failed to reserve service id=%s: %v", ch.after.ServiceID, err)
			return fmt.Errorf("%w: failed to reserve service: %w", ErrInternal, err)
		}
	}

	return nil
}

func (uc *UseCase) afterCommit(ctx context.Context, ch *change) {
	if uc.cache != nil && (ch.statusChanged || ch.timeChanged) {
		uc.invalidate(ctx, ch.before.Date)
		if !scheduling.SameDate(ch.before.Date, ch.after.Date) {
			uc.invalidate(ctx, ch.after.Date)
		}
	}

	var (
		event string
		typ   domain.NotificationType
	)
	switch {
	case ch.statusChanged && ch.after.Status == domain.StatusCancelled:
		event, typ = metrics.EventCancelled, domain.NotificationAppointmentCancelled
	case ch.statusChanged && ch.after.Status == domain.StatusCompleted:
		event, typ = metrics.EventCompleted, domain.NotificationAppointmentCompleted
	case ch.statusChanged:
		event, typ = metrics.EventReopened, domain.NotificationAppointmentCreated
	case ch.timeChanged:
		event, typ = metrics.EventRescheduled, domain.NotificationAppointmentCreated
	default:
		// изменились только заметки
		return
	}

	uc.metrics.RecordAppointmentEvent(event)
	if uc.emitter != nil {
		uc.emitter.AppointmentEvent(ctx, typ, ch.after.Snapshot())
	}
}

func (uc *UseCase) invalidate(ctx context.Context, date time.Time) {
	if err := uc.cache.Invalidate(ctx, date); err != nil {
		uc.logger.Warn("UpdateAppointment: failed to invalidate slots cache for %s: %v",
			date.Format(domain.DateFormat), err)
	}
}
