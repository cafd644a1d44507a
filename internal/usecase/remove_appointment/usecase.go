package remove_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-ClinicService/pkg/metrics"
)

// UseCase use case удаления записи пользователем.
// Строка не удаляется: запись переводится в cancelled, история и уведомления сохраняются
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	emitter         NotificationEmitter
	cache           SlotCache
	metrics         MetricsRecorder
	txManager       TransactionManager
	model           domain.ReservationModel
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. emitter и cache могут быть nil
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
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
		emitter:         emitter,
		cache:           cache,
		metrics:         metrics,
		txManager:       txManager,
		model:           model,
		logger:          logger,
	}
}

// Execute отменяет запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RemoveAppointment: id=%s, caller=%s", req.AppointmentID, req.Caller.UserID)

	if req.AppointmentID == uuid.Nil {
		return nil, fmt.Errorf("%w: appointment id is required", ErrInvalidInput)
	}

	var snapshot domain.Appointment
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RemoveAppointment: appointment id=%s not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RemoveAppointment: failed to get appointment id=%s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		if !req.Caller.CanAccess(appt.UserID) {
			uc.logger.Warn("RemoveAppointment: access denied for user=%s to appointment id=%s", req.Caller.UserID, appt.ID)
			return ErrAccessDenied
		}

		switch {
		case appt.IsCancelled():
			return ErrAlreadyCancelled
		case !appt.Status.CanTransitionTo(domain.StatusCancelled):
			return ErrCannotCancel
		}

		// снимок до изменения: из него строится текст уведомления
		snapshot = appt.Snapshot()

		if err := uc.appointmentRepo.UpdateStatus(txCtx, appt.ID, domain.StatusCancelled); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RemoveAppointment: failed to cancel appointment id=%s: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to cancel appointment: %w", ErrInternal, err)
		}

		if uc.model == domain.ReservationSingleResource {
			if err := uc.serviceRepo.SetAvailability(txCtx, appt.ServiceID, true); err != nil {
				uc.logger.Error("RemoveAppointment: failed to release service id=%s: %v", appt.ServiceID, err)
				return fmt.Errorf("%w: failed to release service: %w", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RemoveAppointment: appointment id=%s cancelled", snapshot.ID)

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, snapshot.Date); err != nil {
			uc.logger.Warn("RemoveAppointment: failed to invalidate slots cache: %v", err)
		}
	}
	uc.metrics.RecordAppointmentEvent(metrics.EventCancelled)
	if uc.emitter != nil {
		uc.emitter.AppointmentEvent(ctx, domain.NotificationAppointmentCancelled, snapshot)
	}

	return &Response{
		ID:        snapshot.ID,
		UserID:    snapshot.UserID,
		ServiceID: snapshot.ServiceID,
		Date:      snapshot.Date,
		StartTime: snapshot.StartTime,
		EndTime:   snapshot.EndTime,
		Status:    string(domain.StatusCancelled),
	}, nil
}
