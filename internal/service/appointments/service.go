package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-ClinicService/internal/service/appointments/models"
	"github.com/m04kA/SMC-ClinicService/pkg/metrics"
)

// Service сервис чтения записей и административного удаления
type Service struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	cache           SlotCache
	metrics         MetricsRecorder
	txManager       TransactionManager
	model           domain.ReservationModel
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей.
// cache может быть nil, если кэширование выключено
func NewService(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	cache SlotCache,
	metrics MetricsRecorder,
	txManager TransactionManager,
	model domain.ReservationModel,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		cache:           cache,
		metrics:         metrics,
		txManager:       txManager,
		model:           model,
		logger:          logger,
	}
}

// GetByID получает запись по ID.
// Пользователь видит только свою запись, администратор любую
func (s *Service) GetByID(ctx context.Context, caller domain.Caller, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s", id, caller.UserID)

	appt, err := s.get(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if !caller.CanAccess(appt.UserID) {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", caller.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// ListByUser история записей пользователя, опционально по статусу
func (s *Service) ListByUser(ctx context.Context, caller domain.Caller, req *models.ListUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByUser: fetching appointments for user=%s, status=%v", req.UserID, req.Status)

	if !caller.CanAccess(req.UserID) {
		s.logger.Warn("ListByUser: access denied for user=%s to appointments of user=%s", caller.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	filter := domain.AppointmentsFilter{UserID: &req.UserID}
	if err := applyStatus(&filter, req.Status); err != nil {
		s.logger.Warn("ListByUser: invalid status=%s", *req.Status)
		return nil, err
	}

	return s.list(ctx, filter, req.Page, req.Limit, "ListByUser")
}

// List административная выборка записей по статусу, дате и пользователю
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListAppointments: status=%v, date=%v, user=%v", req.Status, req.Date, req.UserID)

	filter := domain.AppointmentsFilter{
		UserID: req.UserID,
		Date:   req.Date,
	}
	if err := applyStatus(&filter, req.Status); err != nil {
		s.logger.Warn("ListAppointments: invalid status=%s", *req.Status)
		return nil, err
	}

	return s.list(ctx, filter, req.Page, req.Limit, "ListAppointments")
}

// Delete безвозвратно удаляет запись (административная очистка).
// В модели singleResource удаление scheduled записи освобождает услугу
// в той же транзакции
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("DeleteAppointment: id=%s", id)

	var deleted domain.Appointment
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := s.get(txCtx, id, "DeleteAppointment")
		if err != nil {
			return err
		}

		if err := s.appointmentRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("DeleteAppointment: repository error for id=%s: %v", id, err)
			return fmt.Errorf("%w: DeleteAppointment - repository error: %w", ErrInternal, err)
		}

		if s.model == domain.ReservationSingleResource && appt.IsScheduled() {
			if err := s.serviceRepo.SetAvailability(txCtx, appt.ServiceID, true); err != nil {
				s.logger.Error("DeleteAppointment: failed to release service id=%s: %v", appt.ServiceID, err)
				return fmt.Errorf("%w: DeleteAppointment - release service: %w", ErrInternal, err)
			}
		}

		deleted = appt.Snapshot()
		return nil
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, deleted.Date); err != nil {
			s.logger.Warn("DeleteAppointment: failed to invalidate slots cache for %s: %v",
				deleted.Date.Format(domain.DateFormat), err)
		}
	}
	s.metrics.RecordAppointmentEvent(metrics.EventDeleted)

	s.logger.Info("DeleteAppointment: appointment id=%s deleted", id)
	return nil
}

func (s *Service) get(ctx context.Context, id uuid.UUID, op string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return appt, nil
}

func (s *Service) list(ctx context.Context, filter domain.AppointmentsFilter, page, limit int, op string) (*models.AppointmentListResponse, error) {
	p := domain.Page{Number: page, Limit: limit}.Normalize()
	filter.Page = &p

	var (
		items []*domain.Appointment
		total int
	)
	// страница и счётчик из одного снимка
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		items, err = s.appointmentRepo.List(txCtx, filter)
		if err != nil {
			s.logger.Error("%s: repository error: %v", op, err)
			return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
		}

		total, err = s.appointmentRepo.Count(txCtx, filter)
		if err != nil {
			s.logger.Error("%s: count error: %v", op, err)
			return fmt.Errorf("%w: %s - count error: %w", ErrInternal, op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: found %d of %d appointments", op, len(items), total)
	return models.FromDomainAppointmentList(items, domain.NewPagination(p, total)), nil
}

func applyStatus(filter *domain.AppointmentsFilter, status *string) error {
	if status == nil || *status == "" {
		return nil
	}
	st, err := models.ToDomainStatus(*status)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	filter.Statuses = []domain.AppointmentStatus{st}
	return nil
}
