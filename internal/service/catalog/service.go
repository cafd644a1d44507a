package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ClinicService/internal/service/catalog/models"
)

// Service сервис каталога услуг клиники
type Service struct {
	serviceRepo ServiceRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceResponse, error) {
	svc, err := s.get(ctx, id, "GetService")
	if err != nil {
		return nil, err
	}
	return models.FromDomainService(svc), nil
}

// List список услуг, опционально только доступные или недоступные
func (s *Service) List(ctx context.Context, available *bool) ([]models.ServiceResponse, error) {
	items, err := s.serviceRepo.List(ctx, domain.ServicesFilter{Available: available})
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainServices(items), nil
}

// Create добавляет услугу в каталог
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	svc := &domain.Service{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Available:       true,
	}
	if req.Available != nil {
		svc.Available = *req.Available
	}
	normalize(svc)

	s.logger.Info("CreateService: name=%q, duration=%d", svc.Name, svc.DurationMinutes)

	if err := validateService(svc); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	if err := s.ensureNameFree(ctx, svc.Name, nil, "CreateService"); err != nil {
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		return nil, s.mapWriteError(err, "CreateService")
	}

	s.logger.Info("CreateService: created service id=%s", created.ID)
	return models.FromDomainService(created), nil
}

// Update частично обновляет услугу
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: id=%s", id)

	var updated *domain.Service
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		svc, err := s.get(ctx, id, "UpdateService")
		if err != nil {
			return err
		}

		if req.Name != nil {
			svc.Name = *req.Name
		}
		if req.Description != nil {
			svc.Description = *req.Description
		}
		if req.DurationMinutes != nil {
			svc.DurationMinutes = *req.DurationMinutes
		}
		if req.Price != nil {
			svc.Price = *req.Price
		}
		if req.Available != nil {
			svc.Available = *req.Available
		}
		normalize(svc)

		if err := validateService(svc); err != nil {
			s.logger.Warn("UpdateService: validation failed for id=%s: %v", id, err)
			return err
		}

		if req.Name != nil {
			if err := s.ensureNameFree(ctx, svc.Name, &id, "UpdateService"); err != nil {
				return err
			}
		}

		updated, err = s.serviceRepo.Update(ctx, svc)
		if err != nil {
			return s.mapWriteError(err, "UpdateService")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainService(updated), nil
}

// SetAvailability включает или выключает запись на услугу
func (s *Service) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*models.ServiceResponse, error) {
	s.logger.Info("SetServiceAvailability: id=%s, available=%t", id, available)

	if err := s.serviceRepo.SetAvailability(ctx, id, available); err != nil {
		return nil, s.mapWriteError(err, "SetServiceAvailability")
	}

	return s.GetByID(ctx, id)
}

// Delete удаляет услугу, если на неё нет активных записей
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("DeleteService: id=%s", id)

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.get(ctx, id, "DeleteService"); err != nil {
			return err
		}

		busy, err := s.serviceRepo.HasScheduledAppointments(ctx, id)
		if err != nil {
			s.logger.Error("DeleteService: failed to check appointments for id=%s: %v", id, err)
			return fmt.Errorf("%w: DeleteService - check appointments: %w", ErrInternal, err)
		}
		if busy {
			s.logger.Warn("DeleteService: service id=%s has scheduled appointments", id)
			return ErrServiceInUse
		}

		if err := s.serviceRepo.Delete(ctx, id); err != nil {
			return s.mapWriteError(err, "DeleteService")
		}
		return nil
	})
}

func (s *Service) get(ctx context.Context, id uuid.UUID, op string) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%s not found", op, id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return svc, nil
}

func (s *Service) ensureNameFree(ctx context.Context, name string, excludeID *uuid.UUID, op string) error {
	taken, err := s.serviceRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		s.logger.Error("%s: failed to check name uniqueness: %v", op, err)
		return fmt.Errorf("%w: %s - check name: %w", ErrInternal, op, err)
	}
	if taken {
		s.logger.Warn("%s: name %q already taken", op, name)
		return ErrDuplicateName
	}
	return nil
}

func (s *Service) mapWriteError(err error, op string) error {
	switch {
	case errors.Is(err, serviceRepo.ErrServiceNotFound):
		return ErrServiceNotFound
	case errors.Is(err, serviceRepo.ErrDuplicateName):
		return ErrDuplicateName
	case errors.Is(err, serviceRepo.ErrInUse):
		return ErrServiceInUse
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
}
