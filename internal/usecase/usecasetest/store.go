// Package usecasetest содержит in-memory хранилище и записывающие заглушки
// для тестов сценариев записи на приём.
package usecasetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Store записи и услуги в памяти. Повторяет фильтрацию репозиториев postgres
type Store struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*domain.Appointment
	services     map[uuid.UUID]*domain.Service

	// CreateErr возвращается из Create, если задана
	CreateErr error
	// AvailabilityCalls история SetAvailability
	AvailabilityCalls []AvailabilityCall
}

// AvailabilityCall один вызов SetAvailability
type AvailabilityCall struct {
	ServiceID uuid.UUID
	Available bool
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		appointments: make(map[uuid.UUID]*domain.Appointment),
		services:     make(map[uuid.UUID]*domain.Service),
	}
}

// AddService добавляет услугу и возвращает её
func (s *Store) AddService(name string, duration int, available bool) *domain.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc := &domain.Service{
		ID:              uuid.New(),
		Name:            name,
		Description:     name + " description",
		DurationMinutes: duration,
		Price:           1000,
		Available:       available,
	}
	s.services[svc.ID] = svc
	cp := *svc
	return &cp
}

// AddAppointment добавляет запись как есть
func (s *Store) AddAppointment(userID, serviceID uuid.UUID, date time.Time, start, end string, status domain.AppointmentStatus) *domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	endTime := types.MustTimeString(end)
	appt := &domain.Appointment{
		ID:        uuid.New(),
		UserID:    userID,
		ServiceID: serviceID,
		Date:      date,
		StartTime: types.MustTimeString(start),
		EndTime:   &endTime,
		Status:    status,
	}
	s.appointments[appt.ID] = appt
	snap := appt.Snapshot()
	return &snap
}

// Appointment текущее состояние записи
func (s *Store) Appointment(id uuid.UUID) (domain.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.appointments[id]
	if !ok {
		return domain.Appointment{}, false
	}
	return appt.Snapshot(), true
}

// Service текущее состояние услуги
func (s *Store) Service(id uuid.UUID) (domain.Service, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[id]
	if !ok {
		return domain.Service{}, false
	}
	return *svc, true
}

// AppointmentCount количество записей
func (s *Store) AppointmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

// Appointments возвращает представление хранилища как репозитория записей
func (s *Store) Appointments() *AppointmentRepo {
	return &AppointmentRepo{s: s}
}

// Services возвращает представление хранилища как репозитория услуг
func (s *Store) Services() *ServiceRepo {
	return &ServiceRepo{s: s}
}

// AppointmentRepo репозиторий записей поверх Store
type AppointmentRepo struct {
	s *Store
}

func (r *AppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.CreateErr != nil {
		return nil, r.s.CreateErr
	}
	if _, ok := r.s.services[appt.ServiceID]; !ok {
		return nil, appointmentRepo.ErrServiceReference
	}

	stored := appt.Snapshot()
	stored.ID = uuid.New()
	if stored.Status == "" {
		stored.Status = domain.StatusScheduled
	}
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.s.appointments[stored.ID] = &stored

	result := stored.Snapshot()
	return &result, nil
}

func (r *AppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	appt, ok := r.s.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	result := appt.Snapshot()
	return &result, nil
}

func (r *AppointmentRepo) List(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Appointment, 0)
	for _, appt := range r.s.appointments {
		if !matches(appt, filter) {
			continue
		}
		snap := appt.Snapshot()
		result = append(result, &snap)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})
	return result, nil
}

func (r *AppointmentRepo) Update(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[appt.ID]; !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	stored := appt.Snapshot()
	stored.UpdatedAt = time.Now()
	r.s.appointments[appt.ID] = &stored

	result := stored.Snapshot()
	return &result, nil
}

func (r *AppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	appt, ok := r.s.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	return nil
}

// ServiceRepo репозиторий услуг поверх Store
type ServiceRepo struct {
	s *Store
}

func (r *ServiceRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	svc, ok := r.s.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	cp := *svc
	return &cp, nil
}

func (r *ServiceRepo) SetAvailability(_ context.Context, id uuid.UUID, available bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	svc, ok := r.s.services[id]
	if !ok {
		return serviceRepo.ErrServiceNotFound
	}
	svc.Available = available
	r.s.AvailabilityCalls = append(r.s.AvailabilityCalls, AvailabilityCall{ServiceID: id, Available: available})
	return nil
}

func matches(appt *domain.Appointment, filter domain.AppointmentsFilter) bool {
	if filter.UserID != nil && appt.UserID != *filter.UserID {
		return false
	}
	if filter.ServiceID != nil && appt.ServiceID != *filter.ServiceID {
		return false
	}
	if filter.Date != nil && appt.Date.Format(domain.DateFormat) != filter.Date.Format(domain.DateFormat) {
		return false
	}
	if len(filter.Statuses) > 0 {
		found := false
		for _, st := range filter.Statuses {
			if appt.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.StartTime != nil && !appt.StartTime.Equal(*filter.StartTime) {
		return false
	}
	if filter.ExcludeID != nil && appt.ID == *filter.ExcludeID {
		return false
	}
	return true
}

type storeSnapshot struct {
	appointments map[uuid.UUID]domain.Appointment
	services     map[uuid.UUID]domain.Service
}

func (s *Store) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := storeSnapshot{
		appointments: make(map[uuid.UUID]domain.Appointment, len(s.appointments)),
		services:     make(map[uuid.UUID]domain.Service, len(s.services)),
	}
	for id, a := range s.appointments {
		snap.appointments[id] = a.Snapshot()
	}
	for id, svc := range s.services {
		snap.services[id] = *svc
	}
	return snap
}

func (s *Store) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appointments = make(map[uuid.UUID]*domain.Appointment, len(snap.appointments))
	for id, a := range snap.appointments {
		s.appointments[id] = &a
	}
	s.services = make(map[uuid.UUID]*domain.Service, len(snap.services))
	for id, svc := range snap.services {
		s.services[id] = &svc
	}
}
