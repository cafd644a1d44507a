package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ClinicService/internal/service/catalog/models"
	"github.com/m04kA/SMC-ClinicService/pkg/apperr"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

type fakeRepo struct {
	items     map[uuid.UUID]*domain.Service
	scheduled map[uuid.UUID]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[uuid.UUID]*domain.Service), scheduled: make(map[uuid.UUID]bool)}
}

func (f *fakeRepo) Create(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	cp := *svc
	cp.ID = uuid.New()
	f.items[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	svc, ok := f.items[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	cp := *svc
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, filter domain.ServicesFilter) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0)
	for _, svc := range f.items {
		if filter.Available != nil && svc.Available != *filter.Available {
			continue
		}
		result = append(result, svc)
	}
	return result, nil
}

func (f *fakeRepo) Update(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	if _, ok := f.items[svc.ID]; !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	cp := *svc
	f.items[svc.ID] = &cp
	return &cp, nil
}

func (f *fakeRepo) SetAvailability(_ context.Context, id uuid.UUID, available bool) error {
	svc, ok := f.items[id]
	if !ok {
		return serviceRepo.ErrServiceNotFound
	}
	svc.Available = available
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return serviceRepo.ErrServiceNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) ExistsByName(_ context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	for id, svc := range f.items {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if strings.EqualFold(svc.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) HasScheduledAppointments(_ context.Context, id uuid.UUID) (bool, error) {
	return f.scheduled[id], nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func validRequest() *models.CreateServiceRequest {
	return &models.CreateServiceRequest{
		Name:            "Массаж спины",
		Description:     "Классический массаж спины",
		DurationMinutes: 30,
		Price:           1500,
	}
}

func TestCreate(t *testing.T) {
	svc := NewService(newFakeRepo(), passthroughTx{}, logger.NewNop())

	resp, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.True(t, resp.Available, "available by default")
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *models.CreateServiceRequest)
	}{
		{name: "short name", modify: func(r *models.CreateServiceRequest) { r.Name = "Мас" }},
		{name: "long name", modify: func(r *models.CreateServiceRequest) { r.Name = strings.Repeat("а", 51) }},
		{name: "short description", modify: func(r *models.CreateServiceRequest) { r.Description = "коротко" }},
		{name: "long description", modify: func(r *models.CreateServiceRequest) { r.Description = strings.Repeat("б", 201) }},
		{name: "duration of ten", modify: func(r *models.CreateServiceRequest) { r.DurationMinutes = 10 }},
		{name: "negative price", modify: func(r *models.CreateServiceRequest) { r.Price = -1 }},
	}

	svc := NewService(newFakeRepo(), passthroughTx{}, logger.NewNop())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.modify(req)

			_, err := svc.Create(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestCreate_BoundaryValues(t *testing.T) {
	svc := NewService(newFakeRepo(), passthroughTx{}, logger.NewNop())

	req := validRequest()
	req.Name = "Приём"
	req.DurationMinutes = 11
	req.Price = 0

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
}

func TestCreate_DuplicateNameIgnoresCase(t *testing.T) {
	svc := NewService(newFakeRepo(), passthroughTx{}, logger.NewNop())

	_, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	dup := validRequest()
	dup.Name = "МАССАЖ СПИНЫ"
	_, err = svc.Create(context.Background(), dup)
	require.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestUpdate_Partial(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, passthroughTx{}, logger.NewNop())

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	resp, err := svc.Update(context.Background(), created.ID, &models.UpdateServiceRequest{Price: ptr.Ptr(2000.0)})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, resp.Price)
	assert.Equal(t, created.Name, resp.Name)

	_, err = svc.Update(context.Background(), created.ID, &models.UpdateServiceRequest{Name: ptr.Ptr(created.Name)})
	require.NoError(t, err, "keeping own name is not a duplicate")

	_, err = svc.Update(context.Background(), created.ID, &models.UpdateServiceRequest{DurationMinutes: ptr.Ptr(5)})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), passthroughTx{}, logger.NewNop())

	_, err := svc.Update(context.Background(), uuid.New(), &models.UpdateServiceRequest{})
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestSetAvailabilityAndList(t *testing.T) {
	svc := NewService(newFakeRepo(), passthroughTx{}, logger.NewNop())

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	resp, err := svc.SetAvailability(context.Background(), created.ID, false)
	require.NoError(t, err)
	assert.False(t, resp.Available)

	available, err := svc.List(context.Background(), ptr.Ptr(true))
	require.NoError(t, err)
	assert.Empty(t, available)

	all, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, passthroughTx{}, logger.NewNop())

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	repo.scheduled[created.ID] = true
	err = svc.Delete(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrServiceInUse)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	repo.scheduled[created.ID] = false
	require.NoError(t, svc.Delete(context.Background(), created.ID))

	err = svc.Delete(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrServiceNotFound)
}
