package remove_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-ClinicService/pkg/apperr"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

var testDate = time.Date(2025, 9, 16, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store   *usecasetest.Store
	emitter *usecasetest.Emitter
	cache   *usecasetest.Cache
	metrics *usecasetest.Metrics
	uc      *UseCase
}

func newFixture(model domain.ReservationModel) *fixture {
	f := &fixture{
		store:   usecasetest.NewStore(),
		emitter: &usecasetest.Emitter{},
		cache:   &usecasetest.Cache{},
		metrics: &usecasetest.Metrics{},
	}
	f.uc = NewUseCase(
		f.store.Appointments(),
		f.store.Services(),
		f.emitter,
		f.cache,
		f.metrics,
		&usecasetest.TxManager{Store: f.store},
		model,
		logger.NewNop(),
	)
	return f
}

func TestExecute_SoftCancel(t *testing.T) {
	f := newFixture(domain.ReservationSlot)
	svc := f.store.AddService("Консультация", 30, true)
	appt := f.store.AddAppointment(uuid.New(), svc.ID, testDate, "09:00", "09:30", domain.StatusScheduled)

	resp, err := f.uc.Execute(context.Background(), &Request{Caller: domain.Caller{UserID: appt.UserID}, AppointmentID: appt.ID})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, types.TimeString("09:00:00"), resp.StartTime)

	stored, ok := f.store.Appointment(appt.ID)
	require.True(t, ok, "row is kept")
	assert.Equal(t, domain.StatusCancelled, stored.Status)

	require.Len(t, f.emitter.Events, 1)
	event := f.emitter.Events[0]
	assert.Equal(t, domain.NotificationAppointmentCancelled, event.Type)
	assert.Equal(t, testDate, event.Appointment.Date)
	assert.Equal(t, types.TimeString("09:00:00"), event.Appointment.StartTime)

	assert.Equal(t, []time.Time{testDate}, f.cache.Invalidated)
	assert.Equal(t, []string{"cancelled"}, f.metrics.Events)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	f := newFixture(domain.ReservationSlot)
	svc := f.store.AddService("Консультация", 30, true)
	appt := f.store.AddAppointment(uuid.New(), svc.ID, testDate, "09:00", "09:30", domain.StatusScheduled)
	req := &Request{Caller: domain.Caller{UserID: appt.UserID}, AppointmentID: appt.ID}

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Len(t, f.emitter.Events, 1, "no second notification")
}

func TestExecute_CompletedCannotBeCancelled(t *testing.T) {
	f := newFixture(domain.ReservationSlot)
	svc := f.store.AddService("Консультация", 30, true)
	appt := f.store.AddAppointment(uuid.New(), svc.ID, testDate, "09:00", "09:30", domain.StatusCompleted)

	_, err := f.uc.Execute(context.Background(), &Request{Caller: domain.Caller{UserID: appt.UserID}, AppointmentID: appt.ID})
	require.ErrorIs(t, err, ErrCannotCancel)
}

func TestExecute_AccessAndNotFound(t *testing.T) {
	f := newFixture(domain.ReservationSlot)
	svc := f.store.AddService("Консультация", 30, true)
	appt := f.store.AddAppointment(uuid.New(), svc.ID, testDate, "09:00", "09:30", domain.StatusScheduled)

	_, err := f.uc.Execute(context.Background(), &Request{Caller: domain.Caller{UserID: uuid.New()}, AppointmentID: appt.ID})
	require.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.uc.Execute(context.Background(), &Request{Caller: domain.Caller{UserID: uuid.New()}, AppointmentID: uuid.New()})
	require.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = f.uc.Execute(context.Background(), &Request{Caller: domain.Caller{UserID: uuid.New(), IsAdmin: true}, AppointmentID: appt.ID})
	require.NoError(t, err)
}

func TestExecute_SingleResourceReleasesService(t *testing.T) {
	f := newFixture(domain.ReservationSingleResource)
	svc := f.store.AddService("Кабинет МРТ", 30, false)
	appt := f.store.AddAppointment(uuid.New(), svc.ID, testDate, "09:00", "09:30", domain.StatusScheduled)

	_, err := f.uc.Execute(context.Background(), &Request{Caller: domain.Caller{UserID: appt.UserID}, AppointmentID: appt.ID})
	require.NoError(t, err)

	stored, _ := f.store.Service(svc.ID)
	assert.True(t, stored.Available)
}
