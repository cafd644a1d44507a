package remove_appointment

import (
	"context"

	removeAppointment "github.com/m04kA/SMC-ClinicService/internal/usecase/remove_appointment"
)

type RemoveAppointmentUseCase interface {
	Execute(ctx context.Context, req *removeAppointment.Request) (*removeAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
