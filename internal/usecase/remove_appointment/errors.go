package remove_appointment

import "github.com/m04kA/SMC-ClinicService/pkg/apperr"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = apperr.New(apperr.KindNotFound, "appointment not found")

	// ErrAccessDenied возвращается, когда пользователь отменяет чужую запись
	ErrAccessDenied = apperr.New(apperr.KindForbidden, "access denied")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = apperr.New(apperr.KindConflict, "appointment is already cancelled")

	// ErrCannotCancel возвращается при отмене завершённого приёма
	ErrCannotCancel = apperr.New(apperr.KindConflict, "completed appointment cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = apperr.New(apperr.KindValidation, "invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = apperr.New(apperr.KindInternal, "remove_appointment: internal error")
)
