package update_appointment

import "github.com/m04kA/SMC-ClinicService/pkg/apperr"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = apperr.New(apperr.KindNotFound, "appointment not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = apperr.New(apperr.KindNotFound, "service not found")

	// ErrServiceUnavailable возвращается, когда запись на услугу сейчас закрыта
	ErrServiceUnavailable = apperr.New(apperr.KindUnavailable, "service is not available for booking")

	// ErrAccessDenied возвращается, когда пользователь меняет чужую запись
	ErrAccessDenied = apperr.New(apperr.KindForbidden, "access denied")

	// ErrTimeConflict возвращается, когда новый интервал пересекается с другой записью
	ErrTimeConflict = apperr.New(apperr.KindConflict, "requested time overlaps an existing appointment")

	// ErrDuplicate возвращается, когда у пользователя уже есть запись на это время
	ErrDuplicate = apperr.New(apperr.KindConflict, "user already has an appointment at this time")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = apperr.New(apperr.KindConflict, "appointment is already cancelled")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = apperr.New(apperr.KindConflict, "status transition is not allowed")

	// ErrNotRescheduled возвращается при попытке перенести отменённую или завершённую запись без её переоткрытия
	ErrNotRescheduled = apperr.New(apperr.KindConflict, "only scheduled appointments can be rescheduled")

	// ErrInvalidDate возвращается, когда новая дата или время приёма уже прошли
	ErrInvalidDate = apperr.New(apperr.KindValidation, "appointment date is in the past")

	// ErrInvalidTimeRange возвращается, когда конец приёма не позже начала или выходит за сутки
	ErrInvalidTimeRange = apperr.New(apperr.KindValidation, "invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = apperr.New(apperr.KindValidation, "invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = apperr.New(apperr.KindInternal, "update_appointment: internal error")
)
