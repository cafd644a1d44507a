package create_appointment

import "github.com/m04kA/SMC-ClinicService/pkg/apperr"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = apperr.New(apperr.KindNotFound, "service not found")

	// ErrUserNotFound возвращается, когда пользователь не найден в UserService
	ErrUserNotFound = apperr.New(apperr.KindNotFound, "user not found")

	// ErrServiceUnavailable возвращается, когда запись на услугу сейчас закрыта
	ErrServiceUnavailable = apperr.New(apperr.KindUnavailable, "service is not available for booking")

	// ErrTimeConflict возвращается, когда интервал пересекается с другой записью
	ErrTimeConflict = apperr.New(apperr.KindConflict, "requested time overlaps an existing appointment")

	// ErrDuplicate возвращается, когда у пользователя уже есть запись на это время
	ErrDuplicate = apperr.New(apperr.KindConflict, "user already has an appointment at this time")

	// ErrAccessDenied возвращается при попытке записать другого пользователя без прав администратора
	ErrAccessDenied = apperr.New(apperr.KindForbidden, "access denied")

	// ErrInvalidDate возвращается, когда дата или время приёма уже прошли
	ErrInvalidDate = apperr.New(apperr.KindValidation, "appointment date is in the past")

	// ErrInvalidTimeRange возвращается, когда конец приёма не позже начала или выходит за сутки
	ErrInvalidTimeRange = apperr.New(apperr.KindValidation, "invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = apperr.New(apperr.KindValidation, "invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = apperr.New(apperr.KindInternal, "create_appointment: internal error")
)
