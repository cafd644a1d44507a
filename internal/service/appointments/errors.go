package appointments

import "github.com/m04kA/SMC-ClinicService/pkg/apperr"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = apperr.New(apperr.KindNotFound, "appointment not found")

	// ErrAccessDenied возвращается, когда пользователь обращается к чужой записи
	ErrAccessDenied = apperr.New(apperr.KindForbidden, "access denied")

	// ErrInvalidInput возвращается при некорректных параметрах фильтра
	ErrInvalidInput = apperr.New(apperr.KindValidation, "invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = apperr.New(apperr.KindInternal, "appointments: internal error")
)
