package notifications

import "github.com/m04kA/SMC-ClinicService/pkg/apperr"

var (
	// ErrNotificationNotFound возвращается, когда уведомление не найдено
	ErrNotificationNotFound = apperr.New(apperr.KindNotFound, "notification not found")

	// ErrAccessDenied возвращается, когда пользователь обращается к чужим уведомлениям
	ErrAccessDenied = apperr.New(apperr.KindForbidden, "access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = apperr.New(apperr.KindValidation, "invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = apperr.New(apperr.KindInternal, "notifications: internal error")
)
