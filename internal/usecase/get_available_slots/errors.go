package get_available_slots

import "github.com/m04kA/SMC-ClinicService/pkg/apperr"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = apperr.New(apperr.KindNotFound, "service not found")

	// ErrServiceUnavailable возвращается, когда услуга недоступна для записи
	ErrServiceUnavailable = apperr.New(apperr.KindUnavailable, "service is not available")

	// ErrInvalidDate возвращается, когда дата уже прошла
	ErrInvalidDate = apperr.New(apperr.KindValidation, "date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = apperr.New(apperr.KindValidation, "invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = apperr.New(apperr.KindInternal, "get_available_slots: internal error")
)
