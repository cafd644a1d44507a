package catalog

import "github.com/m04kA/SMC-ClinicService/pkg/apperr"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = apperr.New(apperr.KindNotFound, "service not found")

	// ErrDuplicateName возвращается, когда услуга с таким названием уже есть
	ErrDuplicateName = apperr.New(apperr.KindConflict, "service with this name already exists")

	// ErrServiceInUse возвращается при удалении услуги, на которую есть записи
	ErrServiceInUse = apperr.New(apperr.KindConflict, "service has appointments")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = apperr.New(apperr.KindValidation, "invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = apperr.New(apperr.KindInternal, "catalog: internal error")
)
