// Package apperr описывает ошибки приложения, размеченные по видам.
//
// Каждый пакет объявляет свои sentinel-ошибки через New, оборачивает их
// через fmt.Errorf("%w: ...") и отдаёт наверх. HTTP-слой выбирает код ответа
// по Kind, а не по тексту ошибки.
package apperr

import "errors"

// Kind вид ошибки
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnavailable
	KindConflict
	KindForbidden
	KindUnauthorized
)

// String возвращает машинное имя вида
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal_error"
	}
}

// Error размеченная ошибка
type Error struct {
	Kind    Kind
	Message string
}

// New создает sentinel-ошибку заданного вида
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf возвращает вид первой размеченной ошибки в цепочке.
// Неразмеченные ошибки считаются внутренними
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is проверяет, что ошибка в цепочке имеет вид kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
