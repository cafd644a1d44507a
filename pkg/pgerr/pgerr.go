// Package pgerr классифицирует ошибки postgres, пришедшие через lib/pq.
package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды SQLSTATE, на которые реагирует сервис
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeCheckViolation       = "23514"
	CodeExclusionViolation   = "23P01"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// Code возвращает SQLSTATE ошибки или пустую строку, если это не ошибка postgres
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsConflict true для нарушений уникальности и exclusion-ограничений
func IsConflict(err error) bool {
	code := Code(err)
	return code == CodeUniqueViolation || code == CodeExclusionViolation
}

// IsForeignKeyViolation true, если строка ссылается на несуществующую запись
// или на неё ещё ссылаются другие строки
func IsForeignKeyViolation(err error) bool {
	return Code(err) == CodeForeignKeyViolation
}

// IsCheckViolation true при нарушении CHECK-ограничения
func IsCheckViolation(err error) bool {
	return Code(err) == CodeCheckViolation
}

// IsRetryable true для ошибок, после которых транзакцию можно повторить целиком
func IsRetryable(err error) bool {
	code := Code(err)
	return code == CodeSerializationFailure || code == CodeDeadlockDetected
}
