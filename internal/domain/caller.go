package domain

import "github.com/google/uuid"

// Caller аутентифицированный пользователь, выполняющий операцию
type Caller struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// CanAccess true, если вызывающий - владелец ресурса или администратор
func (c Caller) CanAccess(ownerID uuid.UUID) bool {
	return c.IsAdmin || c.UserID == ownerID
}
