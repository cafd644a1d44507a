package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Caller    domain.Caller     // Кто выполняет запрос
	UserID    uuid.UUID         // Для кого создается запись (администратор может указать другого)
	ServiceID uuid.UUID         // ID услуги
	Date      time.Time         // Дата приёма (без времени)
	StartTime types.TimeString  // Время начала
	EndTime   *types.TimeString // Явное время окончания (опционально)
	Notes     *string           // Заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time
	StartTime types.TimeString
	EndTime   *types.TimeString
	Status    string
	Notes     *string

	// Денормализованные данные услуги
	ServiceName string
	Price       float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
