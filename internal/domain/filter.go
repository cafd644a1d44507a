package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Page параметры постраничной выборки (страницы с 1)
type Page struct {
	Number int
	Limit  int
}

// Normalize подставляет значения по умолчанию и ограничивает размер страницы
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Offset смещение для SQL
func (p Page) Offset() int {
	n := p.Normalize()
	return (n.Number - 1) * n.Limit
}

// Pagination метаданные страницы в ответе
type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// NewPagination считает метаданные по нормализованной странице и общему числу строк
func NewPagination(page Page, total int) Pagination {
	page = page.Normalize()
	totalPages := 0
	if total > 0 {
		totalPages = (total + page.Limit - 1) / page.Limit
	}
	return Pagination{
		Page:       page.Number,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// AppointmentsFilter фильтр записей
type AppointmentsFilter struct {
	UserID    *uuid.UUID
	ServiceID *uuid.UUID
	Date      *time.Time
	Statuses  []AppointmentStatus // пусто - любые статусы
	StartTime *types.TimeString   // точное совпадение времени начала
	ExcludeID *uuid.UUID
	Page      *Page // nil - без пагинации
}
