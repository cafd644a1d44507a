package list_appointments

import (
	"fmt"
	"net/url"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/service/appointments/models"
)

// ToServiceRequest разбирает query параметры административной выборки
func ToServiceRequest(query url.Values, page, limit int) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{
		Status: handlers.OptionalString(query.Get("status")),
		Page:   page,
		Limit:  limit,
	}

	if raw := query.Get("userId"); raw != "" {
		userID, err := handlers.ParseUUID(raw)
		if err != nil {
			return nil, fmt.Errorf("userId: %w", err)
		}
		req.UserID = &userID
	}

	if raw := query.Get("date"); raw != "" {
		date, err := handlers.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		req.Date = &date
	}

	return req, nil
}
