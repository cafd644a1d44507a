package catalog

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// validateService проверяет поля услуги перед записью
func validateService(svc *domain.Service) error {
	nameLen := utf8.RuneCountInString(svc.Name)
	if nameLen < domain.MinServiceNameLength || nameLen > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name must be %d..%d characters", ErrInvalidInput,
			domain.MinServiceNameLength, domain.MaxServiceNameLength)
	}

	descLen := utf8.RuneCountInString(svc.Description)
	if descLen < domain.MinServiceDescriptionLength || descLen > domain.MaxServiceDescriptionLength {
		return fmt.Errorf("%w: description must be %d..%d characters", ErrInvalidInput,
			domain.MinServiceDescriptionLength, domain.MaxServiceDescriptionLength)
	}

	if svc.DurationMinutes <= domain.MinServiceDurationExclusive {
		return fmt.Errorf("%w: duration must be greater than %d minutes", ErrInvalidInput,
			domain.MinServiceDurationExclusive)
	}

	if svc.Price < 0 || math.IsNaN(svc.Price) || math.IsInf(svc.Price, 0) {
		return fmt.Errorf("%w: price must be a non-negative number", ErrInvalidInput)
	}

	return nil
}

func normalize(svc *domain.Service) {
	svc.Name = strings.TrimSpace(svc.Name)
	svc.Description = strings.TrimSpace(svc.Description)
}
