package conflicts

import "github.com/m04kA/SMC-ClinicService/pkg/apperr"

var (
	// ErrInternal возвращается, когда не удалось прочитать записи
	ErrInternal = apperr.New(apperr.KindInternal, "conflicts: internal error")
)
