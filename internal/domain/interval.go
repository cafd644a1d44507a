package domain

import "github.com/m04kA/SMC-ClinicService/pkg/types"

// Interval полуоткрытый интервал времени суток [Start, End)
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid true, если начало строго раньше конца
func (i Interval) IsValid() bool {
	return i.Start.IsBefore(i.End)
}

// Overlaps true, если интервалы имеют общий момент.
// Интервалы, которые только касаются границей (a.End == b.Start), не пересекаются
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.IsBefore(other.End) && other.Start.IsBefore(i.End)
}
