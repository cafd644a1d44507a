package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

func interval(start, end string) domain.Interval {
	return domain.Interval{Start: types.MustTimeString(start), End: types.MustTimeString(end)}
}

func TestFreeSlots_EmptyDay(t *testing.T) {
	slots := FreeSlots(WorkingDay(), domain.SlotStepMinutes, 30, nil)

	assert.Len(t, slots, 36)
	assert.Equal(t, interval("05:00", "05:30"), slots[0])
	assert.Equal(t, interval("22:30", "23:00"), slots[len(slots)-1])

	for i := 1; i < len(slots); i++ {
		assert.False(t, slots[i-1].Overlaps(slots[i]))
		assert.True(t, slots[i-1].Start.IsBefore(slots[i].Start))
	}
}

func TestFreeSlots_NeverPastWorkingDayEnd(t *testing.T) {
	for _, duration := range []int{11, 30, 45, 60, 95, 240} {
		for _, slot := range FreeSlots(WorkingDay(), domain.SlotStepMinutes, duration, nil) {
			assert.False(t, slot.End.IsAfter(domain.WorkDayEnd), "duration=%d slot=%v", duration, slot)
		}
	}

	slots := FreeSlots(WorkingDay(), domain.SlotStepMinutes, 45, nil)
	assert.Equal(t, interval("22:00", "22:45"), slots[len(slots)-1])
}

func TestFreeSlots_SkipsOccupied(t *testing.T) {
	occupied := []domain.Interval{interval("09:00", "09:30"), interval("10:15", "10:45")}

	slots := FreeSlots(interval("08:30", "11:30"), 30, 30, occupied)

	assert.Equal(t, []domain.Interval{
		interval("08:30", "09:00"),
		interval("09:30", "10:00"),
		interval("11:00", "11:30"),
	}, slots)
}

func TestFreeSlots_DegenerateInput(t *testing.T) {
	assert.Empty(t, FreeSlots(WorkingDay(), 30, 0, nil))
	assert.Empty(t, FreeSlots(interval("10:00", "09:00"), 30, 30, nil))
	assert.Empty(t, FreeSlots(interval("09:00", "09:20"), 30, 30, nil))
}
