package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

var testDate = time.Date(2025, 9, 16, 0, 0, 0, 0, time.UTC)

func appointment(start, end string, status domain.AppointmentStatus) *domain.Appointment {
	a := &domain.Appointment{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		ServiceID: uuid.New(),
		Date:      testDate,
		StartTime: types.MustTimeString(start),
		Status:    status,
	}
	if end != "" {
		a.EndTime = ptr.Ptr(types.MustTimeString(end))
	}
	return a
}

func tsPtr(s string) *types.TimeString {
	return ptr.Ptr(types.MustTimeString(s))
}

func TestHasTimeConflict(t *testing.T) {
	existing := []*domain.Appointment{appointment("09:00", "09:30", domain.StatusScheduled)}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{name: "adjacent after", start: "09:30", end: "10:00", want: false},
		{name: "adjacent before", start: "08:30", end: "09:00", want: false},
		{name: "overlaps end of existing", start: "09:15", end: "09:45", want: true},
		{name: "overlaps start of existing", start: "08:45", end: "09:15", want: true},
		{name: "same interval", start: "09:00", end: "09:30", want: true},
		{name: "contains existing", start: "08:00", end: "10:00", want: true},
		{name: "inside existing", start: "09:10", end: "09:20", want: true},
		{name: "same start longer", start: "09:00", end: "11:00", want: true},
		{name: "far away", start: "14:00", end: "15:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasTimeConflict(existing, testDate, types.MustTimeString(tt.start), tsPtr(tt.end), nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasTimeConflict_Symmetric(t *testing.T) {
	pairs := [][4]string{
		{"09:00", "09:30", "09:30", "10:00"},
		{"09:00", "09:30", "09:15", "09:45"},
		{"10:00", "12:00", "10:30", "11:00"},
		{"08:00", "08:10", "13:00", "13:10"},
	}

	for _, p := range pairs {
		a := appointment(p[0], p[1], domain.StatusScheduled)
		b := appointment(p[2], p[3], domain.StatusScheduled)

		ab := HasTimeConflict([]*domain.Appointment{a}, testDate, b.StartTime, b.EndTime, nil)
		ba := HasTimeConflict([]*domain.Appointment{b}, testDate, a.StartTime, a.EndTime, nil)
		assert.Equal(t, ab, ba, "%v", p)
	}
}

func TestHasTimeConflict_IgnoredRows(t *testing.T) {
	cancelled := appointment("09:00", "09:30", domain.StatusCancelled)
	completed := appointment("09:00", "09:30", domain.StatusCompleted)
	openEnded := appointment("09:00", "", domain.StatusScheduled)
	otherDay := appointment("09:00", "09:30", domain.StatusScheduled)
	otherDay.Date = testDate.AddDate(0, 0, 1)

	existing := []*domain.Appointment{cancelled, completed, openEnded, otherDay}

	assert.False(t, HasTimeConflict(existing, testDate, types.MustTimeString("09:00"), tsPtr("09:30"), nil))
}

func TestHasTimeConflict_ExcludesSelf(t *testing.T) {
	self := appointment("09:00", "09:30", domain.StatusScheduled)
	existing := []*domain.Appointment{self}

	assert.True(t, HasTimeConflict(existing, testDate, types.MustTimeString("09:15"), tsPtr("09:45"), nil))
	assert.False(t, HasTimeConflict(existing, testDate, types.MustTimeString("09:15"), tsPtr("09:45"), &self.ID))
}

func TestHasTimeConflict_NoEndIsPermissive(t *testing.T) {
	existing := []*domain.Appointment{appointment("09:00", "09:30", domain.StatusScheduled)}
	assert.False(t, HasTimeConflict(existing, testDate, types.MustTimeString("09:00"), nil, nil))
}

func TestHasDuplicate(t *testing.T) {
	userID := uuid.New()

	scheduled := appointment("10:00", "10:30", domain.StatusScheduled)
	scheduled.UserID = userID

	t.Run("same user same slot different service", func(t *testing.T) {
		assert.True(t, HasDuplicate([]*domain.Appointment{scheduled}, userID, testDate, types.MustTimeString("10:00:00"), nil))
	})

	t.Run("completed still counts", func(t *testing.T) {
		completed := appointment("10:00", "10:30", domain.StatusCompleted)
		completed.UserID = userID
		assert.True(t, HasDuplicate([]*domain.Appointment{completed}, userID, testDate, types.MustTimeString("10:00"), nil))
	})

	t.Run("cancelled does not count", func(t *testing.T) {
		cancelled := appointment("10:00", "10:30", domain.StatusCancelled)
		cancelled.UserID = userID
		assert.False(t, HasDuplicate([]*domain.Appointment{cancelled}, userID, testDate, types.MustTimeString("10:00"), nil))
	})

	t.Run("other user", func(t *testing.T) {
		assert.False(t, HasDuplicate([]*domain.Appointment{scheduled}, uuid.New(), testDate, types.MustTimeString("10:00"), nil))
	})

	t.Run("overlap is not a duplicate", func(t *testing.T) {
		assert.False(t, HasDuplicate([]*domain.Appointment{scheduled}, userID, testDate, types.MustTimeString("10:15"), nil))
	})

	t.Run("excluded", func(t *testing.T) {
		assert.False(t, HasDuplicate([]*domain.Appointment{scheduled}, userID, testDate, types.MustTimeString("10:00"), &scheduled.ID))
	})
}

func TestOccupiedIntervals(t *testing.T) {
	existing := []*domain.Appointment{
		appointment("09:00", "09:30", domain.StatusScheduled),
		appointment("10:00", "", domain.StatusScheduled),
		appointment("11:00", "11:30", domain.StatusCancelled),
	}

	got := OccupiedIntervals(existing)
	assert.Len(t, got, 1)
	assert.Equal(t, types.TimeString("09:00:00"), got[0].Start)
}
