package scheduling

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

func TestComputeEndTime(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		duration int
		want     string
		wantErr  error
	}{
		{name: "half hour", start: "09:00:00", duration: 30, want: "09:30:00"},
		{name: "keeps seconds", start: "09:00:15", duration: 45, want: "09:45:15"},
		{name: "crosses hour", start: "10:50:00", duration: 25, want: "11:15:00"},
		{name: "zero duration", start: "12:00:00", duration: 0, want: "12:00:00"},
		{name: "negative duration", start: "12:00:00", duration: -5, wantErr: ErrNegativeDuration},
		{name: "past midnight", start: "23:40:00", duration: 30, wantErr: ErrEndBeyondDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeEndTime(types.MustTimeString(tt.start), tt.duration)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, types.TimeString(tt.want), got)
		})
	}
}

func TestComputeEndTime_StrictlyAfterStartForPositiveDuration(t *testing.T) {
	for start := range EnumerateSlots(types.MustTimeString("00:00:00"), types.MustTimeString("22:00:00"), 17) {
		for _, duration := range []int{1, 11, 30, 45, 90, 120} {
			end, err := ComputeEndTime(start, duration)
			require.NoError(t, err)
			assert.True(t, end.IsAfter(start), "%s + %d", start, duration)
		}
	}
}

func TestEnumerateSlots(t *testing.T) {
	got := slices.Collect(EnumerateSlots(
		types.MustTimeString("09:00"),
		types.MustTimeString("11:00"),
		30,
	))

	assert.Equal(t, []types.TimeString{"09:00:00", "09:30:00", "10:00:00", "10:30:00"}, got)
}

func TestEnumerateSlots_IsRestartable(t *testing.T) {
	seq := EnumerateSlots(types.MustTimeString("05:00"), types.MustTimeString("23:00"), 30)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	assert.Len(t, first, 36)
	assert.Equal(t, first, second)
}

func TestEnumerateSlots_StopsEarly(t *testing.T) {
	count := 0
	for range EnumerateSlots(types.MustTimeString("05:00"), types.MustTimeString("23:00"), 30) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestEnumerateSlots_InvalidStep(t *testing.T) {
	got := slices.Collect(EnumerateSlots(types.MustTimeString("05:00"), types.MustTimeString("23:00"), 0))
	assert.Empty(t, got)
}

func TestEnumerateSlots_NearMidnight(t *testing.T) {
	got := slices.Collect(EnumerateSlots(types.MustTimeString("23:00"), types.MustTimeString("23:59:59"), 45))
	assert.Equal(t, []types.TimeString{"23:00:00", "23:45:00"}, got)
}
