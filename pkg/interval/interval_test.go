package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawcare/PetCare-BookingService/pkg/types"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name      string
		aStart    types.TimeString
		aDuration int
		bStart    types.TimeString
		bDuration int
		want      bool
	}{
		{name: "identical intervals", aStart: "10:00", aDuration: 60, bStart: "10:00", bDuration: 60, want: true},
		{name: "partial overlap", aStart: "10:00", aDuration: 60, bStart: "10:30", bDuration: 60, want: true},
		{name: "contained", aStart: "10:00", aDuration: 120, bStart: "10:30", bDuration: 30, want: true},
		{name: "back to back is not overlap", aStart: "10:00", aDuration: 60, bStart: "11:00", bDuration: 60, want: false},
		{name: "reverse back to back", aStart: "11:00", aDuration: 60, bStart: "10:00", bDuration: 60, want: false},
		{name: "disjoint", aStart: "09:00", aDuration: 30, bStart: "15:00", bDuration: 30, want: false},
		{name: "one minute of overlap", aStart: "10:00", aDuration: 61, bStart: "11:00", bDuration: 30, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Overlaps(tt.aStart, tt.aDuration, tt.bStart, tt.bDuration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// overlap is symmetric
			reversed, err := Overlaps(tt.bStart, tt.bDuration, tt.aStart, tt.aDuration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, reversed)
		})
	}
}

func TestOverlaps_CrossesMidnight(t *testing.T) {
	_, err := Overlaps("23:30", 60, "10:00", 30)
	assert.Error(t, err)
}

func TestWithinWindow(t *testing.T) {
	tests := []struct {
		name     string
		start    types.TimeString
		duration int
		open     types.TimeString
		close    types.TimeString
		want     bool
	}{
		{name: "fits inside", start: "10:00", duration: 60, open: "09:00", close: "18:00", want: true},
		{name: "fills window exactly", start: "09:00", duration: 540, open: "09:00", close: "18:00", want: true},
		{name: "ends exactly at close", start: "17:00", duration: 60, open: "09:00", close: "18:00", want: true},
		{name: "starts before open", start: "08:30", duration: 60, open: "09:00", close: "18:00", want: false},
		{name: "ends after close", start: "17:30", duration: 60, open: "09:00", close: "18:00", want: false},
		{name: "crosses midnight", start: "23:30", duration: 60, open: "09:00", close: "24:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WithinWindow(tt.start, tt.duration, tt.open, tt.close)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnumerateSlots(t *testing.T) {
	slots, err := EnumerateSlots("09:00", "11:00", 60, 30)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00"}, slots)
}

func TestEnumerateSlots_DurationLongerThanWindow(t *testing.T) {
	slots, err := EnumerateSlots("09:00", "10:00", 120, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestEnumerateSlots_LastSlotEndsAtClose(t *testing.T) {
	slots, err := EnumerateSlots("09:00", "10:00", 30, 30)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, slots)
}

func TestEnumerateSlots_InvalidStep(t *testing.T) {
	slots, err := EnumerateSlots("09:00", "18:00", 0, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)

	slots, err = EnumerateSlots("09:00", "18:00", 30, 0)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
