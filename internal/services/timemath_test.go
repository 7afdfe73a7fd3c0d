package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestComputeDuration_FullDay(t *testing.T) {
	total, err := ComputeDuration(strPtr("09:00"), strPtr("12:00"), strPtr("13:00"), strPtr("17:30"))
	assert.NoError(t, err)
	assert.Equal(t, 7*time.Hour+30*time.Minute, total)
}

func TestComputeDuration_PairsAreIndependent(t *testing.T) {
	// Morning-only and afternoon-only inputs covering the same interval
	// must produce the same total.
	morningOnly, err := ComputeDuration(strPtr("09:00"), strPtr("12:00"), nil, nil)
	assert.NoError(t, err)

	afternoonOnly, err := ComputeDuration(nil, nil, strPtr("09:00"), strPtr("12:00"))
	assert.NoError(t, err)

	assert.Equal(t, morningOnly, afternoonOnly)
	assert.Equal(t, 3*time.Hour, morningOnly)
}

func TestComputeDuration_IncompletePairContributesNothing(t *testing.T) {
	tests := []struct {
		name       string
		in, out    *string
		wantsHours time.Duration
	}{
		{"in without out", strPtr("09:00"), nil, 0},
		{"out without in", nil, strPtr("12:00"), 0},
		{"both absent", nil, nil, 0},
		{"empty strings", strPtr(""), strPtr(""), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := ComputeDuration(tt.in, tt.out, nil, nil)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantsHours, total)
		})
	}
}

func TestComputeDuration_OutBeforeIn(t *testing.T) {
	_, err := ComputeDuration(strPtr("12:00"), strPtr("09:00"), nil, nil)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInterval)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestComputeDuration_EqualInAndOut(t *testing.T) {
	// Zero-length interval is allowed, it just adds nothing.
	total, err := ComputeDuration(strPtr("09:00"), strPtr("09:00"), nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, time.Duration(0), total)
}

func TestParseClock_InvalidFormat(t *testing.T) {
	for _, bad := range []string{"9am", "25:00", "09:60", "0900"} {
		_, err := ParseClock(strPtr(bad))
		assert.Error(t, err, bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
		assert.Contains(t, err.Error(), "Use HH:MM")
	}
}

func TestParseClock_AbsentValues(t *testing.T) {
	parsed, err := ParseClock(nil)
	assert.NoError(t, err)
	assert.Nil(t, parsed)

	parsed, err = ParseClock(strPtr(""))
	assert.NoError(t, err)
	assert.Nil(t, parsed)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{30 * time.Minute, "0:30"},
		{8 * time.Hour, "8:00"},
		{7*time.Hour + 5*time.Minute, "7:05"},
		// Seconds floor away, never round up.
		{7*time.Hour + 59*time.Minute + 59*time.Second, "7:59"},
		{26 * time.Hour, "26:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.d))
	}
}
