package services

import (
	"fmt"
	"time"

	"github.com/hrsuite/timetrack-api/internal/models"
)

// ParseClock parses a wall-clock "HH:MM" value. Nil or empty input is
// treated as absent and returns nil without error.
func ParseClock(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(models.ClockLayout, *value)
	if err != nil {
		return nil, validationErrorf("invalid time %q. Use HH:MM", *value)
	}
	return &t, nil
}

// ComputeDuration sums the elapsed time of the morning and afternoon clock
// pairs. A pair contributes only when both its in and out are present; a pair
// whose out precedes its in fails with ErrInvalidInterval. Inputs are
// wall-clock "HH:MM" values with no timezone involvement, so the result is
// deterministic.
func ComputeDuration(morningIn, morningOut, afternoonIn, afternoonOut *string) (time.Duration, error) {
	var total time.Duration
	for _, pair := range [][2]*string{{morningIn, morningOut}, {afternoonIn, afternoonOut}} {
		in, err := ParseClock(pair[0])
		if err != nil {
			return 0, err
		}
		out, err := ParseClock(pair[1])
		if err != nil {
			return 0, err
		}
		if in == nil || out == nil {
			continue
		}
		if out.Before(*in) {
			return 0, fmt.Errorf("%w: %s before %s", ErrInvalidInterval, *pair[1], *pair[0])
		}
		total += out.Sub(*in)
	}
	return total, nil
}

// FormatDuration renders a duration as "H:MM", flooring to whole minutes.
// A zero duration renders as "0:00".
func FormatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
