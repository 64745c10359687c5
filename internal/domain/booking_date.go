package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-PetCafeGateway/pkg/types"
)

// ErrInvalidBookingDate stored booking date is neither a date nor a supported timestamp
var ErrInvalidBookingDate = errors.New("invalid booking date")

// timestamp layouts without a zone, read in the cafe location
var localTimestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseBookingDate reads a booking_date/selectedDate value as the client stored it.
// A plain date gets the slot start time. A timestamp with an offset is taken as is,
// one without an offset is read in loc. Anything else is an error.
func ParseBookingDate(raw string, start types.TimeString, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if loc == nil {
		loc = time.UTC
	}

	if !strings.Contains(raw, "T") {
		date, err := types.ParseDate(raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBookingDate, raw)
		}
		return date.At(start, loc), nil
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	for _, layout := range localTimestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBookingDate, raw)
}
