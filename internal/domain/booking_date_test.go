package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCafeGateway/pkg/types"
)

func TestParseBookingDate(t *testing.T) {
	ict := time.FixedZone("ICT", 7*3600)
	start := types.MustTimeString("09:00")

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "2026-10-20", want: "2026-10-20T02:00:00Z"},
		{raw: " 2026-10-20 ", want: "2026-10-20T02:00:00Z"},
		{raw: "2026-10-20T15:30:00+07:00", want: "2026-10-20T08:30:00Z"},
		{raw: "2026-10-20T03:00:00.000Z", want: "2026-10-20T03:00:00Z"},
		{raw: "2026-10-20T08:00:00", want: "2026-10-20T01:00:00Z"},
		{raw: "2026-10-20T08:00", want: "2026-10-20T01:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseBookingDate(tt.raw, start, ict)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.UTC().Format(time.RFC3339))
		})
	}
}

func TestParseBookingDate_Rejects(t *testing.T) {
	start := types.MustTimeString("09:00")

	for _, raw := range []string{"", "tomorrow", "2026-10-20junk", "2026-10-20 09:00", "2026-10-20T09:00:00+07", "2026-10-20Tnoon"} {
		_, err := ParseBookingDate(raw, start, time.UTC)
		assert.ErrorIs(t, err, ErrInvalidBookingDate, raw)
	}
}
