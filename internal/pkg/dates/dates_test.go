package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	got, err := Parse("15-08-2026")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestParse_Rejects(t *testing.T) {
	for _, s := range []string{"2026-08-15", "15/08/2026", "32-01-2026", "", "15-13-2026"} {
		_, err := Parse(s)
		assert.ErrorIs(t, err, ErrBadFormat, s)
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	d := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "02-01-2026", Format(d))

	back, err := Parse(Format(d))
	assert.NoError(t, err)
	assert.True(t, back.Equal(d))
}

func TestToday_IsMidnightUTC(t *testing.T) {
	today := Today()
	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	assert.Equal(t, 0, today.Second())
	assert.Equal(t, time.UTC, today.Location())
}
