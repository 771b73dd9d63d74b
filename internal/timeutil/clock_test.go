package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHHMM(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare hh:mm", "09:00", "09:00"},
		{"with seconds", "09:00:00", "09:00"},
		{"with offset", "09:00:00+00:00", "09:00"},
		{"offset no seconds", "09:00+00:00", "09:00"},
		{"offset with space", "09:00 +00:00", "09:00"},
		{"full timestamp", "2025-03-10 14:30:00", "14:30"},
		{"short input kept as-is", "9:00", "9:00"},
		{"empty", "", ""},
		{"whitespace padding", "  10:15  ", "10:15"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeHHMM(tc.in))
		})
	}
}

func TestNormalizeHHMMIdempotent(t *testing.T) {
	inputs := []string{"09:00", "09:00:00+00:00", "2025-03-10 14:30:00", "9:0", ""}
	for _, in := range inputs {
		once := NormalizeHHMM(in)
		assert.Equal(t, once, NormalizeHHMM(once), "input %q", in)
	}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("14:30:00+00:00")
	require.NoError(t, err)
	assert.Equal(t, "14:30", c.String())
	assert.Equal(t, ClockTime(14*60+30), c)

	_, err = ParseClock("not a time")
	assert.Error(t, err)
}

func TestClockTimeCompareAndAdd(t *testing.T) {
	a, err := ParseClock("09:00")
	require.NoError(t, err)
	b, err := ParseClock("10:30")
	require.NoError(t, err)

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.Equal(t, b, a.Add(90*time.Minute))

	// wraps around midnight
	late, err := ParseClock("23:30")
	require.NoError(t, err)
	assert.Equal(t, "00:30", late.Add(time.Hour).String())
}

func TestClockTimeOn(t *testing.T) {
	c, err := ParseClock("10:00")
	require.NoError(t, err)

	date := time.Date(2025, 3, 10, 17, 45, 12, 0, time.UTC)
	anchored := c.On(date)
	assert.Equal(t, time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), anchored)
}

func TestToUTC(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	got, err := ToUTC("09:00", date, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "09:00", got)

	// fixed -03:00 offset, 09:00 local is 12:00 UTC
	loc := time.FixedZone("UTC-3", -3*60*60)
	got, err = ToUTC("09:00", date, loc)
	require.NoError(t, err)
	assert.Equal(t, "12:00", got)

	_, err = ToUTC("garbage", date, time.UTC)
	assert.Error(t, err)
}
