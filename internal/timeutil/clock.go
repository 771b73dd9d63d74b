package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// ClockTime is a time of day expressed as minutes since midnight UTC.
// Booking slots and schedule blocks are compared through this type instead
// of raw strings, so offset suffixes and second fields can never leak into
// a comparison.
type ClockTime int

func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", NormalizeHHMM(s))
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

func FromTime(t time.Time) ClockTime {
	u := t.UTC()
	return ClockTime(u.Hour()*60 + u.Minute())
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c ClockTime) Before(o ClockTime) bool { return c < o }

func (c ClockTime) Add(d time.Duration) ClockTime {
	return ClockTime((int(c) + int(d.Minutes())) % (24 * 60))
}

// On anchors the clock time onto a calendar date in UTC.
func (c ClockTime) On(date time.Time) time.Time {
	d := date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), int(c)/60, int(c)%60, 0, 0, time.UTC)
}

// NormalizeHHMM reduces any stored time representation to its "HH:MM"
// prefix: a space-separated date portion and a "+"-suffixed offset are
// stripped first. Inputs shorter than five characters are returned as-is;
// they simply never match a real slot.
func NormalizeHHMM(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexByte(s, '+'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if i := strings.LastIndexByte(s, ' '); i >= 0 {
		s = s[i+1:]
	}
	if len(s) < 5 {
		return s
	}
	return s[:5]
}

// ToUTC converts a wall-clock HH:MM in the given location, on the given
// date, to the equivalent HH:MM in UTC.
func ToUTC(hhmm string, date time.Time, loc *time.Location) (string, error) {
	t, err := time.Parse("15:04", NormalizeHHMM(hhmm))
	if err != nil {
		return "", fmt.Errorf("invalid clock time %q: %w", hhmm, err)
	}
	local := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	return local.UTC().Format("15:04"), nil
}
