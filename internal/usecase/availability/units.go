package availability

import "time"

// NoticeDuration converts a min-notice setting to a duration. All units
// collapse to hours for the comparison, per the booking window rules.
func NoticeDuration(amount int, unit string) time.Duration {
	if amount <= 0 {
		return 0
	}
	switch unit {
	case "minutes":
		return time.Duration(amount) * time.Minute
	case "days":
		return time.Duration(amount) * 24 * time.Hour
	default: // hours
		return time.Duration(amount) * time.Hour
	}
}

// AdvanceDays converts a max-advance setting to whole days. Months count as
// 30-day multiples; hours round up to at least one day.
func AdvanceDays(amount int, unit string) int {
	if amount <= 0 {
		return 30
	}
	switch unit {
	case "hours":
		return (amount + 23) / 24
	case "weeks":
		return amount * 7
	case "months":
		return amount * 30
	default: // days
		return amount
	}
}

func ValidUnit(unit string, allowed ...string) bool {
	for _, a := range allowed {
		if unit == a {
			return true
		}
	}
	return false
}
