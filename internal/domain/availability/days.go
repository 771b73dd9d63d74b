package availability

// Fixed Monday-first ordering for weekly schedule rows. Unrecognized day
// names sort last.
var dayOrder = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
	"Sunday":    6,
}

func DayRank(day string) int {
	if r, ok := dayOrder[day]; ok {
		return r
	}
	return len(dayOrder)
}
