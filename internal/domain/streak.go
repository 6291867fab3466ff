package domain

import "time"

// AdvanceStreak computes the streak value a log on `today` produces, given the
// streak and last log date from the previously persisted state. A second log
// on the same day leaves the streak alone, a log on the day after the last one
// extends it, anything else (including a user with no prior log) starts over
// at 1. Comparisons are on UTC calendar dates.
func AdvanceStreak(prev int, lastLog, today time.Time) int {
	if lastLog.IsZero() {
		return 1
	}

	last := DateOf(lastLog)
	day := DateOf(today)

	switch {
	case last.Equal(day):
		return prev
	case last.Equal(day.AddDate(0, 0, -1)):
		return prev + 1
	default:
		return 1
	}
}
