package segfield

import "time"

func daysInMonth(y int, m time.Month) int {
	// Day 0 of next month is last day of this month.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysInMonth reports how many days month m (1-12) of year y has.
func DaysInMonth(month, year int) int {
	return daysInMonth(year, time.Month(clamp(month, 1, 12)))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func wrap(v, lo, hi int) int {
	n := hi - lo + 1
	v = (v - lo) % n
	if v < 0 {
		v += n
	}
	return lo + v
}

// expandYear maps a 2-digit year onto a full year using the POSIX %y pivot:
// 69-99 are 19xx, 00-68 are 20xx.
func expandYear(yy int) int {
	if yy >= 69 {
		return 1900 + yy
	}
	return 2000 + yy
}
