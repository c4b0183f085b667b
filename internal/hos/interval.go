package hos

import "time"

// overlap returns the exact overlap of the half-open intervals
// [aStart, aEnd) and [bStart, bEnd), or 0 if they are disjoint.
func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// OverlapMinutes returns the whole minutes two half-open intervals share.
func OverlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int {
	return int(overlap(aStart, aEnd, bStart, bEnd) / time.Minute)
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
