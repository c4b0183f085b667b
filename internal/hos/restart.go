package hos

import (
	"time"

	"hosline/internal/domain"
)

// LastRestart finds the most recent completed rest that qualifies as a
// 34-hour restart and returns its end. Rests are scanned by end time,
// newest first, and the first qualifying one wins even if an older one is
// longer. loc is the timezone the 1am-5am windows are read in; nil is UTC.
func (l Log) LastRestart(now time.Time, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	var best *domain.DutySegment
	for i := range l.segs {
		s := &l.segs[i]
		if !s.Status.IsRest() || s.End.After(now) {
			continue
		}
		if best != nil && !s.End.After(best.End) {
			continue
		}
		if IsRestart(*s, loc) {
			best = s
		}
	}
	if best == nil {
		return time.Time{}, false
	}
	return best.End, true
}

// IsRestart reports whether a single rest segment qualifies as a restart:
// at least 34 hours long and fully containing the 1am-5am window of two
// distinct local calendar days.
func IsRestart(s domain.DutySegment, loc *time.Location) bool {
	if !s.Status.IsRest() || s.Duration() < RestartDuration {
		return false
	}
	return nightWindows(s.Start, s.End, loc) >= RestartNights
}

// nightWindows counts the local 1am-5am windows lying fully inside
// [start, end).
func nightWindows(start, end time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	ls := start.In(loc)
	day := time.Date(ls.Year(), ls.Month(), ls.Day(), 0, 0, 0, 0, loc)
	count := 0
	for !day.After(end) {
		from := time.Date(day.Year(), day.Month(), day.Day(), RestartNightStart, 0, 0, 0, loc)
		to := time.Date(day.Year(), day.Month(), day.Day(), RestartNightEnd, 0, 0, 0, loc)
		if !from.Before(start) && !to.After(end) {
			count++
		}
		day = time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, loc)
	}
	return count
}
