package hos

import "time"

// windowStart is now-window, moved forward to anchor when a restart
// anchor exists inside the window.
func windowStart(now time.Time, window time.Duration, anchor time.Time) time.Time {
	start := now.Add(-window)
	if !anchor.IsZero() && anchor.Before(now) && anchor.After(start) {
		return anchor
	}
	return start
}

// MinutesUsed sums the on-duty minutes inside the trailing window ending at
// now. A non-zero anchor (the end of the last restart) clips the window.
// Off-duty segments never count.
func (l Log) MinutesUsed(now time.Time, window time.Duration, anchor time.Time) int {
	from := windowStart(now, window, anchor)
	total := 0
	for _, s := range l.segs {
		if !s.Start.Before(now) {
			break
		}
		if !s.Status.IsOnDuty() {
			continue
		}
		total += OverlapMinutes(s.Start, s.End, from, now)
	}
	return total
}

// HoursUsed is MinutesUsed plus attested other-employer minutes, in hours.
// The result is not rounded.
func (l Log) HoursUsed(now time.Time, window time.Duration, anchor time.Time, otherEmployerMinutes int) float64 {
	return float64(l.MinutesUsed(now, window, anchor)+otherEmployerMinutes) / 60
}
