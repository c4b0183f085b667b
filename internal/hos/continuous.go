package hos

import (
	"time"

	"hosline/internal/domain"
)

// DrivingHoursSinceRest returns the driving time accumulated since the end
// of the last rest segment of at least 10 hours.
func (l Log) DrivingHoursSinceRest(now time.Time) float64 {
	return l.sinceRest(now, domain.DutyStatus.IsDriving).Hours()
}

// OnDutyHoursSinceRest is DrivingHoursSinceRest for every on-duty status.
func (l Log) OnDutyHoursSinceRest(now time.Time) float64 {
	return l.sinceRest(now, domain.DutyStatus.IsOnDuty).Hours()
}

func (l Log) sinceRest(now time.Time, match func(domain.DutyStatus) bool) time.Duration {
	var restEnd time.Time
	var acc time.Duration
	for _, s := range l.segs {
		if !s.Start.Before(now) {
			break
		}
		end := earlierOf(s.End, now)
		if s.Status.IsRest() && end.Sub(s.Start) >= MinRest {
			acc = 0
			restEnd = end
			continue
		}
		if !match(s.Status) {
			continue
		}
		from := s.Start
		if !restEnd.IsZero() {
			from = laterOf(from, restEnd)
		}
		acc += overlap(s.Start, s.End, from, now)
	}
	return acc
}

// BreakCompliant reports whether the 30-minute break rule holds at now: no
// driving in the streak still open at now may happen more than 8 hours
// after the later of the streak's start and the end of the last qualifying
// break. A qualifying break closes the streak and clears any lapse in it.
// Contiguous off-duty segments form one break span.
//
// prior is driving time assumed to precede the history when it shows no
// qualifying break at all; it moves the first streak start back by that
// much.
func (l Log) BreakCompliant(now time.Time, prior time.Duration) bool {
	var (
		streakStart  time.Time
		lastBreakEnd time.Time
		sawBreak     bool
		runStart     time.Time
		runEnd       time.Time
		inRun        bool
		lapsed       bool
	)
	for _, s := range l.segs {
		if !s.Start.Before(now) {
			break
		}
		end := earlierOf(s.End, now)
		if s.Status.IsOffDuty() {
			if inRun && !s.Start.After(runEnd) {
				runEnd = laterOf(runEnd, end)
			} else {
				runStart, runEnd, inRun = s.Start, end, true
			}
			if runEnd.Sub(runStart) >= MinBreak {
				lastBreakEnd = runEnd
				sawBreak = true
				streakStart = time.Time{}
				lapsed = false
			}
			continue
		}
		inRun = false
		if !s.Status.IsDriving() {
			continue
		}
		if streakStart.IsZero() {
			streakStart = s.Start
			if !sawBreak {
				streakStart = streakStart.Add(-prior)
			}
		}
		if end.Sub(laterOf(streakStart, lastBreakEnd)) > BreakAfter {
			lapsed = true
		}
	}
	return !lapsed
}
