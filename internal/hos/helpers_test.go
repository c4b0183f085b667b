package hos

import (
	"time"

	"hosline/internal/domain"
)

var base = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func seg(status domain.DutyStatus, start, end time.Time) domain.DutySegment {
	return domain.DutySegment{Start: start, End: end, Status: status}
}

func span(status domain.DutyStatus, start time.Time, d time.Duration) domain.DutySegment {
	return seg(status, start, start.Add(d))
}

func mustLog(segs ...domain.DutySegment) Log {
	l, err := NewLog(segs)
	if err != nil {
		panic(err)
	}
	return l
}

type step struct {
	status domain.DutyStatus
	d      time.Duration
}

// chain lays segments end to end starting at from.
func chain(from time.Time, steps ...step) []domain.DutySegment {
	out := make([]domain.DutySegment, 0, len(steps))
	for _, s := range steps {
		out = append(out, span(s.status, from, s.d))
		from = from.Add(s.d)
	}
	return out
}

func h(n float64) time.Duration { return time.Duration(n * float64(time.Hour)) }
