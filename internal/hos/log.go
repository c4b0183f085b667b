package hos

import (
	"sort"
	"time"

	"hosline/internal/domain"
)

// Log is a validated, start-ordered set of duty segments for one driver.
// The zero value is an empty log.
type Log struct {
	segs []domain.DutySegment
}

// NewLog validates segs and returns them as a start-ordered Log. The
// input slice is copied, never reordered in place.
func NewLog(segs []domain.DutySegment) (Log, error) {
	out := make([]domain.DutySegment, len(segs))
	for i, s := range segs {
		if !s.End.After(s.Start) {
			return Log{}, ValidationError{Index: i, SegmentID: s.ID, Start: s.Start, End: s.End}
		}
		out[i] = s
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return Log{segs: out}, nil
}

// Segments returns a copy of the ordered segments.
func (l Log) Segments() []domain.DutySegment {
	return append([]domain.DutySegment(nil), l.segs...)
}

func (l Log) Len() int { return len(l.segs) }

// Started keeps the segments that began strictly before t.
func (l Log) Started(t time.Time) Log {
	n := sort.Search(len(l.segs), func(i int) bool { return !l.segs[i].Start.Before(t) })
	return Log{segs: l.segs[:n:n]}
}

// merge returns a Log holding the segments of both logs.
func merge(a, b Log) Log {
	out := make([]domain.DutySegment, 0, len(a.segs)+len(b.segs))
	out = append(out, a.segs...)
	out = append(out, b.segs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return Log{segs: out}
}
