package hos

import (
	"fmt"
	"time"

	"hosline/internal/domain"
)

// ProjectOptions configures ProjectViolation.
type ProjectOptions struct {
	Options
	// Limit restricts the projection to one violation type; empty means any.
	Limit domain.ViolationType
	// Horizon caps how far past the start instant the plan is simulated;
	// zero means the whole plan.
	Horizon time.Duration
}

// ProjectViolation simulates the planned segments on top of the existing
// history, minute by minute from start, and returns the first instant a
// rule is broken. The reported instant is the moment the limit is reached:
// the start of the first minute whose completion leaves the driver in
// violation.
//
// The simulation costs planned minutes times segments. When only the
// weekly cap is asked for and the data allows it, a rolling-sum path with
// the same result is used instead.
func ProjectViolation(existing, planned []domain.DutySegment, start time.Time, opts ProjectOptions) (domain.Projection, error) {
	if opts.Limit != "" && !opts.Limit.IsValid() {
		return domain.Projection{}, fmt.Errorf("invalid limit type %q", opts.Limit)
	}
	hist, err := NewLog(existing)
	if err != nil {
		return domain.Projection{}, fmt.Errorf("existing segments: %w", err)
	}
	plan, err := NewLog(planned)
	if err != nil {
		return domain.Projection{}, fmt.Errorf("planned segments: %w", err)
	}
	all := merge(hist, plan)
	if opts.Limit == domain.WeeklyHourCap && weeklyFastPathOK(all, plan, start) {
		return projectWeekly(all, plan, start, opts), nil
	}
	return projectGeneral(all, plan, start, opts), nil
}

// steps returns the range of step instants [from, to) for one planned
// segment.
func (o ProjectOptions) steps(p domain.DutySegment, start time.Time) (time.Time, time.Time) {
	from := laterOf(p.Start, start)
	to := p.End
	if o.Horizon > 0 {
		to = earlierOf(to, start.Add(o.Horizon))
	}
	return from, to
}

func projectGeneral(all, plan Log, start time.Time, opts ProjectOptions) domain.Projection {
	for _, p := range plan.segs {
		from, to := opts.steps(p, start)
		for t := from; t.Before(to); t = t.Add(time.Minute) {
			at := earlierOf(t.Add(time.Minute), p.End)
			report := all.Started(at).Check(at, opts.Options)
			for _, v := range report.Violations {
				if opts.Limit != "" && v.Type != opts.Limit {
					continue
				}
				when, found := t, v
				return domain.Projection{ViolationTime: &when, Violation: &found}
			}
		}
	}
	return domain.Projection{}
}

// weeklyFastPathOK holds when the rolling sum can be kept one minute at a
// time with exactly the general path's arithmetic: every boundary sits on
// a whole minute, on-duty time never overlaps itself, planned segments do
// not overlap, and no rest that could become a restart ends after start.
func weeklyFastPathOK(all, plan Log, start time.Time) bool {
	if !onMinute(start) {
		return false
	}
	var lastOnDutyEnd time.Time
	for _, s := range all.segs {
		if !onMinute(s.Start) || !onMinute(s.End) {
			return false
		}
		if s.Status.IsRest() && s.Duration() >= RestartDuration && s.End.After(start) {
			return false
		}
		if s.Status.IsOnDuty() {
			if s.Start.Before(lastOnDutyEnd) {
				return false
			}
			lastOnDutyEnd = s.End
		}
	}
	for i := 1; i < len(plan.segs); i++ {
		if plan.segs[i].Start.Before(plan.segs[i-1].End) {
			return false
		}
	}
	return true
}

func onMinute(t time.Time) bool { return t.Equal(t.Truncate(time.Minute)) }

// projectWeekly keeps the window's on-duty minute total current as the
// evaluation instant advances: each step adds the minute entering the
// window and drops the minute leaving it.
func projectWeekly(all, plan Log, start time.Time, opts ProjectOptions) domain.Projection {
	window := opts.Cycle.Window()
	anchor, ok := all.LastRestart(start, opts.location())
	if !ok {
		anchor = time.Time{}
	}
	var onDuty []domain.DutySegment
	for _, s := range all.segs {
		if s.Status.IsOnDuty() {
			onDuty = append(onDuty, s)
		}
	}
	in := coverCursor{segs: onDuty}
	out := coverCursor{segs: onDuty}

	var (
		cur   time.Time // evaluation instant the total belongs to
		total int
	)
	for _, p := range plan.segs {
		from, to := opts.steps(p, start)
		for t := from; t.Before(to); t = t.Add(time.Minute) {
			at := t.Add(time.Minute)
			if cur.IsZero() {
				cur, total = at, all.MinutesUsed(at, window, anchor)
			}
			for cur.Before(at) {
				if in.covered(cur) {
					total++
				}
				leaving := cur.Add(-window)
				if (anchor.IsZero() || !leaving.Before(anchor)) && out.covered(leaving) {
					total--
				}
				cur = cur.Add(time.Minute)
			}
			used := float64(total+opts.OtherEmployerMinutes) / 60
			if used > opts.Cycle.MaxHours() {
				when, v := t, weeklyViolation(used, opts.Cycle)
				return domain.Projection{ViolationTime: &when, Violation: &v}
			}
		}
	}
	return domain.Projection{}
}

// coverCursor answers "is the minute starting at m on duty" for
// non-decreasing m over start-ordered, non-overlapping segments.
type coverCursor struct {
	segs []domain.DutySegment
	i    int
}

func (c *coverCursor) covered(m time.Time) bool {
	for c.i < len(c.segs) && !c.segs[c.i].End.After(m) {
		c.i++
	}
	return c.i < len(c.segs) && !c.segs[c.i].Start.After(m)
}
