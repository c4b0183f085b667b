package hos

import (
	"fmt"
	"math"
	"time"

	"hosline/internal/domain"
)

// BreakDueWithin is how close to the driving cap BreakDueSoon turns on.
const BreakDueWithin = 1.0

// Available reports the hours left before each cap at now, plus advisory
// recommendations. The recommendations are hints, not rulings; the embedded
// report is the authoritative result.
func Available(segs []domain.DutySegment, now time.Time, opts Options) (domain.Availability, error) {
	l, err := NewLog(segs)
	if err != nil {
		return domain.Availability{}, err
	}
	report := l.Check(now, opts)
	m := report.Metrics
	a := domain.Availability{
		WeeklyHoursRemaining:  math.Max(0, m.MaxHours-m.HoursUsed),
		DrivingHoursRemaining: math.Max(0, MaxDrivingHours-m.DrivingHours),
		OnDutyHoursRemaining:  math.Max(0, MaxOnDutyHours-m.OnDutyHours),
		Report:                report,
	}
	a.BreakDueSoon = a.DrivingHoursRemaining <= BreakDueWithin
	a.RestartAdvised = a.WeeklyHoursRemaining < MaxDrivingHours
	a.Recommendations = recommend(a)
	return a, nil
}

func recommend(a domain.Availability) []string {
	recs := []string{}
	for _, v := range a.Report.Violations {
		switch v.Type {
		case domain.WeeklyHourCap:
			recs = append(recs, "Stop on-duty work; take a 34-hour restart covering two 1am-5am periods to reset the cycle.")
		case domain.DrivingCap, domain.OnDutyCap:
			recs = append(recs, "Stop driving and take at least 10 consecutive hours off duty.")
		case domain.BreakRequired:
			recs = append(recs, "Take a 30-minute off-duty break before driving again.")
		}
	}
	if len(recs) > 0 {
		return recs
	}
	if a.BreakDueSoon {
		recs = append(recs, fmt.Sprintf("Driving limit is close: %.1f hours of driving left before a 10-hour rest is required.", a.DrivingHoursRemaining))
	}
	if a.RestartAdvised {
		recs = append(recs, fmt.Sprintf("Only %.1f cycle hours left; plan a 34-hour restart.", a.WeeklyHoursRemaining))
	}
	if a.OnDutyHoursRemaining < a.DrivingHoursRemaining {
		recs = append(recs, fmt.Sprintf("The on-duty window ends first: %.1f hours left.", a.OnDutyHoursRemaining))
	}
	return recs
}
