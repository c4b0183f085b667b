package hos

import (
	"fmt"
	"time"

	"hosline/internal/domain"
)

// CheckCompliance runs every rule at now and returns the resulting report.
// All four checks run; violations accumulate rather than short-circuit.
func CheckCompliance(segs []domain.DutySegment, now time.Time, opts Options) (domain.ComplianceReport, error) {
	l, err := NewLog(segs)
	if err != nil {
		return domain.ComplianceReport{}, err
	}
	return l.Check(now, opts), nil
}

// Check is CheckCompliance over an already validated Log.
func (l Log) Check(now time.Time, opts Options) domain.ComplianceReport {
	window, maxHours := opts.Cycle.Window(), opts.Cycle.MaxHours()
	anchor, restarted := l.LastRestart(now, opts.location())
	if !restarted {
		anchor = time.Time{}
	}
	used := l.HoursUsed(now, window, anchor, opts.OtherEmployerMinutes)
	driving := l.DrivingHoursSinceRest(now)
	onDuty := l.OnDutyHoursSinceRest(now)

	report := domain.ComplianceReport{
		Violations: []domain.Violation{},
		Metrics: domain.Metrics{
			HoursUsed:    used,
			DrivingHours: driving,
			OnDutyHours:  onDuty,
			WindowHours:  window.Hours(),
			MaxHours:     maxHours,
		},
	}
	if restarted {
		report.Metrics.LastRestart = &anchor
	}

	if used > maxHours {
		report.Violations = append(report.Violations, weeklyViolation(used, opts.Cycle))
	}
	if driving > MaxDrivingHours {
		report.Violations = append(report.Violations, overViolation(domain.DrivingCap,
			fmt.Sprintf("%.2f driving hours since last 10-hour rest, limit %.0f", driving, MaxDrivingHours),
			driving-MaxDrivingHours))
	}
	if onDuty > MaxOnDutyHours {
		report.Violations = append(report.Violations, overViolation(domain.OnDutyCap,
			fmt.Sprintf("%.2f on-duty hours since last 10-hour rest, limit %.0f", onDuty, MaxOnDutyHours),
			onDuty-MaxOnDutyHours))
	}
	if !l.BreakCompliant(now, opts.PriorDrivingSinceBreak) {
		report.Violations = append(report.Violations, domain.Violation{
			Type:     domain.BreakRequired,
			Severity: domain.SeverityFor(domain.BreakRequired),
			Message:  "driving more than 8 hours without a 30-minute break",
		})
	}
	report.Compliant = len(report.Violations) == 0
	return report
}

func weeklyViolation(used float64, c Cycle) domain.Violation {
	return overViolation(domain.WeeklyHourCap,
		fmt.Sprintf("%.2f on-duty hours in the last %s, limit %.0f", used, c.dayLabel(), c.MaxHours()),
		used-c.MaxHours())
}

func overViolation(t domain.ViolationType, msg string, over float64) domain.Violation {
	return domain.Violation{
		Type:      t,
		Severity:  domain.SeverityFor(t),
		Message:   msg,
		HoursOver: &over,
	}
}

func (c Cycle) dayLabel() string {
	if c == Cycle70x8 {
		return "8 days"
	}
	return "7 days"
}
