package events

import (
	"context"
	"log/slog"
	"time"

	"hosline/internal/domain"
)

// Writer records evaluation events as structured log records.
type Writer struct {
	Logger *slog.Logger
	Now    func() time.Time
}

type EventPayload map[string]any

func (w Writer) Append(ctx context.Context, evtType, driverID string, payload EventPayload) {
	if w.Logger == nil {
		w.Logger = slog.Default()
	}
	if w.Now == nil {
		w.Now = time.Now
	}
	attrs := []slog.Attr{
		slog.String("type", evtType),
		slog.String("ts", w.Now().UTC().Format(time.RFC3339)),
	}
	if driverID != "" {
		attrs = append(attrs, slog.String("driver_id", driverID))
	}
	for k, v := range payload {
		attrs = append(attrs, slog.Any(k, v))
	}
	w.Logger.LogAttrs(ctx, slog.LevelInfo, "event", attrs...)
}

// Compliance records the outcome of a point-in-time check.
func (w Writer) Compliance(ctx context.Context, driverID string, at time.Time, r domain.ComplianceReport) {
	types := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		types = append(types, string(v.Type))
	}
	w.Append(ctx, "compliance.checked", driverID, EventPayload{
		"at":         at.UTC().Format(time.RFC3339),
		"compliant":  r.Compliant,
		"violations": types,
		"hours_used": r.Metrics.HoursUsed,
	})
}

// Projection records the outcome of a violation projection.
func (w Writer) Projection(ctx context.Context, driverID string, start time.Time, p domain.Projection) {
	payload := EventPayload{"start": start.UTC().Format(time.RFC3339)}
	if p.ViolationTime != nil && p.Violation != nil {
		payload["violation_time"] = p.ViolationTime.UTC().Format(time.RFC3339)
		payload["violation"] = string(p.Violation.Type)
	}
	w.Append(ctx, "violation.projected", driverID, payload)
}

// Availability records the hours remaining at a point in time.
func (w Writer) Availability(ctx context.Context, driverID string, at time.Time, a domain.Availability) {
	w.Append(ctx, "availability.computed", driverID, EventPayload{
		"at":              at.UTC().Format(time.RFC3339),
		"weekly_left":     a.WeeklyHoursRemaining,
		"driving_left":    a.DrivingHoursRemaining,
		"on_duty_left":    a.OnDutyHoursRemaining,
		"break_due_soon":  a.BreakDueSoon,
		"restart_advised": a.RestartAdvised,
	})
}
