// Package hos evaluates Hours-of-Service rules over an in-memory set of
// duty segments and an explicit evaluation instant.
//
// Every function is pure: nothing reads the wall clock, nothing mutates the
// caller's segments, and nothing is shared between calls, so drivers can be
// evaluated concurrently without coordination.
package hos

import (
	"fmt"
	"time"
)

const (
	MaxDrivingHours   = 11.0
	MaxOnDutyHours    = 14.0
	MinRest           = 10 * time.Hour
	BreakAfter        = 8 * time.Hour
	MinBreak          = 30 * time.Minute
	RestartDuration   = 34 * time.Hour
	RestartNightStart = 1 // local hour
	RestartNightEnd   = 5
	RestartNights     = 2
)

// Cycle selects the rolling window and its cap.
type Cycle int

const (
	Cycle60x7 Cycle = iota
	Cycle70x8
)

func (c Cycle) Window() time.Duration {
	if c == Cycle70x8 {
		return 192 * time.Hour
	}
	return 168 * time.Hour
}

func (c Cycle) MaxHours() float64 {
	if c == Cycle70x8 {
		return 70
	}
	return 60
}

func (c Cycle) String() string {
	if c == Cycle70x8 {
		return "70/8"
	}
	return "60/7"
}

// ParseCycle accepts "60/7" or "70/8"; empty means 60/7.
func ParseCycle(s string) (Cycle, error) {
	switch s {
	case "", "60/7", "60":
		return Cycle60x7, nil
	case "70/8", "70":
		return Cycle70x8, nil
	}
	return Cycle60x7, fmt.Errorf("invalid cycle %q (want 60/7 or 70/8)", s)
}

// Options configures a point-in-time evaluation.
type Options struct {
	Cycle Cycle
	// Location is the driver's operating timezone for the 1am-5am restart
	// windows. Nil means UTC.
	Location *time.Location
	// OtherEmployerMinutes is attested on-duty time for another employer,
	// added on top of the rolling-window sum.
	OtherEmployerMinutes int
	// PriorDrivingSinceBreak is driving time assumed to precede the history
	// when no qualifying break is visible in it.
	PriorDrivingSinceBreak time.Duration
}

// Use70HourRule reports whether the 70h/8-day cycle is selected.
func (o Options) Use70HourRule() bool { return o.Cycle == Cycle70x8 }

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}
