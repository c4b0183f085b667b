package domain

import (
	"strings"
	"time"
)

// DutyStatus is the closed set of duty statuses a driver can be in.
type DutyStatus string

const (
	OffDuty            DutyStatus = "off_duty"
	SleeperBerth       DutyStatus = "sleeper_berth"
	Driving            DutyStatus = "driving"
	OnDutyNotDriving   DutyStatus = "on_duty"
	PersonalConveyance DutyStatus = "personal_conveyance"
	YardMove           DutyStatus = "yard_move"
)

var statusSynonyms = map[string]DutyStatus{
	"OFF":                 OffDuty,
	"OFF_DUTY":            OffDuty,
	"OFFDUTY":             OffDuty,
	"SB":                  SleeperBerth,
	"SLEEPER":             SleeperBerth,
	"SLEEPER_BERTH":       SleeperBerth,
	"SLEEPERBERTH":        SleeperBerth,
	"D":                   Driving,
	"DR":                  Driving,
	"DRIVE":               Driving,
	"DRIVING":             Driving,
	"ON":                  OnDutyNotDriving,
	"ON_DUTY":             OnDutyNotDriving,
	"ONDUTY":              OnDutyNotDriving,
	"ODND":                OnDutyNotDriving,
	"ON_DUTY_NOT_DRIVING": OnDutyNotDriving,
	"PC":                  PersonalConveyance,
	"PERSONAL":            PersonalConveyance,
	"PERSONAL_CONVEYANCE": PersonalConveyance,
	"YM":                  YardMove,
	"YARD":                YardMove,
	"YARD_MOVE":           YardMove,
}

// ParseDutyStatus maps a raw status string onto a DutyStatus.
// Unrecognized values map to OnDutyNotDriving, which counts against every cap.
func ParseDutyStatus(s string) DutyStatus {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if st, ok := statusSynonyms[key]; ok {
		return st
	}
	return OnDutyNotDriving
}

// UnmarshalText lets yaml and json decoders parse statuses at the boundary.
func (s *DutyStatus) UnmarshalText(text []byte) error {
	*s = ParseDutyStatus(string(text))
	return nil
}

func (s DutyStatus) String() string { return string(s) }

// IsValid reports whether s is one of the six canonical statuses.
func (s DutyStatus) IsValid() bool {
	switch s {
	case OffDuty, SleeperBerth, Driving, OnDutyNotDriving, PersonalConveyance, YardMove:
		return true
	}
	return false
}

func (s DutyStatus) IsDriving() bool { return s == Driving }

func (s DutyStatus) IsOnDuty() bool {
	return s == Driving || s == OnDutyNotDriving || s == YardMove
}

func (s DutyStatus) IsOffDuty() bool {
	return s == OffDuty || s == SleeperBerth || s == PersonalConveyance
}

// IsRest is stricter than IsOffDuty: personal conveyance is not rest.
func (s DutyStatus) IsRest() bool {
	return s == OffDuty || s == SleeperBerth
}

// DutySegment is one contiguous span of a single duty status.
type DutySegment struct {
	ID       string     `json:"id,omitempty" yaml:"id,omitempty"`
	DriverID string     `json:"driver_id,omitempty" yaml:"driverId,omitempty"`
	Start    time.Time  `json:"start_utc" yaml:"startUtc"`
	End      time.Time  `json:"end_utc" yaml:"endUtc"`
	Status   DutyStatus `json:"status" yaml:"status"`
	Notes    string     `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (s DutySegment) Duration() time.Duration { return s.End.Sub(s.Start) }

type ViolationType string

const (
	WeeklyHourCap ViolationType = "weekly_hour_cap"
	DrivingCap    ViolationType = "driving_cap"
	OnDutyCap     ViolationType = "on_duty_cap"
	BreakRequired ViolationType = "break_required"
)

func (t ViolationType) IsValid() bool {
	switch t {
	case WeeklyHourCap, DrivingCap, OnDutyCap, BreakRequired:
		return true
	}
	return false
}

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// SeverityFor returns the fixed severity of a violation type.
func SeverityFor(t ViolationType) Severity {
	switch t {
	case WeeklyHourCap, DrivingCap:
		return SeverityCritical
	case OnDutyCap, BreakRequired:
		return SeverityHigh
	}
	return SeverityLow
}

type Violation struct {
	Type     ViolationType `json:"type"`
	Severity Severity      `json:"severity"`
	Message  string        `json:"message"`
	// HoursOver is nil for BreakRequired.
	HoursOver *float64 `json:"hours_over,omitempty"`
}

type Metrics struct {
	HoursUsed    float64    `json:"hours_used"`
	DrivingHours float64    `json:"driving_hours"`
	OnDutyHours  float64    `json:"on_duty_hours"`
	LastRestart  *time.Time `json:"last_restart,omitempty" format:"date-time"`
	WindowHours  float64    `json:"window_hours"`
	MaxHours     float64    `json:"max_hours"`
}

type ComplianceReport struct {
	Compliant  bool        `json:"compliant"`
	Violations []Violation `json:"violations"`
	Metrics    Metrics     `json:"metrics"`
}

// Has reports whether the report carries a violation of type t.
func (r ComplianceReport) Has(t ViolationType) bool {
	for _, v := range r.Violations {
		if v.Type == t {
			return true
		}
	}
	return false
}

// Projection is the first violation a planned schedule runs into.
// Both fields are nil when the plan stays compliant.
type Projection struct {
	ViolationTime *time.Time `json:"violation_time" format:"date-time"`
	Violation     *Violation `json:"violation"`
}

type Availability struct {
	WeeklyHoursRemaining  float64          `json:"weekly_hours_remaining"`
	DrivingHoursRemaining float64          `json:"driving_hours_remaining"`
	OnDutyHoursRemaining  float64          `json:"on_duty_hours_remaining"`
	BreakDueSoon          bool             `json:"break_due_soon"`
	RestartAdvised        bool             `json:"restart_advised"`
	Recommendations       []string         `json:"recommendations"`
	Report                ComplianceReport `json:"report"`
}
