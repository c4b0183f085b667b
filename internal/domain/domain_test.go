package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"hosline/internal/domain"
)

func TestParseDutyStatus(t *testing.T) {
	cases := map[string]domain.DutyStatus{
		"D":                   domain.Driving,
		"drive":               domain.Driving,
		" Driving ":           domain.Driving,
		"off":                 domain.OffDuty,
		"off-duty":            domain.OffDuty,
		"Off Duty":            domain.OffDuty,
		"SB":                  domain.SleeperBerth,
		"sleeper berth":       domain.SleeperBerth,
		"ON":                  domain.OnDutyNotDriving,
		"on duty not driving": domain.OnDutyNotDriving,
		"PC":                  domain.PersonalConveyance,
		"yard-move":           domain.YardMove,
		"YM":                  domain.YardMove,
		"lunch":               domain.OnDutyNotDriving,
		"":                    domain.OnDutyNotDriving,
	}
	for in, want := range cases {
		assert.Equal(t, want, domain.ParseDutyStatus(in), "input %q", in)
	}
}

func TestDutyStatusClassification(t *testing.T) {
	tests := []struct {
		status                        domain.DutyStatus
		driving, onDuty, offDuty, rest bool
	}{
		{domain.OffDuty, false, false, true, true},
		{domain.SleeperBerth, false, false, true, true},
		{domain.Driving, true, true, false, false},
		{domain.OnDutyNotDriving, false, true, false, false},
		{domain.PersonalConveyance, false, false, true, false},
		{domain.YardMove, false, true, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.status.String(), func(t *testing.T) {
			assert.True(t, tc.status.IsValid())
			assert.Equal(t, tc.driving, tc.status.IsDriving())
			assert.Equal(t, tc.onDuty, tc.status.IsOnDuty())
			assert.Equal(t, tc.offDuty, tc.status.IsOffDuty())
			assert.Equal(t, tc.rest, tc.status.IsRest())
			assert.NotEqual(t, tc.onDuty, tc.offDuty)
		})
	}
	assert.False(t, domain.DutyStatus("lunch").IsValid())
}

func TestDutySegmentDecodesStatusSynonyms(t *testing.T) {
	var fromYAML domain.DutySegment
	err := yaml.Unmarshal([]byte(`
startUtc: 2024-03-04T08:00:00Z
endUtc: 2024-03-04T10:00:00Z
status: DRIVE
`), &fromYAML)
	require.NoError(t, err)
	assert.Equal(t, domain.Driving, fromYAML.Status)
	assert.Equal(t, 120.0, fromYAML.Duration().Minutes())

	var fromJSON domain.DutySegment
	err = json.Unmarshal([]byte(`{"start_utc":"2024-03-04T08:00:00Z","end_utc":"2024-03-04T09:00:00Z","status":"sb"}`), &fromJSON)
	require.NoError(t, err)
	assert.Equal(t, domain.SleeperBerth, fromJSON.Status)
}

func TestSeverityFor(t *testing.T) {
	assert.Equal(t, domain.SeverityCritical, domain.SeverityFor(domain.WeeklyHourCap))
	assert.Equal(t, domain.SeverityCritical, domain.SeverityFor(domain.DrivingCap))
	assert.Equal(t, domain.SeverityHigh, domain.SeverityFor(domain.OnDutyCap))
	assert.Equal(t, domain.SeverityHigh, domain.SeverityFor(domain.BreakRequired))
}

func TestComplianceReportHas(t *testing.T) {
	r := domain.ComplianceReport{Violations: []domain.Violation{{Type: domain.OnDutyCap}}}
	assert.True(t, r.Has(domain.OnDutyCap))
	assert.False(t, r.Has(domain.DrivingCap))
}
