package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hosline/internal/app"
	"hosline/internal/domain"
)

func TestOverridesOnlyCarriesSetValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	o := overrides(app.Overrides{Limit: "driving_cap"})
	assert.Empty(t, o.Cycle)
	assert.Nil(t, o.OtherEmployerMinutes)
	assert.Nil(t, o.PriorDriving)
	assert.Equal(t, "driving_cap", o.Limit)

	viper.Set("rule-70", true)
	viper.Set("other-employer-minutes", 45)
	viper.Set("prior-driving", "2h")
	o = overrides(app.Overrides{})
	assert.Equal(t, "70/8", o.Cycle)
	require.NotNil(t, o.OtherEmployerMinutes)
	assert.Equal(t, 45, *o.OtherEmployerMinutes)
	require.NotNil(t, o.PriorDriving)
	assert.Equal(t, 2*time.Hour, *o.PriorDriving)
}

func TestRenderReport(t *testing.T) {
	over := 1.0
	restart := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	renderReport(&buf, domain.ComplianceReport{
		Violations: []domain.Violation{{
			Type:      domain.WeeklyHourCap,
			Severity:  domain.SeverityCritical,
			Message:   "61.00 on-duty hours in the last 7 days, limit 60",
			HoursOver: &over,
		}},
		Metrics: domain.Metrics{HoursUsed: 61, WindowHours: 168, MaxHours: 60, LastRestart: &restart},
	})
	out := buf.String()
	assert.Contains(t, out, "61.00h / 60 in 168h")
	assert.Contains(t, out, "2024-03-02T10:00:00Z")
	assert.Contains(t, out, "weekly_hour_cap")
	assert.Contains(t, out, "1.00h")
}

func TestNewLoggerLevel(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("log-level", "warn")

	var buf bytes.Buffer
	logger := newLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
