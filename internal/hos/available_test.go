package hos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hosline/internal/domain"
)

func TestAvailableFreshDriver(t *testing.T) {
	segs := chain(base, step{domain.OffDuty, 10 * time.Hour})

	a, err := Available(segs, segs[0].End, Options{})
	require.NoError(t, err)
	assert.Equal(t, 60.0, a.WeeklyHoursRemaining)
	assert.Equal(t, MaxDrivingHours, a.DrivingHoursRemaining)
	assert.Equal(t, MaxOnDutyHours, a.OnDutyHoursRemaining)
	assert.False(t, a.BreakDueSoon)
	assert.False(t, a.RestartAdvised)
	assert.Empty(t, a.Recommendations)
	assert.True(t, a.Report.Compliant)
}

func TestAvailableBreakDueSoon(t *testing.T) {
	segs := chain(base,
		step{domain.OffDuty, 10 * time.Hour},
		step{domain.Driving, 6 * time.Hour},
		step{domain.OffDuty, 30 * time.Minute},
		step{domain.Driving, 4*time.Hour + 30*time.Minute},
	)

	a, err := Available(segs, segs[3].End, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, a.DrivingHoursRemaining, 1e-9)
	assert.True(t, a.BreakDueSoon)
	require.NotEmpty(t, a.Recommendations)
	assert.Contains(t, a.Recommendations[0], "Driving limit is close")
}

func TestAvailableRestartAdvised(t *testing.T) {
	segs := sixLongDays()
	segs = segs[:len(segs)-3] // five 10h days, ending off duty
	now := segs[len(segs)-1].End

	a, err := Available(segs, now, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, a.WeeklyHoursRemaining, 1e-9)
	assert.True(t, a.RestartAdvised)
}

func TestAvailableViolationsDriveRecommendations(t *testing.T) {
	segs := chain(base,
		step{domain.OffDuty, 10 * time.Hour},
		step{domain.Driving, 15 * time.Hour},
	)

	a, err := Available(segs, segs[1].End, Options{})
	require.NoError(t, err)
	assert.Zero(t, a.DrivingHoursRemaining)
	assert.Zero(t, a.OnDutyHoursRemaining)
	assert.Len(t, a.Recommendations, len(a.Report.Violations))
}
