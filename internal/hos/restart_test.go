package hos

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hosline/internal/domain"
)

func TestIsRestartNeedsTwoNights(t *testing.T) {
	// 34h from 06:00 day 0 to 16:00 day 1 covers only day 1's 1am-5am.
	oneNight := span(domain.OffDuty, base.Add(6*time.Hour), 34*time.Hour)
	assert.False(t, IsRestart(oneNight, time.UTC))

	// 34h from 00:00 day 0 to 10:00 day 1 covers both nights.
	twoNights := span(domain.OffDuty, base, 34*time.Hour)
	assert.True(t, IsRestart(twoNights, time.UTC))

	sleeper := span(domain.SleeperBerth, base, 34*time.Hour)
	assert.True(t, IsRestart(sleeper, time.UTC))
}

func TestIsRestartRejectsShortOrNonRest(t *testing.T) {
	assert.False(t, IsRestart(span(domain.OffDuty, base, 34*time.Hour-time.Minute), time.UTC))
	assert.False(t, IsRestart(span(domain.PersonalConveyance, base, 48*time.Hour), time.UTC))
	assert.False(t, IsRestart(span(domain.OnDutyNotDriving, base, 48*time.Hour), time.UTC))
}

func TestIsRestartPartialNightDoesNotCount(t *testing.T) {
	// Starts 01:30 day 0: day 0's window is cut short, day 1's is whole.
	s := span(domain.OffDuty, base.Add(90*time.Minute), 40*time.Hour)
	assert.False(t, IsRestart(s, time.UTC))
}

func TestIsRestartUsesLocation(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	// 00:00Z Mar 4 to 10:00Z Mar 5 is 18:00 Mar 3 to 04:00 Mar 5 in Chicago,
	// so only the Mar 4 night lies inside the span there.
	s := span(domain.OffDuty, base, 34*time.Hour)
	assert.True(t, IsRestart(s, time.UTC))
	assert.False(t, IsRestart(s, chicago))
}

func TestLastRestartPrefersMostRecent(t *testing.T) {
	older := span(domain.OffDuty, base, 60*time.Hour)
	work := span(domain.Driving, older.End, 8*time.Hour)
	newer := span(domain.OffDuty, base.Add(4*24*time.Hour), 34*time.Hour)
	l := mustLog(newer, work, older)

	got, ok := l.LastRestart(newer.End.Add(time.Hour), time.UTC)
	require.True(t, ok)
	assert.True(t, got.Equal(newer.End))
}

func TestLastRestartIgnoresRestEndingAfterNow(t *testing.T) {
	rest := span(domain.OffDuty, base, 40*time.Hour)
	l := mustLog(rest)

	_, ok := l.LastRestart(rest.End.Add(-time.Minute), time.UTC)
	assert.False(t, ok)

	got, ok := l.LastRestart(rest.End, time.UTC)
	require.True(t, ok)
	assert.True(t, got.Equal(rest.End))
}

func TestLastRestartNone(t *testing.T) {
	l := mustLog(span(domain.OffDuty, base.Add(6*time.Hour), 34*time.Hour))
	_, ok := l.LastRestart(base.Add(7*24*time.Hour), nil)
	assert.False(t, ok)
}
