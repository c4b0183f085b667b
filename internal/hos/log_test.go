package hos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hosline/internal/domain"
)

func TestNewLogOrdersWithoutTouchingInput(t *testing.T) {
	in := []domain.DutySegment{
		span(domain.Driving, base.Add(h(5)), h(1)),
		span(domain.OffDuty, base, h(5)),
	}
	l, err := NewLog(in)
	require.NoError(t, err)
	assert.Equal(t, domain.Driving, in[0].Status)
	got := l.Segments()
	require.Len(t, got, 2)
	assert.Equal(t, domain.OffDuty, got[0].Status)
	assert.Equal(t, 2, l.Len())
}

func TestNewLogRejectsEmptySegment(t *testing.T) {
	s := seg(domain.Driving, base, base)
	s.ID = "seg-9"
	_, err := NewLog([]domain.DutySegment{span(domain.OffDuty, base, h(1)), s})

	var ve ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 1, ve.Index)
	assert.Equal(t, "seg-9", ve.SegmentID)
	assert.Contains(t, err.Error(), "seg-9")
}

func TestStartedExcludesSegmentsAtOrAfter(t *testing.T) {
	l := mustLog(chain(base,
		step{domain.OffDuty, h(2)},
		step{domain.Driving, h(2)},
		step{domain.OnDutyNotDriving, h(2)},
	)...)
	assert.Equal(t, 1, l.Started(base.Add(h(2))).Len())
	assert.Equal(t, 2, l.Started(base.Add(h(2)+1)).Len())
	assert.Equal(t, 0, l.Started(base).Len())
	assert.Equal(t, 3, l.Started(base.Add(h(100))).Len())
}

func TestMergeKeepsStartOrder(t *testing.T) {
	a := mustLog(span(domain.Driving, base, h(1)), span(domain.Driving, base.Add(h(4)), h(1)))
	b := mustLog(span(domain.OffDuty, base.Add(h(2)), h(1)))
	m := merge(a, b).Segments()
	require.Len(t, m, 3)
	assert.Equal(t, domain.OffDuty, m[1].Status)
}
