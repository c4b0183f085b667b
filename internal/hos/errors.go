package hos

import (
	"fmt"
	"time"
)

// ValidationError identifies a segment whose end is not after its start.
type ValidationError struct {
	Index     int
	SegmentID string
	Start     time.Time
	End       time.Time
}

func (e ValidationError) Error() string {
	id := e.SegmentID
	if id == "" {
		id = fmt.Sprintf("#%d", e.Index)
	}
	return fmt.Sprintf("invalid segment %s: end %s is not after start %s",
		id, e.End.UTC().Format(time.RFC3339), e.Start.UTC().Format(time.RFC3339))
}
