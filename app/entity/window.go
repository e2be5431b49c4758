package entity

import (
	"errors"
	"time"
)

var ErrInvalidWindow = errors.New("invalid time window")

// TimeWindow is a half-open interval [Start, End). It is embedded in a
// Reservation and never persisted on its own.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return TimeWindow{}, ErrInvalidWindow
	}
	return TimeWindow{Start: start.UTC(), End: end.UTC()}, nil
}

// Overlaps is the single source of truth for conflict detection. Windows
// that touch at an endpoint do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

func (w TimeWindow) Valid() bool {
	return !w.Start.IsZero() && !w.End.IsZero() && w.Start.Before(w.End)
}
