package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidWindow    = errors.New("window start must be before end")
)

// TimeOfDay is minutes since midnight on a single calendar day.
// Requests never span midnight so plain integer comparison is enough.
type TimeOfDay int

const minutesPerDay = 24 * 60

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay accepts the wire format "15:04".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

// Add returns the time-of-day d later, or false if the result would
// cross midnight.
func (t TimeOfDay) Add(d time.Duration) (TimeOfDay, bool) {
	result := int(t) + int(d.Minutes())
	if result > minutesPerDay {
		return 0, false
	}
	return TimeOfDay(result), true
}

// TimeWindow is a half-open [start,end) interval within one calendar day.
type TimeWindow struct {
	start TimeOfDay
	end   TimeOfDay
}

func NewTimeWindow(start, end TimeOfDay) (TimeWindow, error) {
	if start < 0 || int(end) > minutesPerDay {
		return TimeWindow{}, ErrInvalidTimeOfDay
	}
	if start >= end {
		return TimeWindow{}, ErrInvalidWindow
	}
	return TimeWindow{start: start, end: end}, nil
}

func (w TimeWindow) Start() TimeOfDay { return w.start }
func (w TimeWindow) End() TimeOfDay   { return w.end }

func (w TimeWindow) Duration() time.Duration {
	return time.Duration(w.end-w.start) * time.Minute
}

// Overlaps implements half-open interval intersection: touching endpoints
// (A.end == B.start) do not conflict, so back-to-back bookings are legal.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start < other.end && other.start < w.end
}

func (w TimeWindow) String() string {
	return w.start.String() + "-" + w.end.String()
}
