// Package timewindow models half-open time intervals and weekly recurring
// availability windows.
package timewindow

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"sportshub/shared/failure"
)

const (
	minutesPerDay = 24 * 60
	secondsInHour = 3600
)

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
}

// New rejects empty and inverted intervals.
func New(start, end time.Time) (Interval, error) {
	if start.IsZero() || end.IsZero() {
		return Interval{}, failure.Validation(failure.ReasonMissingField, "start_time and end_time are required")
	}

	if !start.Before(end) {
		return Interval{}, failure.Validation(failure.ReasonInvalidInterval, "start_time must be before end_time")
	}

	return Interval{Start: start, End: end}, nil
}

// Overlaps is true when the intervals share any instant. Touching ends do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Duration is End minus Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Hours is the duration in hours at second resolution, unrounded.
func (i Interval) Hours() decimal.Decimal {
	seconds := int64(i.Duration() / time.Second)

	return decimal.NewFromInt(seconds).Div(decimal.NewFromInt(secondsInHour))
}

// WeeklyWindow is a recurring availability block on one weekday, in minutes
// from local midnight. EndMinute may be 1440 to reach the end of the day.
type WeeklyWindow struct {
	Day         time.Weekday `db:"day_of_week"  json:"day_of_week"`
	StartMinute int          `db:"start_minute" json:"start_minute"`
	EndMinute   int          `db:"end_minute"   json:"end_minute"`
}

func (w WeeklyWindow) Validate() error {
	switch {
	case w.Day < time.Sunday || w.Day > time.Saturday:
		return failure.Validation(failure.ReasonInvalidInterval, fmt.Sprintf("day_of_week %d out of range", w.Day))
	case w.StartMinute < 0 || w.StartMinute >= minutesPerDay:
		return failure.Validation(failure.ReasonInvalidInterval, fmt.Sprintf("start_minute %d out of range", w.StartMinute))
	case w.EndMinute <= 0 || w.EndMinute > minutesPerDay:
		return failure.Validation(failure.ReasonInvalidInterval, fmt.Sprintf("end_minute %d out of range", w.EndMinute))
	case w.StartMinute >= w.EndMinute:
		return failure.Validation(failure.ReasonInvalidInterval, "start_minute must be before end_minute")
	}

	return nil
}

// FitsWithinWeeklyWindow accepts the interval when it lies on a single local
// day inside one window for that weekday. An end at exactly the following
// midnight counts as minute 1440 of the start day.
func FitsWithinWeeklyWindow(i Interval, windows []WeeklyWindow, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	start := i.Start.In(loc)
	end := i.End.In(loc)

	startOffset := clockOffset(start)
	endOffset := clockOffset(end)

	if !sameDay(start, end) {
		nextMidnight := time.Date(start.Year(), start.Month(), start.Day()+1, 0, 0, 0, 0, loc)
		if !end.Equal(nextMidnight) {
			return failure.Validation(failure.ReasonOutsideAvailability, "session must start and end on the same day")
		}

		endOffset = minutesPerDay * time.Minute
	}

	for _, w := range windows {
		if w.Day == start.Weekday() && minutes(w.StartMinute) <= startOffset && endOffset <= minutes(w.EndMinute) {
			return nil
		}
	}

	return failure.Validation(failure.ReasonOutsideAvailability, "requested time is outside the coach's availability")
}

// clockOffset is the time since local midnight, down to the nanosecond.
func clockOffset(t time.Time) time.Duration {
	hour, minute, second := t.Clock()

	return time.Duration(hour)*time.Hour +
		time.Duration(minute)*time.Minute +
		time.Duration(second)*time.Second +
		time.Duration(t.Nanosecond())
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}
