package timewindow_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportshub/internal/engine/timewindow"
	"sportshub/shared/failure"
)

func at(hour, minute int) time.Time {
	// 2025-03-10 is a Monday
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func mustInterval(t *testing.T, start, end time.Time) timewindow.Interval {
	t.Helper()

	i, err := timewindow.New(start, end)
	require.NoError(t, err)

	return i
}

func TestNew(t *testing.T) {
	_, err := timewindow.New(at(10, 0), at(10, 0))
	assert.Equal(t, failure.ReasonInvalidInterval, failure.GetReason(err))

	_, err = timewindow.New(at(11, 0), at(10, 0))
	assert.Equal(t, failure.ReasonInvalidInterval, failure.GetReason(err))

	_, err = timewindow.New(time.Time{}, at(10, 0))
	assert.Equal(t, failure.ReasonMissingField, failure.GetReason(err))

	i, err := timewindow.New(at(10, 0), at(12, 0))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, i.Duration())
}

func TestOverlaps(t *testing.T) {
	base := mustInterval(t, at(10, 0), at(12, 0))

	tests := []struct {
		name  string
		other timewindow.Interval
		want  bool
	}{
		{name: "one minute overlap", other: mustInterval(t, at(11, 59), at(13, 0)), want: true},
		{name: "touching end", other: mustInterval(t, at(12, 0), at(13, 0)), want: false},
		{name: "touching start", other: mustInterval(t, at(9, 0), at(10, 0)), want: false},
		{name: "contained", other: mustInterval(t, at(10, 30), at(11, 0)), want: true},
		{name: "containing", other: mustInterval(t, at(9, 0), at(13, 0)), want: true},
		{name: "disjoint", other: mustInterval(t, at(14, 0), at(15, 0)), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestHours(t *testing.T) {
	assert.True(t, decimal.NewFromInt(2).Equal(mustInterval(t, at(10, 0), at(12, 0)).Hours()))
	assert.True(t, decimal.RequireFromString("1.5").Equal(mustInterval(t, at(10, 0), at(11, 30)).Hours()))
}

func TestWeeklyWindow_Validate(t *testing.T) {
	assert.NoError(t, timewindow.WeeklyWindow{Day: time.Monday, StartMinute: 540, EndMinute: 1440}.Validate())
	assert.Error(t, timewindow.WeeklyWindow{Day: time.Monday, StartMinute: 600, EndMinute: 600}.Validate())
	assert.Error(t, timewindow.WeeklyWindow{Day: time.Monday, StartMinute: 0, EndMinute: 1441}.Validate())
	assert.Error(t, timewindow.WeeklyWindow{Day: time.Monday, StartMinute: 1440, EndMinute: 1440}.Validate())
	assert.Error(t, timewindow.WeeklyWindow{Day: 7, StartMinute: 0, EndMinute: 60}.Validate())
}

func TestFitsWithinWeeklyWindow(t *testing.T) {
	windows := []timewindow.WeeklyWindow{
		{Day: time.Monday, StartMinute: 9 * 60, EndMinute: 12 * 60},
		{Day: time.Monday, StartMinute: 20 * 60, EndMinute: 24 * 60},
		{Day: time.Tuesday, StartMinute: 0, EndMinute: 24 * 60},
	}

	midnight := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		interval   timewindow.Interval
		wantReason string
	}{
		{name: "inside morning window", interval: mustInterval(t, at(9, 0), at(10, 30))},
		{name: "exactly the window", interval: mustInterval(t, at(9, 0), at(12, 0))},
		{name: "ends at next midnight", interval: mustInterval(t, at(22, 0), midnight)},
		{name: "spills past window", interval: mustInterval(t, at(11, 0), at(12, 30)), wantReason: failure.ReasonOutsideAvailability},
		{name: "between windows", interval: mustInterval(t, at(13, 0), at(14, 0)), wantReason: failure.ReasonOutsideAvailability},
		{name: "crosses midnight", interval: mustInterval(t, at(23, 0), midnight.Add(time.Hour)), wantReason: failure.ReasonOutsideAvailability},
		{name: "ends seconds past window", interval: mustInterval(t, at(11, 0), at(12, 0).Add(59*time.Second)), wantReason: failure.ReasonOutsideAvailability},
		{name: "ends a nanosecond past window", interval: mustInterval(t, at(11, 0), at(12, 0).Add(time.Nanosecond)), wantReason: failure.ReasonOutsideAvailability},
		{name: "starts seconds before window", interval: mustInterval(t, at(9, 0).Add(-30*time.Second), at(10, 0)), wantReason: failure.ReasonOutsideAvailability},
		{name: "wrong weekday", interval: mustInterval(t, at(9, 0).AddDate(0, 0, 2), at(10, 0).AddDate(0, 0, 2)), wantReason: failure.ReasonOutsideAvailability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := timewindow.FitsWithinWeeklyWindow(tt.interval, windows, time.UTC)

			if tt.wantReason == "" {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantReason, failure.GetReason(err))
			assert.Equal(t, failure.CategoryValidation, failure.GetCategory(err))
		})
	}
}

func TestFitsWithinWeeklyWindow_Timezone(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	windows := []timewindow.WeeklyWindow{{Day: time.Monday, StartMinute: 9 * 60, EndMinute: 12 * 60}}

	// 02:00 UTC Monday is 09:00 Monday in Jakarta (UTC+7)
	interval := mustInterval(t, at(2, 0), at(3, 0))

	assert.NoError(t, timewindow.FitsWithinWeeklyWindow(interval, windows, jakarta))
	assert.Error(t, timewindow.FitsWithinWeeklyWindow(interval, windows, time.UTC))
}

func TestFitsWithinWeeklyWindow_SubMinuteEnd(t *testing.T) {
	windows := []timewindow.WeeklyWindow{{Day: time.Monday, StartMinute: 540, EndMinute: 600}}

	late := mustInterval(t, at(9, 0), at(10, 0).Add(59*time.Second))
	err := timewindow.FitsWithinWeeklyWindow(late, windows, time.UTC)
	assert.Equal(t, failure.ReasonOutsideAvailability, failure.GetReason(err))

	inside := mustInterval(t, at(9, 0).Add(15*time.Second), at(9, 59).Add(59*time.Second))
	assert.NoError(t, timewindow.FitsWithinWeeklyWindow(inside, windows, time.UTC))
}
