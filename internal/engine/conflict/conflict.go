// Package conflict rejects time-bounded reservations that collide with ones
// already holding the same resource.
package conflict

import (
	"fmt"
	"sort"
	"time"

	"sportshub/internal/engine/lifecycle"
	"sportshub/internal/engine/timewindow"
	"sportshub/shared/failure"
)

// Slot is an existing reservation of the resource being booked.
type Slot struct {
	ReservationID string
	Interval      timewindow.Interval
	Quantity      int
	Status        lifecycle.Status
}

// CheckDuration accepts 0 < duration <= maxDuration.
func CheckDuration(i timewindow.Interval, maxDuration time.Duration) error {
	d := i.Duration()

	if d <= 0 || d > maxDuration {
		return failure.Validation(
			failure.ReasonInvalidDuration,
			fmt.Sprintf("duration must be greater than 0 and at most %s", formatHours(maxDuration)),
		)
	}

	return nil
}

// CheckConflict scans existing linearly and rejects on the first overlapping
// slot that still holds the resource. Cancelled and returned slots are free.
func CheckConflict(candidate timewindow.Interval, existing []Slot) error {
	for _, slot := range existing {
		if !slot.Status.Holds() {
			continue
		}

		if candidate.Overlaps(slot.Interval) {
			return failure.ConflictWithReason(failure.ReasonSlotTaken, "time slot already booked")
		}
	}

	return nil
}

// PeakQuantity is the most units held at any single instant of candidate.
// Slots are clipped to candidate and swept by their boundaries; a slot ending
// when another starts does not count twice.
func PeakQuantity(candidate timewindow.Interval, existing []Slot) int {
	type edge struct {
		at    time.Time
		delta int
	}

	edges := make([]edge, 0, 2*len(existing))

	for _, slot := range existing {
		if !slot.Status.Holds() || !candidate.Overlaps(slot.Interval) {
			continue
		}

		start := slot.Interval.Start
		if start.Before(candidate.Start) {
			start = candidate.Start
		}

		end := slot.Interval.End
		if end.After(candidate.End) {
			end = candidate.End
		}

		edges = append(edges, edge{at: start, delta: slot.Quantity}, edge{at: end, delta: -slot.Quantity})
	}

	sort.Slice(edges, func(a, b int) bool {
		if edges[a].at.Equal(edges[b].at) {
			return edges[a].delta < edges[b].delta
		}

		return edges[a].at.Before(edges[b].at)
	})

	current, peak := 0, 0

	for _, e := range edges {
		current += e.delta
		peak = max(peak, current)
	}

	return peak
}

func formatHours(d time.Duration) string {
	if d%time.Hour == 0 {
		return fmt.Sprintf("%dh", int(d/time.Hour))
	}

	return d.String()
}
