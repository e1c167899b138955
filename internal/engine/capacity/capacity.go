// Package capacity guards countable inventory: class seats and accessory units.
// Callers hold the row lock on the session or accessory while these run.
package capacity

import (
	"fmt"

	"sportshub/internal/engine/conflict"
	"sportshub/internal/engine/timewindow"
	"sportshub/shared/failure"
)

func checkQuantity(n int) error {
	if n <= 0 {
		return failure.Validation(failure.ReasonInvalidQuantity, "quantity must be at least 1")
	}

	return nil
}

// ReserveSeats returns the new booked count when n more participants fit.
func ReserveSeats(booked, maxCapacity, n int) (int, error) {
	if err := checkQuantity(n); err != nil {
		return booked, err
	}

	if booked+n > maxCapacity {
		return booked, failure.ConflictWithReason(
			failure.ReasonCapacityExceeded,
			fmt.Sprintf("only %d seat(s) left", max(0, maxCapacity-booked)),
		)
	}

	return booked + n, nil
}

// ReleaseSeats returns seats to the session, never dropping below zero.
func ReleaseSeats(booked, n int) int {
	return max(0, booked-n)
}

// ReserveUnits returns the remaining stock after a purchase of qty.
func ReserveUnits(stock, qty int) (int, error) {
	if err := checkQuantity(qty); err != nil {
		return stock, err
	}

	if qty > stock {
		return stock, failure.ConflictWithReason(
			failure.ReasonInsufficientStock,
			fmt.Sprintf("only %d unit(s) in stock", max(0, stock)),
		)
	}

	return stock - qty, nil
}

// ReleaseUnits puts purchased units back into stock.
func ReleaseUnits(stock, qty int) int {
	return stock + max(0, qty)
}

// ReserveRentalUnits treats stock as the ceiling on units out at the same
// time: the peak of held rentals during candidate plus qty must not exceed it.
func ReserveRentalUnits(stock, qty int, candidate timewindow.Interval, active []conflict.Slot) error {
	if err := checkQuantity(qty); err != nil {
		return err
	}

	inUse := conflict.PeakQuantity(candidate, active)

	if inUse+qty > stock {
		return failure.ConflictWithReason(
			failure.ReasonInsufficientStock,
			fmt.Sprintf("only %d unit(s) available for that period", max(0, stock-inUse)),
		)
	}

	return nil
}
