// Package lifecycle is the reservation state machine shared by facility
// bookings, coach bookings and accessory orders.
//
//	pending ──pay──▶ paid ──return──▶ returned   (accessory rent only)
//	   │
//	   └──cancel──▶ cancelled
//
// Every other (status, event) pair is rejected with a STATE_CONFLICT reason,
// so no transition can apply twice.
package lifecycle

import (
	"fmt"

	"sportshub/shared/failure"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusReturned  Status = "returned"
)

// Holds reports whether a reservation in this status still occupies its slot,
// seats or units.
func (s Status) Holds() bool {
	return s == StatusPending || s == StatusPaid
}

// HoldingStatuses lists the statuses that occupy a resource, for queries.
func HoldingStatuses() []string {
	return []string{string(StatusPending), string(StatusPaid)}
}

type Kind string

const (
	KindFacility      Kind = "facility"
	KindCoachPersonal Kind = "coach_personal"
	KindCoachClass    Kind = "coach_class"
	KindAccessoryRent Kind = "accessory_rent"
	KindAccessoryBuy  Kind = "accessory_buy"
)

// ParseKind rejects anything outside the five reservation variants.
func ParseKind(value string) (Kind, error) {
	switch k := Kind(value); k {
	case KindFacility, KindCoachPersonal, KindCoachClass, KindAccessoryRent, KindAccessoryBuy:
		return k, nil
	default:
		return "", failure.Validation(failure.ReasonInvalidKind, fmt.Sprintf("unknown reservation kind %q", value))
	}
}

// PayableType is the coarse type recorded on payments: facility, coach or accessory.
func (k Kind) PayableType() string {
	switch k {
	case KindCoachPersonal, KindCoachClass:
		return "coach"
	case KindAccessoryRent, KindAccessoryBuy:
		return "accessory"
	default:
		return "facility"
	}
}

// TimeBounded reports whether the variant carries its own start and end.
func (k Kind) TimeBounded() bool {
	return k == KindFacility || k == KindCoachPersonal || k == KindAccessoryRent
}

type Event string

const (
	EventPay    Event = "pay"
	EventCancel Event = "cancel"
	EventReturn Event = "return"
)

// Apply returns the status after ev, or the rejection for an illegal move.
func Apply(kind Kind, from Status, ev Event) (Status, error) {
	switch ev {
	case EventPay:
		return pay(from)
	case EventCancel:
		return cancel(from)
	case EventReturn:
		return markReturned(kind, from)
	default:
		return from, failure.Validation(failure.ReasonInvalidKind, fmt.Sprintf("unknown lifecycle event %q", ev))
	}
}

func pay(from Status) (Status, error) {
	switch from {
	case StatusPending:
		return StatusPaid, nil
	case StatusPaid, StatusReturned:
		return from, failure.StateConflict(failure.ReasonAlreadyPaid, "reservation is already paid")
	case StatusCancelled:
		return from, failure.StateConflict(failure.ReasonItemCancelled, "reservation is cancelled")
	default:
		return from, unknownStatus(from)
	}
}

func cancel(from Status) (Status, error) {
	switch from {
	case StatusPending:
		return StatusCancelled, nil
	case StatusPaid, StatusReturned:
		return from, failure.StateConflict(failure.ReasonCannotCancelPaid, "paid reservations cannot be cancelled")
	case StatusCancelled:
		return from, failure.StateConflict(failure.ReasonAlreadyCancelled, "reservation is already cancelled")
	default:
		return from, unknownStatus(from)
	}
}

func markReturned(kind Kind, from Status) (Status, error) {
	if kind != KindAccessoryRent {
		return from, failure.StateConflict(failure.ReasonNotReturnable, "only accessory rentals can be returned")
	}

	switch from {
	case StatusPaid:
		return StatusReturned, nil
	case StatusReturned:
		return from, failure.StateConflict(failure.ReasonAlreadyReturned, "rental is already returned")
	case StatusPending:
		return from, failure.StateConflict(failure.ReasonNotPaid, "rental must be paid before it is returned")
	case StatusCancelled:
		return from, failure.StateConflict(failure.ReasonItemCancelled, "reservation is cancelled")
	default:
		return from, unknownStatus(from)
	}
}

func unknownStatus(s Status) error {
	return failure.InternalError(fmt.Errorf("unknown reservation status %q", s))
}
