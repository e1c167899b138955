package model

import (
	"time"

	"github.com/shopspring/decimal"

	"sportshub/internal/engine/conflict"
	"sportshub/internal/engine/lifecycle"
	"sportshub/internal/engine/pricing"
	"sportshub/internal/engine/timewindow"
	"sportshub/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID         = "id"
	FieldKind       = "kind"
	FieldResourceID = "resource_id"
	FieldSessionID  = "session_id"
	FieldClubID     = "club_id"
	FieldPlayerID   = "player_id"
	FieldStartAt    = "start_at"
	FieldEndAt      = "end_at"
	FieldStatus     = "status"
	FieldTotal      = "total"
)

// Reservation is one row per facility booking, coach booking or accessory
// order, told apart by Kind. StartAt and EndAt are set for time-bounded kinds,
// SessionID for class bookings.
type Reservation struct {
	ID                string           `db:"id"`
	Kind              lifecycle.Kind   `db:"kind"`
	ResourceID        string           `db:"resource_id"`
	SessionID         *string          `db:"session_id"`
	ClubID            string           `db:"club_id"`
	PlayerID          string           `db:"player_id"`
	Sport             string           `db:"sport"`
	StartAt           *time.Time       `db:"start_at"`
	EndAt             *time.Time       `db:"end_at"`
	Quantity          int              `db:"quantity"`
	UnitPrice         decimal.Decimal  `db:"unit_price"`
	Hours             decimal.Decimal  `db:"hours"`
	Base              decimal.Decimal  `db:"base"`
	Discount          decimal.Decimal  `db:"discount"`
	Total             decimal.Decimal  `db:"total"`
	MembershipApplied bool             `db:"membership_applied"`
	Status            lifecycle.Status `db:"status"`
	model.Metadata
}

// Interval is false for kinds without their own time range.
func (r Reservation) Interval() (timewindow.Interval, bool) {
	if r.StartAt == nil || r.EndAt == nil {
		return timewindow.Interval{}, false
	}

	return timewindow.Interval{Start: *r.StartAt, End: *r.EndAt}, true
}

func (r *Reservation) SetInterval(i timewindow.Interval) {
	start, end := i.Start, i.End
	r.StartAt = &start
	r.EndAt = &end
}

func (r *Reservation) SetPricing(p pricing.Pricing) {
	r.Base = p.Base
	r.Discount = p.Discount
	r.Total = p.Total
	r.MembershipApplied = p.MembershipApplied
}

func (r Reservation) Pricing() pricing.Pricing {
	return pricing.Pricing{
		Base:              r.Base,
		Discount:          r.Discount,
		Total:             r.Total,
		MembershipApplied: r.MembershipApplied,
	}
}

// Slots keeps the time-bounded rows as conflict candidates.
func Slots(rows []Reservation) []conflict.Slot {
	slots := make([]conflict.Slot, 0, len(rows))

	for _, row := range rows {
		interval, ok := row.Interval()
		if !ok {
			continue
		}

		slots = append(slots, conflict.Slot{
			ReservationID: row.ID,
			Interval:      interval,
			Quantity:      row.Quantity,
			Status:        row.Status,
		})
	}

	return slots
}
