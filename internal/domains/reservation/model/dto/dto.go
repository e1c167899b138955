package dto

import (
	"time"

	"sportshub/internal/domains/reservation/model"
	"sportshub/internal/engine/timewindow"
	"sportshub/shared"
	"sportshub/shared/constant"
	gDto "sportshub/shared/dto"
	"sportshub/shared/failure"
	"sportshub/shared/timezone"
)

type CreateReservationRequest struct {
	Kind       string `json:"kind"                 validate:"required,reservationkind"`
	ResourceID string `json:"resource_id"          validate:"required,uuid"`
	SessionID  string `json:"session_id,omitempty" validate:"omitempty,uuid"`
	StartTime  string `json:"start_time,omitempty" validate:"omitempty,rfc3339"`
	EndTime    string `json:"end_time,omitempty"   validate:"omitempty,rfc3339"`
	// participants for classes, units for accessories; defaults to 1
	Quantity *int `json:"quantity,omitempty" validate:"omitempty,gte=1"`
}

func (c CreateReservationRequest) Qty() int {
	if c.Quantity == nil {
		return 1
	}

	return *c.Quantity
}

// Interval parses start_time and end_time, both required for time-bounded kinds.
func (c CreateReservationRequest) Interval() (timewindow.Interval, error) {
	if c.StartTime == "" || c.EndTime == "" {
		return timewindow.Interval{}, failure.Validation(failure.ReasonMissingField, "start_time and end_time are required")
	}

	start, err := time.Parse(time.RFC3339, c.StartTime)
	if err != nil {
		return timewindow.Interval{}, failure.Validation(failure.ReasonInvalidInterval, "start_time must be RFC3339")
	}

	end, err := time.Parse(time.RFC3339, c.EndTime)
	if err != nil {
		return timewindow.Interval{}, failure.Validation(failure.ReasonInvalidInterval, "end_time must be RFC3339")
	}

	return timewindow.New(start, end)
}

type PricingResponse struct {
	Base              string `json:"base"`
	Discount          string `json:"discount"`
	Total             string `json:"total"`
	MembershipApplied bool   `json:"membership_applied"`
}

type ReservationResponse struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	ResourceID string          `json:"resource_id"`
	SessionID  string          `json:"session_id,omitempty"`
	ClubID     string          `json:"club_id"`
	PlayerID   string          `json:"player_id"`
	Sport      string          `json:"sport"`
	StartTime  string          `json:"start_time,omitempty"`
	EndTime    string          `json:"end_time,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  string          `json:"unit_price"`
	Hours      string          `json:"hours,omitempty"`
	Pricing    PricingResponse `json:"pricing"`
	Status     string          `json:"status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(m model.Reservation) {
	r.ID = m.ID
	r.Kind = string(m.Kind)
	r.ResourceID = m.ResourceID
	r.ClubID = m.ClubID
	r.PlayerID = m.PlayerID
	r.Sport = m.Sport
	r.Quantity = m.Quantity
	r.UnitPrice = m.UnitPrice.StringFixed(2)
	r.Status = string(m.Status)

	if m.SessionID != nil {
		r.SessionID = *m.SessionID
	}

	if interval, ok := m.Interval(); ok {
		r.StartTime = timezone.Format(interval.Start, constant.DateFormat)
		r.EndTime = timezone.Format(interval.End, constant.DateFormat)
	}

	if m.Kind.TimeBounded() {
		r.Hours = m.Hours.String()
	}

	r.Pricing = PricingResponse{
		Base:              m.Base.String(),
		Discount:          m.Discount.String(),
		Total:             m.Total.StringFixed(2),
		MembershipApplied: m.MembershipApplied,
	}
	r.Metadata.FromModel(m.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

// ListFilter narrows a player's own reservations.
type ListFilter struct {
	Kind   string `validate:"omitempty,reservationkind"`
	Status string `validate:"omitempty,oneof=pending paid cancelled returned"`
}

func (f ListFilter) Group(playerID string) gDto.FilterGroup {
	filters := []any{gDto.Eq(model.FieldPlayerID, playerID)}

	if f.Kind != "" {
		filters = append(filters, gDto.Eq(model.FieldKind, f.Kind))
	}

	if f.Status != "" {
		filters = append(filters, gDto.Eq(model.FieldStatus, f.Status))
	}

	return gDto.And(filters...)
}

type ScheduleRequest struct {
	From string `validate:"required,rfc3339"`
	To   string `validate:"required,rfc3339"`
}

func (s ScheduleRequest) Interval() (timewindow.Interval, error) {
	from, err := time.Parse(time.RFC3339, s.From)
	if err != nil {
		return timewindow.Interval{}, failure.Validation(failure.ReasonInvalidInterval, "from must be RFC3339")
	}

	to, err := time.Parse(time.RFC3339, s.To)
	if err != nil {
		return timewindow.Interval{}, failure.Validation(failure.ReasonInvalidInterval, "to must be RFC3339")
	}

	return timewindow.New(from, to)
}

type ScheduleEntry struct {
	Kind      string `json:"kind"`
	Status    string `json:"status"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Quantity  int    `json:"quantity"`
}

// ScheduleResponse lists the intervals that currently hold a resource. It is
// served from cache and may lag behind new reservations.
type ScheduleResponse struct {
	ResourceID string          `json:"resource_id"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	Busy       []ScheduleEntry `json:"busy"`
}

func (s *ScheduleResponse) FromModels(resourceID string, window timewindow.Interval, models []model.Reservation) {
	s.ResourceID = resourceID
	s.From = timezone.Format(window.Start, constant.DateFormat)
	s.To = timezone.Format(window.End, constant.DateFormat)
	s.Busy = make([]ScheduleEntry, 0, len(models))

	for _, m := range models {
		interval, ok := m.Interval()
		if !ok || !m.Status.Holds() {
			continue
		}

		s.Busy = append(s.Busy, ScheduleEntry{
			Kind:      string(m.Kind),
			Status:    string(m.Status),
			StartTime: timezone.Format(interval.Start, constant.DateFormat),
			EndTime:   timezone.Format(interval.End, constant.DateFormat),
			Quantity:  m.Quantity,
		})
	}
}

// Event is the payload published on the reservation topic.
type Event struct {
	ReservationID string `json:"reservation_id"`
	Kind          string `json:"kind"`
	ResourceID    string `json:"resource_id"`
	ClubID        string `json:"club_id"`
	PlayerID      string `json:"player_id"`
	Status        string `json:"status"`
	Total         string `json:"total"`
	Actor         string `json:"actor"`
	OccurredAt    string `json:"occurred_at"`
}

func NewEvent(m model.Reservation, actor string) Event {
	return Event{
		ReservationID: m.ID,
		Kind:          string(m.Kind),
		ResourceID:    m.ResourceID,
		ClubID:        m.ClubID,
		PlayerID:      m.PlayerID,
		Status:        string(m.Status),
		Total:         m.Total.StringFixed(2),
		Actor:         actor,
		OccurredAt:    timezone.Format(timezone.Now(), constant.DateFormat),
	}
}

// RentalReturned is consumed from the accessory desk when rented units come back.
type RentalReturned struct {
	ReservationID string `json:"reservation_id"`
	ClubID        string `json:"club_id"`
}
