package dto_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportshub/internal/domains/reservation/model"
	"sportshub/internal/domains/reservation/model/dto"
	"sportshub/internal/engine/lifecycle"
	"sportshub/internal/engine/timewindow"
	"sportshub/shared/failure"
	gModel "sportshub/shared/model"
	"sportshub/shared/timezone"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 2, hour, minute, 0, 0, time.UTC)
}

func TestCreateReservationRequest_Qty(t *testing.T) {
	three := 3

	assert.Equal(t, 1, dto.CreateReservationRequest{}.Qty())
	assert.Equal(t, 3, dto.CreateReservationRequest{Quantity: &three}.Qty())
}

func TestCreateReservationRequest_Interval(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantReason string
	}{
		{name: "valid", start: "2026-03-02T10:00:00Z", end: "2026-03-02T11:30:00Z"},
		{name: "missing end", start: "2026-03-02T10:00:00Z", wantReason: failure.ReasonMissingField},
		{name: "malformed start", start: "10:00", end: "2026-03-02T11:00:00Z", wantReason: failure.ReasonInvalidInterval},
		{name: "end before start", start: "2026-03-02T11:00:00Z", end: "2026-03-02T10:00:00Z", wantReason: failure.ReasonInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interval, err := dto.CreateReservationRequest{StartTime: tt.start, EndTime: tt.end}.Interval()

			if tt.wantReason != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 90*time.Minute, interval.Duration())
		})
	}
}

func TestReservationResponse_FromModel(t *testing.T) {
	timezone.Use(time.UTC)

	now := at(9, 0)
	reservation := model.Reservation{
		ID:                "r-1",
		Kind:              lifecycle.KindFacility,
		ResourceID:        "f-1",
		ClubID:            "c-1",
		PlayerID:          "p-1",
		Sport:             "padel",
		Quantity:          1,
		UnitPrice:         decimal.RequireFromString("50"),
		Hours:             decimal.RequireFromString("2"),
		Base:              decimal.RequireFromString("100"),
		Discount:          decimal.RequireFromString("20"),
		Total:             decimal.RequireFromString("80"),
		MembershipApplied: true,
		Status:            lifecycle.StatusPending,
		Metadata:          gModel.NewMetadata("p-1", now),
	}

	interval, err := timewindow.New(at(10, 0), at(12, 0))
	require.NoError(t, err)
	reservation.SetInterval(interval)

	var response dto.ReservationResponse
	response.FromModel(reservation)

	assert.Equal(t, "r-1", response.ID)
	assert.Equal(t, "facility", response.Kind)
	assert.Equal(t, "2026-03-02T10:00:00Z", response.StartTime)
	assert.Equal(t, "2026-03-02T12:00:00Z", response.EndTime)
	assert.Equal(t, "50.00", response.UnitPrice)
	assert.Equal(t, "2", response.Hours)
	assert.Equal(t, "100", response.Pricing.Base)
	assert.Equal(t, "20", response.Pricing.Discount)
	assert.Equal(t, "80.00", response.Pricing.Total)
	assert.True(t, response.Pricing.MembershipApplied)
	assert.Equal(t, "pending", response.Status)
	assert.Equal(t, "p-1", response.CreatedBy)
	assert.Empty(t, response.SessionID)
}

func TestReservationResponse_FromModel_Purchase(t *testing.T) {
	reservation := model.Reservation{
		ID:        "r-2",
		Kind:      lifecycle.KindAccessoryBuy,
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("12.5"),
		Total:     decimal.RequireFromString("37.5"),
		Status:    lifecycle.StatusPaid,
	}

	var response dto.ReservationResponse
	response.FromModel(reservation)

	assert.Empty(t, response.StartTime)
	assert.Empty(t, response.Hours)
	assert.Equal(t, 3, response.Quantity)
	assert.Equal(t, "37.50", response.Pricing.Total)
}

func TestGetReservationsResponse_FromModels(t *testing.T) {
	reservations := []model.Reservation{
		{ID: "r-1", Kind: lifecycle.KindFacility, Status: lifecycle.StatusPending},
		{ID: "r-2", Kind: lifecycle.KindAccessoryBuy, Status: lifecycle.StatusPaid},
	}

	var response dto.GetReservationsResponse
	response.FromModels(reservations, 21, 10)

	assert.Len(t, response.Reservations, 2)
	assert.Equal(t, 21, response.TotalData)
	assert.Equal(t, 3, response.TotalPage)
	assert.Equal(t, "r-2", response.Reservations[1].ID)
}

func TestListFilter_Group(t *testing.T) {
	group := dto.ListFilter{Kind: "facility"}.Group("p-1")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(player_id = :player_id AND kind = :kind)", where)
	assert.Equal(t, map[string]any{"player_id": "p-1", "kind": "facility"}, args)
}

func TestScheduleResponse_FromModels(t *testing.T) {
	timezone.Use(time.UTC)

	window, err := timewindow.New(at(0, 0), at(23, 0))
	require.NoError(t, err)

	held, err := timewindow.New(at(10, 0), at(11, 0))
	require.NoError(t, err)

	pending := model.Reservation{ID: "r-1", Kind: lifecycle.KindFacility, Status: lifecycle.StatusPending, Quantity: 1}
	pending.SetInterval(held)

	cancelled := model.Reservation{ID: "r-2", Kind: lifecycle.KindFacility, Status: lifecycle.StatusCancelled, Quantity: 1}
	cancelled.SetInterval(held)

	var response dto.ScheduleResponse
	response.FromModels("f-1", window, []model.Reservation{pending, cancelled})

	assert.Equal(t, "f-1", response.ResourceID)
	assert.Equal(t, "2026-03-02T00:00:00Z", response.From)
	require.Len(t, response.Busy, 1)
	assert.Equal(t, "2026-03-02T10:00:00Z", response.Busy[0].StartTime)
	assert.Equal(t, "pending", response.Busy[0].Status)
}

func TestNewEvent(t *testing.T) {
	reservation := model.Reservation{
		ID:         "r-1",
		Kind:       lifecycle.KindCoachClass,
		ResourceID: "coach-1",
		ClubID:     "c-1",
		PlayerID:   "p-1",
		Status:     lifecycle.StatusCancelled,
		Total:      decimal.RequireFromString("50"),
	}

	event := dto.NewEvent(reservation, "p-1")

	assert.Equal(t, "r-1", event.ReservationID)
	assert.Equal(t, "coach_class", event.Kind)
	assert.Equal(t, "cancelled", event.Status)
	assert.Equal(t, "50.00", event.Total)
	assert.Equal(t, "p-1", event.Actor)
	assert.NotEmpty(t, event.OccurredAt)
}
