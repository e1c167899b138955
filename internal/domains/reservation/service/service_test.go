package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sportshub/config"
	kafkaMocks "sportshub/infras/kafka/mocks"
	otelMocks "sportshub/infras/otel/mocks"
	txMocks "sportshub/infras/postgres/mocks"
	catalogMocks "sportshub/internal/domains/catalog/mocks"
	catalogModel "sportshub/internal/domains/catalog/model"
	reservationMocks "sportshub/internal/domains/reservation/mocks"
	"sportshub/internal/domains/reservation/model"
	"sportshub/internal/domains/reservation/model/dto"
	"sportshub/internal/domains/reservation/service"
	"sportshub/internal/engine/lifecycle"
	"sportshub/internal/engine/pricing"
	"sportshub/internal/engine/timewindow"
	"sportshub/shared"
	cacheMocks "sportshub/shared/cache/mocks"
	"sportshub/shared/constant"
	gDto "sportshub/shared/dto"
	"sportshub/shared/failure"
	gModel "sportshub/shared/model"
	"sportshub/shared/timezone"
)

const (
	playerID   = "player-1"
	clubID     = "club-1"
	facilityID = "facility-1"
	coachID    = "coach-1"
	sessionID  = "session-1"
	gearID     = "racket-1"
)

type fixture struct {
	repo    *reservationMocks.MockReservation
	catalog *catalogMocks.MockCatalog
	cache   *cacheMocks.MockRedisCache
	kafka   *kafkaMocks.MockClient
	svc     service.Reservation
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	timezone.Use(time.UTC)

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:    reservationMocks.NewMockReservation(ctrl),
		catalog: catalogMocks.NewMockCatalog(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
		kafka:   kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Engine.MaxBookingHours = 8
	cfg.Engine.MaxRentalHours = 24
	cfg.Kafka.Topics.Reservation = "sportshub.reservation"

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(
		f.repo,
		f.catalog,
		txMocks.NewTransactor(),
		pricing.NewCalculator(decimal.RequireFromString("0.20")),
		f.kafka,
		cfg,
		f.cache,
		otelMocks.NewOtel(),
	)

	return f
}

func asPlayer(id string) context.Context {
	return shared.WithRequester(context.Background(), gModel.Requester{ID: id, Role: constant.RolePlayer})
}

func asClub(id string) context.Context {
	return shared.WithRequester(context.Background(), gModel.Requester{ID: "desk", Role: constant.RoleClub, ClubID: id})
}

func approvedClub() catalogModel.Club {
	return catalogModel.Club{ID: clubID, Approved: true}
}

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func qty(n int) *int {
	return &n
}

func booking(id string, start, end string, status lifecycle.Status) model.Reservation {
	s, _ := time.Parse(time.RFC3339, start)
	e, _ := time.Parse(time.RFC3339, end)

	r := model.Reservation{ID: id, Kind: lifecycle.KindFacility, ResourceID: facilityID, Quantity: 1, Status: status}
	r.SetInterval(timewindow.Interval{Start: s, End: e})

	return r
}

func TestReservationService_CreateFacility(t *testing.T) {
	req := dto.CreateReservationRequest{
		Kind:       string(lifecycle.KindFacility),
		ResourceID: facilityID,
		StartTime:  "2025-03-10T10:00:00Z",
		EndTime:    "2025-03-10T12:00:00Z",
	}

	tests := []struct {
		name         string
		member       bool
		existing     []model.Reservation
		club         catalogModel.Club
		wantTotal    string
		wantDiscount string
		wantReason   string
	}{
		{name: "non member", club: approvedClub(), wantTotal: "100.00", wantDiscount: "0"},
		{name: "member", member: true, club: approvedClub(), wantTotal: "80.00", wantDiscount: "20"},
		{
			name:       "one minute overlap",
			existing:   []model.Reservation{booking("other", "2025-03-10T11:59:00Z", "2025-03-10T13:00:00Z", lifecycle.StatusPending)},
			club:       approvedClub(),
			wantReason: failure.ReasonSlotTaken,
		},
		{
			name:      "back to back with paid booking",
			existing:  []model.Reservation{booking("other", "2025-03-10T08:00:00Z", "2025-03-10T10:00:00Z", lifecycle.StatusPaid)},
			club:      approvedClub(),
			wantTotal: "100.00", wantDiscount: "0",
		},
		{
			name:       "club not approved",
			club:       catalogModel.Club{ID: clubID},
			wantReason: failure.ReasonClubNotApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			gomock.InOrder(
				f.catalog.EXPECT().GetPlayerTx(gomock.Any(), gomock.Any(), playerID).
					Return(catalogModel.Player{ID: playerID, IsMember: tt.member}, true, nil),
				f.catalog.EXPECT().LockFacilityTx(gomock.Any(), gomock.Any(), facilityID).
					Return(catalogModel.Facility{ID: facilityID, ClubID: clubID, Sport: "futsal", HourlyPrice: d("50")}, true, nil),
				f.repo.EXPECT().ListHoldingTx(gomock.Any(), gomock.Any(), facilityID, lifecycle.KindFacility, gomock.Any(), gomock.Any()).
					Return(tt.existing, nil),
			)

			if tt.wantReason != failure.ReasonSlotTaken {
				f.catalog.EXPECT().GetClubTx(gomock.Any(), gomock.Any(), clubID).Return(tt.club, true, nil)
			}

			if tt.wantReason == "" {
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, r model.Reservation) error {
						assert.Equal(t, lifecycle.StatusPending, r.Status)
						assert.Equal(t, playerID, r.PlayerID)
						assert.Equal(t, clubID, r.ClubID)
						assert.True(t, r.Base.Equal(d("100")))

						return nil
					})
			}

			res, err := f.svc.Create(asPlayer(playerID), req)

			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.Pricing.Total)
			assert.Equal(t, tt.wantDiscount, res.Pricing.Discount)
			assert.Equal(t, tt.member, res.Pricing.MembershipApplied)
			assert.Equal(t, "2", res.Hours)
			assert.Equal(t, "pending", res.Status)
		})
	}
}

func TestReservationService_CreateFacility_FractionalHoursRoundTrip(t *testing.T) {
	f := newFixture(t)

	req := dto.CreateReservationRequest{
		Kind:       string(lifecycle.KindFacility),
		ResourceID: facilityID,
		StartTime:  "2025-03-10T10:00:00Z",
		EndTime:    "2025-03-10T10:20:00Z",
	}

	var stored model.Reservation

	f.catalog.EXPECT().GetPlayerTx(gomock.Any(), gomock.Any(), playerID).
		Return(catalogModel.Player{ID: playerID, IsMember: true}, true, nil)
	f.catalog.EXPECT().LockFacilityTx(gomock.Any(), gomock.Any(), facilityID).
		Return(catalogModel.Facility{ID: facilityID, ClubID: clubID, Sport: "futsal", HourlyPrice: d("50")}, true, nil)
	f.repo.EXPECT().ListHoldingTx(gomock.Any(), gomock.Any(), facilityID, lifecycle.KindFacility, gomock.Any(), gomock.Any()).
		Return(nil, nil)
	f.catalog.EXPECT().GetClubTx(gomock.Any(), gomock.Any(), clubID).Return(approvedClub(), true, nil)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, r model.Reservation) error {
			stored = r

			return nil
		})

	created, err := f.svc.Create(asPlayer(playerID), req)
	require.NoError(t, err)

	// base and discount are persisted unrounded, so the stored total is reproducible
	assert.Less(t, stored.Base.Exponent(), int32(-2))
	assert.Less(t, stored.Discount.Exponent(), int32(-2))
	assert.True(t, stored.Total.Equal(d("13.33")))
	assert.True(t, stored.Total.Equal(stored.Base.Sub(stored.Discount).Round(2)))

	f.repo.EXPECT().Get(gomock.Any(), stored.ID).Return(stored, true, nil)

	read, err := f.svc.Get(asPlayer(playerID), stored.ID)
	require.NoError(t, err)

	assert.Equal(t, created.Pricing, read.Pricing)
	assert.Equal(t, created.Hours, read.Hours)
	assert.Equal(t, "13.33", read.Pricing.Total)
}

func TestReservationService_CreateValidation(t *testing.T) {
	tests := []struct {
		name       string
		req        dto.CreateReservationRequest
		wantReason string
	}{
		{
			name:       "unknown kind",
			req:        dto.CreateReservationRequest{Kind: "sauna", ResourceID: facilityID},
			wantReason: failure.ReasonInvalidKind,
		},
		{
			name:       "missing interval",
			req:        dto.CreateReservationRequest{Kind: "facility", ResourceID: facilityID},
			wantReason: failure.ReasonMissingField,
		},
		{
			name: "inverted interval",
			req: dto.CreateReservationRequest{
				Kind: "facility", ResourceID: facilityID,
				StartTime: "2025-03-10T12:00:00Z", EndTime: "2025-03-10T10:00:00Z",
			},
			wantReason: failure.ReasonInvalidInterval,
		},
		{
			name: "facility over eight hours",
			req: dto.CreateReservationRequest{
				Kind: "facility", ResourceID: facilityID,
				StartTime: "2025-03-10T08:00:00Z", EndTime: "2025-03-10T16:30:00Z",
			},
			wantReason: failure.ReasonInvalidDuration,
		},
		{
			name: "rental over a day",
			req: dto.CreateReservationRequest{
				Kind: "accessory_rent", ResourceID: gearID, Quantity: qty(1),
				StartTime: "2025-03-10T08:00:00Z", EndTime: "2025-03-11T09:00:00Z",
			},
			wantReason: failure.ReasonInvalidDuration,
		},
		{
			name:       "class without session",
			req:        dto.CreateReservationRequest{Kind: "coach_class", ResourceID: coachID},
			wantReason: failure.ReasonMissingField,
		},
		{
			name:       "zero quantity",
			req:        dto.CreateReservationRequest{Kind: "accessory_buy", ResourceID: gearID, Quantity: qty(0)},
			wantReason: failure.ReasonInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.Create(asPlayer(playerID), tt.req)

			assert.Equal(t, tt.wantReason, failure.GetReason(err))
			assert.Equal(t, failure.CategoryValidation, failure.GetCategory(err))
		})
	}
}

func TestReservationService_CreatePersonal(t *testing.T) {
	monday := []catalogModel.AvailabilityWindow{
		{ID: "w-1", CoachID: coachID, WeeklyWindow: timewindow.WeeklyWindow{Day: time.Monday, StartMinute: 9 * 60, EndMinute: 17 * 60}},
	}
	coach := catalogModel.Coach{
		ID: coachID, ClubID: clubID, Sport: "tennis", Active: true,
		PersonalEnabled: true, PersonalRate: d("40"),
	}

	t.Run("inside window", func(t *testing.T) {
		f := newFixture(t)

		f.catalog.EXPECT().GetPlayerTx(gomock.Any(), gomock.Any(), playerID).Return(catalogModel.Player{ID: playerID, IsMember: true}, true, nil)
		f.catalog.EXPECT().LockCoachTx(gomock.Any(), gomock.Any(), coachID).Return(coach, true, nil)
		f.catalog.EXPECT().ListWindowsTx(gomock.Any(), gomock.Any(), coachID).Return(monday, nil)
		f.repo.EXPECT().ListHoldingTx(gomock.Any(), gomock.Any(), coachID, lifecycle.KindCoachPersonal, gomock.Any(), gomock.Any()).Return(nil, nil)
		f.catalog.EXPECT().GetClubTx(gomock.Any(), gomock.Any(), clubID).Return(approvedClub(), true, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Create(asPlayer(playerID), dto.CreateReservationRequest{
			Kind: "coach_personal", ResourceID: coachID,
			StartTime: "2025-03-10T15:30:00Z", EndTime: "2025-03-10T17:00:00Z",
		})

		require.NoError(t, err)
		assert.Equal(t, "60.00", res.Pricing.Total)
		assert.False(t, res.Pricing.MembershipApplied)
	})

	t.Run("outside window", func(t *testing.T) {
		f := newFixture(t)

		f.catalog.EXPECT().GetPlayerTx(gomock.Any(), gomock.Any(), playerID).Return(catalogModel.Player{ID: playerID}, true, nil)
		f.catalog.EXPECT().LockCoachTx(gomock.Any(), gomock.Any(), coachID).Return(coach, true, nil)
		f.catalog.EXPECT().ListWindowsTx(gomock.Any(), gomock.Any(), coachID).Return(monday, nil)

		_, err := f.svc.Create(asPlayer(playerID), dto.CreateReservationRequest{
			Kind: "coach_personal", ResourceID: coachID,
			StartTime: "2025-03-10T16:30:00Z", EndTime: "2025-03-10T17:30:00Z",
		})

		assert.Equal(t, failure.ReasonOutsideAvailability, failure.GetReason(err))
	})

	t.Run("personal sessions disabled", func(t *testing.T) {
		f := newFixture(t)

		disabled := coach
		disabled.PersonalEnabled = false

		f.catalog.EXPECT().GetPlayerTx(gomock.Any(), gomock.Any(), playerID).Return(catalogModel.Player{ID: playerID}, true, nil)
		f.catalog.EXPECT().LockCoachTx(gomock.Any(), gomock.Any(), coachID).Return(disabled, true, nil)

		_, err := f.svc.Create(asPlayer(playerID), dto.CreateReservationRequest{
			Kind: "coach_personal", ResourceID: coachID,
			StartTime: "2025-03-10T10:00:00Z", EndTime: "2025-03-10T11:00:00Z",
		})

		assert.Equal(t, failure.ReasonOfferingDisabled, failure.GetReason(err))
	})
}

func TestReservationService_CreateClass(t *testing.T) {
	coach := catalogModel.Coach{ID: coachID, ClubID: clubID, Sport: "badminton", Active: true, ClassEnabled: true, ClassPrice: d("15")}
	start := time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)
	req := dto.CreateReservationRequest{Kind: "coach_class", ResourceID: coachID, SessionID: sessionID, Quantity: qty(2)}

	t.Run("nine of ten plus two", func(t *testing.T) {
		f := newFixture(t)

		f.catalog.EXPECT().GetPlayerTx(gomock.Any(), gomock.Any(), playerID).Return(catalogModel.Player{ID: playerID}, true, nil)
		f.catalog.EXPECT().GetCoachTx(gomock.Any(), gomock.Any(), coachID).Return(coach, true, nil)
		f.catalog.EXPECT().LockSessionTx(gomock.Any(), gomock.Any(), sessionID).Return(catalogModel.ClassSession{
			ID: sessionID, CoachID: coachID, StartAt: start, EndAt: start.Add(time.Hour), MaxCapacity: 10, BookedCount: 9, Active: true,
		}, true, nil)

		_, err := f.svc.Create(asPlayer(playerID), req)

		assert.Equal(t, failure.ReasonCapacityExceeded, failure.GetReason(err))
		assert.Equal(t, failure.CategoryConflict, failure.GetCategory(err))
	})

	t.Run("seats taken under lock", func(t *testing.T) {
		f := newFixture(t)

		f.catalog.EXPECT().GetPlayerTx(gomock.Any(), gomock.Any(), playerID).Return(catalogModel.Player{ID: playerID}, true, nil)
		f.catalog.EXPECT().GetCoachTx(gomock.Any(), gomock.Any(), coachID).Return(coach, true, nil)
		gomock.InOrder(
			f.catalog.EXPECT().LockSessionTx(gomock.Any(), gomock.Any(), sessionID).Return(catalogModel.ClassSession{
				ID: sessionID, CoachID: coachID, StartAt: start, EndAt: start.Add(time.Hour), MaxCapacity: 10, BookedCount: 3, Active: true,
			}, true, nil),
			f.catalog.EXPECT().UpdateSessionBookedTx(gomock.Any(), gomock.Any(), sessionID, 5, playerID).Return(nil),
		)
		f.catalog.EXPECT().GetClubTx(gomock.Any(), gomock.Any(), clubID).Return(approvedClub(), true, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Create(asPlayer(playerID), req)

		require.NoError(t, err)
		assert.Equal(t, "30.00", res.Pricing.Total)
		assert.Equal(t, sessionID, res.SessionID)
		assert.Equal(t, 2, res.Quantity)
	})

	t.Run("session of another coach", func(t *testing.T) {
		f := newFixture(t)

		f.catalog.EXPECT().GetPlayerTx(gomock.Any(), gomock.Any(), playerID).Return(catalogModel.Player{ID: playerID}, true, nil)
		f.catalog.EXPECT().GetCoachTx(gomock.Any(), gomock.Any(), coachID).Return(coach, true, nil)
		f.catalog.EXPECT().LockSessionTx(gomock.Any(), gomock.Any(), sessionID).Return(catalogModel.ClassSession{ID: sessionID, CoachID: "coach-2"}, true, nil)

		_, err := f.svc.Create(asPlayer(playerID), req)

		assert.Equal(t, failure.ReasonResourceNotFound, failure.GetReason(err))
	})
}

func TestReservationService_CreateAccessory(t *testing.T) {
	racket := catalogModel.Accessory{
		ID: gearID, ClubID: clubID, Sport: "tennis", Active: true,
		RentEnabled: true, RentHourlyRate: d("5"), BuyEnabled: true, BuyPrice: d("12.5"), Stock: 3,
	}

	t.Run("rent two for three hours", func(t *testing.T) {
		f := newFixture(t)

		f.catalog.EXPECT().GetPlayerTx(gomock.Any(), gomock.Any(), playerID).Return(catalogModel.Player{ID: playerID, IsMember: true}, true, nil)
		f.catalog.EXPECT().LockAccessoryTx(gomock.Any(), gomock.Any(), gearID).Return(racket, true, nil)
		f.repo.EXPECT().ListHoldingTx(gomock.Any(), gomock.Any(), gearID, lifecycle.KindAccessoryRent, gomock.Any(), gomock.Any()).Return(nil, nil)
		f.catalog.EXPECT().GetClubTx(gomock.Any(), gomock.Any(), clubID).Return(approvedClub(), true, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Create(asPlayer(playerID), dto.CreateReservationRequest{
			Kind: "accessory_rent", ResourceID: gearID, Quantity: qty(2),
			StartTime: "2025-03-10T09:00:00Z", EndTime: "2025-03-10T12:00:00Z",
		})

		require.NoError(t, err)
		assert.Equal(t, "30.00", res.Pricing.Total)
		assert.Equal(t, "0", res.Pricing.Discount)
	})

	t.Run("rentals exceed stock for the period", func(t *testing.T) {
		f := newFixture(t)

		out := model.Reservation{ID: "r-out", Kind: lifecycle.KindAccessoryRent, Quantity: 2, Status: lifecycle.StatusPaid}
		out.SetInterval(timewindow.Interval{
			Start: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC),
		})

		f.catalog.EXPECT().GetPlayerTx(gomock.Any(), gomock.Any(), playerID).Return(catalogModel.Player{ID: playerID}, true, nil)
		f.catalog.EXPECT().LockAccessoryTx(gomock.Any(), gomock.Any(), gearID).Return(racket, true, nil)
		f.repo.EXPECT().ListHoldingTx(gomock.Any(), gomock.Any(), gearID, lifecycle.KindAccessoryRent, gomock.Any(), gomock.Any()).
			Return([]model.Reservation{out}, nil)

		_, err := f.svc.Create(asPlayer(playerID), dto.CreateReservationRequest{
			Kind: "accessory_rent", ResourceID: gearID, Quantity: qty(2),
			StartTime: "2025-03-10T09:00:00Z", EndTime: "2025-03-10T12:00:00Z",
		})

		assert.Equal(t, failure.ReasonInsufficientStock, failure.GetReason(err))
	})

	t.Run("buy decrements stock", func(t *testing.T) {
		f := newFixture(t)

		f.catalog.EXPECT().GetPlayerTx(gomock.Any(), gomock.Any(), playerID).Return(catalogModel.Player{ID: playerID}, true, nil)
		f.catalog.EXPECT().LockAccessoryTx(gomock.Any(), gomock.Any(), gearID).Return(racket, true, nil)
		f.catalog.EXPECT().UpdateAccessoryStockTx(gomock.Any(), gomock.Any(), gearID, 0, playerID).Return(nil)
		f.catalog.EXPECT().GetClubTx(gomock.Any(), gomock.Any(), clubID).Return(approvedClub(), true, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Create(asPlayer(playerID), dto.CreateReservationRequest{Kind: "accessory_buy", ResourceID: gearID, Quantity: qty(3)})

		require.NoError(t, err)
		assert.Equal(t, "37.50", res.Pricing.Total)
		assert.Empty(t, res.StartTime)
	})

	t.Run("buy more than stock", func(t *testing.T) {
		f := newFixture(t)

		f.catalog.EXPECT().GetPlayerTx(gomock.Any(), gomock.Any(), playerID).Return(catalogModel.Player{ID: playerID}, true, nil)
		f.catalog.EXPECT().LockAccessoryTx(gomock.Any(), gomock.Any(), gearID).Return(racket, true, nil)

		_, err := f.svc.Create(asPlayer(playerID), dto.CreateReservationRequest{Kind: "accessory_buy", ResourceID: gearID, Quantity: qty(4)})

		assert.Equal(t, failure.ReasonInsufficientStock, failure.GetReason(err))
	})

	t.Run("not for sale", func(t *testing.T) {
		f := newFixture(t)

		rentOnly := racket
		rentOnly.BuyEnabled = false

		f.catalog.EXPECT().GetPlayerTx(gomock.Any(), gomock.Any(), playerID).Return(catalogModel.Player{ID: playerID}, true, nil)
		f.catalog.EXPECT().LockAccessoryTx(gomock.Any(), gomock.Any(), gearID).Return(rentOnly, true, nil)

		_, err := f.svc.Create(asPlayer(playerID), dto.CreateReservationRequest{Kind: "accessory_buy", ResourceID: gearID})

		assert.Equal(t, failure.ReasonOfferingDisabled, failure.GetReason(err))
	})
}

func TestReservationService_Cancel(t *testing.T) {
	pending := booking("r-1", "2025-03-10T10:00:00Z", "2025-03-10T12:00:00Z", lifecycle.StatusPending)
	pending.PlayerID = playerID
	pending.ClubID = clubID

	t.Run("owner cancels pending", func(t *testing.T) {
		f := newFixture(t)

		gomock.InOrder(
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "r-1").Return(pending, true, nil),
			f.repo.EXPECT().UpdateStatusTx(gomock.Any(), gomock.Any(), "r-1", lifecycle.StatusCancelled, playerID).Return(nil),
		)

		res, err := f.svc.Cancel(asPlayer(playerID), "r-1")

		require.NoError(t, err)
		assert.Equal(t, "cancelled", res.Status)
	})

	t.Run("club cancels pending", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "r-1").Return(pending, true, nil)
		f.repo.EXPECT().UpdateStatusTx(gomock.Any(), gomock.Any(), "r-1", lifecycle.StatusCancelled, "desk").Return(nil)

		_, err := f.svc.Cancel(asClub(clubID), "r-1")

		require.NoError(t, err)
	})

	t.Run("paid cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)

		paid := pending
		paid.Status = lifecycle.StatusPaid

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "r-1").Return(paid, true, nil)

		_, err := f.svc.Cancel(asPlayer(playerID), "r-1")

		assert.Equal(t, failure.ReasonCannotCancelPaid, failure.GetReason(err))
		assert.Equal(t, failure.CategoryStateConflict, failure.GetCategory(err))
	})

	t.Run("another player", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "r-1").Return(pending, true, nil)

		_, err := f.svc.Cancel(asPlayer("player-2"), "r-1")

		assert.Equal(t, failure.ReasonNotOwner, failure.GetReason(err))
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "r-9").Return(model.Reservation{}, false, nil)

		_, err := f.svc.Cancel(asPlayer(playerID), "r-9")

		assert.Equal(t, failure.ReasonReservationNotFound, failure.GetReason(err))
	})

	t.Run("class cancel restores seats", func(t *testing.T) {
		f := newFixture(t)

		session := sessionID
		class := model.Reservation{
			ID: "r-2", Kind: lifecycle.KindCoachClass, ResourceID: coachID, SessionID: &session,
			PlayerID: playerID, ClubID: clubID, Quantity: 2, Status: lifecycle.StatusPending,
		}

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "r-2").Return(class, true, nil)
		f.catalog.EXPECT().LockSessionTx(gomock.Any(), gomock.Any(), sessionID).
			Return(catalogModel.ClassSession{ID: sessionID, MaxCapacity: 10, BookedCount: 10}, true, nil)
		f.catalog.EXPECT().UpdateSessionBookedTx(gomock.Any(), gomock.Any(), sessionID, 8, playerID).Return(nil)
		f.repo.EXPECT().UpdateStatusTx(gomock.Any(), gomock.Any(), "r-2", lifecycle.StatusCancelled, playerID).Return(nil)

		_, err := f.svc.Cancel(asPlayer(playerID), "r-2")

		require.NoError(t, err)
	})

	t.Run("purchase cancel restores stock", func(t *testing.T) {
		f := newFixture(t)

		order := model.Reservation{
			ID: "r-3", Kind: lifecycle.KindAccessoryBuy, ResourceID: gearID,
			PlayerID: playerID, ClubID: clubID, Quantity: 2, Status: lifecycle.StatusPending,
		}

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "r-3").Return(order, true, nil)
		f.catalog.EXPECT().LockAccessoryTx(gomock.Any(), gomock.Any(), gearID).Return(catalogModel.Accessory{ID: gearID, Stock: 1}, true, nil)
		f.catalog.EXPECT().UpdateAccessoryStockTx(gomock.Any(), gomock.Any(), gearID, 3, playerID).Return(nil)
		f.repo.EXPECT().UpdateStatusTx(gomock.Any(), gomock.Any(), "r-3", lifecycle.StatusCancelled, playerID).Return(nil)

		_, err := f.svc.Cancel(asPlayer(playerID), "r-3")

		require.NoError(t, err)
	})
}

func TestReservationService_Return(t *testing.T) {
	rental := model.Reservation{
		ID: "r-4", Kind: lifecycle.KindAccessoryRent, ResourceID: gearID,
		PlayerID: playerID, ClubID: clubID, Quantity: 1, Status: lifecycle.StatusPaid,
	}

	t.Run("club marks returned", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "r-4").Return(rental, true, nil)
		f.repo.EXPECT().UpdateStatusTx(gomock.Any(), gomock.Any(), "r-4", lifecycle.StatusReturned, "desk").Return(nil)

		res, err := f.svc.Return(asClub(clubID), "r-4")

		require.NoError(t, err)
		assert.Equal(t, "returned", res.Status)
	})

	t.Run("player cannot mark returned", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "r-4").Return(rental, true, nil)

		_, err := f.svc.Return(asPlayer(playerID), "r-4")

		assert.Equal(t, failure.ReasonNotOwner, failure.GetReason(err))
	})

	t.Run("unpaid rental", func(t *testing.T) {
		f := newFixture(t)

		unpaid := rental
		unpaid.Status = lifecycle.StatusPending

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "r-4").Return(unpaid, true, nil)

		_, err := f.svc.Return(asClub(clubID), "r-4")

		assert.Equal(t, failure.ReasonNotPaid, failure.GetReason(err))
	})

	t.Run("database error", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "r-4").Return(model.Reservation{}, false, errors.New("connection reset"))

		_, err := f.svc.Return(asClub(clubID), "r-4")

		assert.Error(t, err)
		assert.Equal(t, failure.CategoryInternal, failure.GetCategory(err))
	})
}

func TestReservationService_GetAndMine(t *testing.T) {
	r := booking("r-1", "2025-03-10T10:00:00Z", "2025-03-10T12:00:00Z", lifecycle.StatusPaid)
	r.PlayerID = playerID
	r.ClubID = clubID
	r.Total = d("100")

	t.Run("get as owning club", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), "r-1").Return(r, true, nil)

		res, err := f.svc.Get(asClub(clubID), "r-1")

		require.NoError(t, err)
		assert.Equal(t, "100.00", res.Pricing.Total)
		assert.Equal(t, "2025-03-10T10:00:00Z", res.StartTime)
	})

	t.Run("get as stranger", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), "r-1").Return(r, true, nil)

		_, err := f.svc.Get(asClub("club-2"), "r-1")

		assert.Equal(t, failure.ReasonNotOwner, failure.GetReason(err))
	})

	t.Run("mine sanitizes sorting", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
				assert.Equal(t, constant.DefaultValueSortBy, params.SortBy)

				where, args := filter.GetWhereClause()
				assert.Equal(t, "(player_id = :player_id AND status = :status)", where)
				assert.Equal(t, playerID, args["player_id"])

				return []model.Reservation{r}, nil
			})

		res, err := f.svc.Mine(asPlayer(playerID), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "1; DROP TABLE"}, dto.ListFilter{Status: "paid"})

		require.NoError(t, err)
		assert.Equal(t, 2, res.TotalPage)
		assert.Len(t, res.Reservations, 1)
	})
}

func TestReservationService_Schedule(t *testing.T) {
	req := dto.ScheduleRequest{From: "2025-03-10T00:00:00Z", To: "2025-03-11T00:00:00Z"}

	t.Run("cache miss", func(t *testing.T) {
		f := newFixture(t)

		cancelled := booking("r-2", "2025-03-10T14:00:00Z", "2025-03-10T15:00:00Z", lifecycle.StatusCancelled)
		paid := booking("r-1", "2025-03-10T10:00:00Z", "2025-03-10T12:00:00Z", lifecycle.StatusPaid)

		f.cache.EXPECT().Get(gomock.Any(), "schedule:facility-1?from=2025-03-10T00:00:00Z&to=2025-03-11T00:00:00Z", gomock.Any()).
			Return(errors.New("redis: nil"))
		f.repo.EXPECT().ListSchedule(gomock.Any(), facilityID, gomock.Any(), gomock.Any()).Return([]model.Reservation{paid, cancelled}, nil)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 60).Return(nil).AnyTimes()

		res, err := f.svc.Schedule(context.Background(), facilityID, req)

		require.NoError(t, err)
		require.Len(t, res.Busy, 1)
		assert.Equal(t, "2025-03-10T10:00:00Z", res.Busy[0].StartTime)
	})

	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Schedule(context.Background(), facilityID, req)

		require.NoError(t, err)
	})

	t.Run("window too wide", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Schedule(context.Background(), facilityID, dto.ScheduleRequest{From: "2025-03-01T00:00:00Z", To: "2025-05-01T00:00:00Z"})

		assert.Equal(t, failure.ReasonInvalidDuration, failure.GetReason(err))
	})
}
