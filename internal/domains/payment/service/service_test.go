package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sportshub/config"
	kafkaMocks "sportshub/infras/kafka/mocks"
	otelMocks "sportshub/infras/otel/mocks"
	txMocks "sportshub/infras/postgres/mocks"
	s3Mocks "sportshub/infras/s3/mocks"
	catalogMocks "sportshub/internal/domains/catalog/mocks"
	catalogModel "sportshub/internal/domains/catalog/model"
	paymentMocks "sportshub/internal/domains/payment/mocks"
	"sportshub/internal/domains/payment/model"
	"sportshub/internal/domains/payment/model/dto"
	"sportshub/internal/domains/payment/service"
	reservationMocks "sportshub/internal/domains/reservation/mocks"
	reservationModel "sportshub/internal/domains/reservation/model"
	"sportshub/internal/engine/lifecycle"
	"sportshub/internal/engine/settlement"
	"sportshub/shared"
	cacheMocks "sportshub/shared/cache/mocks"
	"sportshub/shared/constant"
	gDto "sportshub/shared/dto"
	"sportshub/shared/failure"
	gModel "sportshub/shared/model"
)

const (
	playerID      = "player-1"
	clubID        = "club-1"
	reservationID = "8f0c6f43-3f4e-4b8e-9a57-1d1c2b9f7e10"
)

type fixture struct {
	repo         *paymentMocks.MockPayment
	reservations *reservationMocks.MockReservation
	catalog      *catalogMocks.MockCatalog
	cache        *cacheMocks.MockRedisCache
	svc          service.Payment
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:         paymentMocks.NewMockPayment(ctrl),
		reservations: reservationMocks.NewMockReservation(ctrl),
		catalog:      catalogMocks.NewMockCatalog(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	storage := s3Mocks.NewMockS3(ctrl)
	storage.EXPECT().PutJSON(gomock.Any(), "receipts", gomock.Any(), gomock.Any()).Return("", nil).AnyTimes()

	kafka := kafkaMocks.NewMockClient(ctrl)
	kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Engine.DefaultPaymentMethod = "card"

	policy, err := settlement.NewPolicy("0.15", []string{"0.15", "0.20"})
	require.NoError(t, err)

	f.svc = service.New(
		f.repo,
		f.reservations,
		f.catalog,
		txMocks.NewTransactor(),
		policy,
		storage,
		kafka,
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

func pendingBooking(total string) reservationModel.Reservation {
	return reservationModel.Reservation{
		ID:         reservationID,
		Kind:       lifecycle.KindFacility,
		ResourceID: "facility-1",
		PlayerID:   playerID,
		ClubID:     clubID,
		Quantity:   1,
		Total:      decimal.RequireFromString(total),
		Status:     lifecycle.StatusPending,
	}
}

func clubWithRate(rate string) catalogModel.Club {
	club := catalogModel.Club{ID: clubID, Approved: true}
	if rate != "" {
		club.CommissionRate = decimal.NewNullDecimal(decimal.RequireFromString(rate))
	}

	return club
}

func TestPaymentService_Pay(t *testing.T) {
	tests := []struct {
		name            string
		ctx             context.Context
		method          string
		club            catalogModel.Club
		wantMethod      string
		wantRate        string
		wantAdminFee    string
		wantClubEarning string
	}{
		{
			name:            "default rate",
			ctx:             asPlayer(playerID),
			club:            clubWithRate(""),
			wantMethod:      "card",
			wantRate:        "0.15",
			wantAdminFee:    "12.00",
			wantClubEarning: "68.00",
		},
		{
			name:            "club rate",
			ctx:             asPlayer(playerID),
			club:            clubWithRate("0.20"),
			wantMethod:      "card",
			wantRate:        "0.2",
			wantAdminFee:    "16.00",
			wantClubEarning: "64.00",
		},
		{
			name:            "at desk cash payment",
			ctx:             asClub(clubID),
			method:          "cash",
			club:            clubWithRate("0.15"),
			wantMethod:      "cash",
			wantRate:        "0.15",
			wantAdminFee:    "12.00",
			wantClubEarning: "68.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			gomock.InOrder(
				f.reservations.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), reservationID).Return(pendingBooking("80"), true, nil),
				f.catalog.EXPECT().GetClubTx(gomock.Any(), gomock.Any(), clubID).Return(tt.club, true, nil),
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, p model.Payment) error {
						assert.Equal(t, "facility", p.PayableType)
						assert.Equal(t, reservationID, p.PayableID)
						assert.Equal(t, model.StatusPaid, p.Status)
						assert.True(t, p.AdminFee.Add(p.ClubEarning).Equal(p.Amount))

						return nil
					}),
				f.reservations.EXPECT().UpdateStatusTx(gomock.Any(), gomock.Any(), reservationID, lifecycle.StatusPaid, gomock.Any()).Return(nil),
			)

			res, err := f.svc.Pay(tt.ctx, dto.PayRequest{ReservationID: reservationID, Method: tt.method})

			require.NoError(t, err)
			assert.Equal(t, "paid", res.Reservation.Status)
			assert.Equal(t, "80.00", res.Payment.Amount)
			assert.Equal(t, tt.wantRate, res.Payment.CommissionRate)
			assert.Equal(t, tt.wantAdminFee, res.Payment.AdminFee)
			assert.Equal(t, tt.wantClubEarning, res.Payment.ClubEarning)
			assert.Equal(t, tt.wantMethod, res.Payment.Method)
		})
	}
}

func TestPaymentService_PayTwice(t *testing.T) {
	f := newFixture(t)

	row := pendingBooking("80")
	inserted := 0

	f.reservations.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), reservationID).
		DoAndReturn(func(context.Context, *sqlx.Tx, string) (reservationModel.Reservation, bool, error) {
			return row, true, nil
		}).Times(2)
	f.catalog.EXPECT().GetClubTx(gomock.Any(), gomock.Any(), clubID).Return(clubWithRate("0.15"), true, nil)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *sqlx.Tx, model.Payment) error {
			inserted++

			return nil
		})
	f.reservations.EXPECT().UpdateStatusTx(gomock.Any(), gomock.Any(), reservationID, lifecycle.StatusPaid, playerID).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ string, status lifecycle.Status, _ string) error {
			row.Status = status

			return nil
		})

	_, err := f.svc.Pay(asPlayer(playerID), dto.PayRequest{ReservationID: reservationID})
	require.NoError(t, err)

	_, err = f.svc.Pay(asPlayer(playerID), dto.PayRequest{ReservationID: reservationID})

	assert.Equal(t, failure.ReasonAlreadyPaid, failure.GetReason(err))
	assert.Equal(t, failure.CategoryStateConflict, failure.GetCategory(err))
	assert.Equal(t, 1, inserted)
}

func TestPaymentService_PayRejected(t *testing.T) {
	tests := []struct {
		name         string
		ctx          context.Context
		reservation  reservationModel.Reservation
		found        bool
		setupMock    func(f fixture)
		wantReason   string
		wantCategory failure.Category
	}{
		{
			name:         "unknown reservation",
			ctx:          asPlayer(playerID),
			wantReason:   failure.ReasonReservationNotFound,
			wantCategory: failure.CategoryNotFound,
		},
		{
			name:         "another player",
			ctx:          asPlayer("player-2"),
			reservation:  pendingBooking("80"),
			found:        true,
			wantReason:   failure.ReasonNotOwner,
			wantCategory: failure.CategoryForbidden,
		},
		{
			name: "cancelled",
			ctx:  asPlayer(playerID),
			reservation: func() reservationModel.Reservation {
				r := pendingBooking("80")
				r.Status = lifecycle.StatusCancelled

				return r
			}(),
			found:        true,
			wantReason:   failure.ReasonItemCancelled,
			wantCategory: failure.CategoryStateConflict,
		},
		{
			name:        "club not approved",
			ctx:         asPlayer(playerID),
			reservation: pendingBooking("80"),
			found:       true,
			setupMock: func(f fixture) {
				f.catalog.EXPECT().GetClubTx(gomock.Any(), gomock.Any(), clubID).Return(catalogModel.Club{ID: clubID}, true, nil)
			},
			wantReason:   failure.ReasonClubNotApproved,
			wantCategory: failure.CategoryForbidden,
		},
		{
			name:        "free reservation",
			ctx:         asPlayer(playerID),
			reservation: pendingBooking("0"),
			found:       true,
			setupMock: func(f fixture) {
				f.catalog.EXPECT().GetClubTx(gomock.Any(), gomock.Any(), clubID).Return(clubWithRate("0.15"), true, nil)
			},
			wantReason:   failure.ReasonInvalidAmount,
			wantCategory: failure.CategoryValidation,
		},
		{
			name:        "rate outside allowed set",
			ctx:         asPlayer(playerID),
			reservation: pendingBooking("80"),
			found:       true,
			setupMock: func(f fixture) {
				f.catalog.EXPECT().GetClubTx(gomock.Any(), gomock.Any(), clubID).Return(clubWithRate("0.5"), true, nil)
			},
			wantCategory: failure.CategoryInternal,
		},
		{
			name:        "unique index hit",
			ctx:         asPlayer(playerID),
			reservation: pendingBooking("80"),
			found:       true,
			setupMock: func(f fixture) {
				f.catalog.EXPECT().GetClubTx(gomock.Any(), gomock.Any(), clubID).Return(clubWithRate("0.15"), true, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(failure.StateConflict(failure.ReasonAlreadyPaid, "reservation is already paid"))
			},
			wantReason:   failure.ReasonAlreadyPaid,
			wantCategory: failure.CategoryStateConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.reservations.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), reservationID).Return(tt.reservation, tt.found, nil)

			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			_, err := f.svc.Pay(tt.ctx, dto.PayRequest{ReservationID: reservationID})

			require.Error(t, err)
			assert.Equal(t, tt.wantReason, failure.GetReason(err))
			assert.Equal(t, tt.wantCategory, failure.GetCategory(err))
		})
	}
}

func TestPaymentService_Get(t *testing.T) {
	payment := model.Payment{ID: "pay-1", PlayerID: playerID, ClubID: clubID, Amount: decimal.RequireFromString("80")}

	t.Run("payer", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), "pay-1").Return(payment, true, nil)

		res, err := f.svc.Get(asPlayer(playerID), "pay-1")

		require.NoError(t, err)
		assert.Equal(t, "80.00", res.Amount)
	})

	t.Run("other club", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), "pay-1").Return(payment, true, nil)

		_, err := f.svc.Get(asClub("club-2"), "pay-1")

		assert.Equal(t, failure.ReasonNotOwner, failure.GetReason(err))
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), "pay-9").Return(model.Payment{}, false, nil)

		_, err := f.svc.Get(asPlayer(playerID), "pay-9")

		assert.Equal(t, failure.ReasonPaymentNotFound, failure.GetReason(err))
	})
}

func TestPaymentService_Mine(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Payment, error) {
			assert.Equal(t, model.FieldPaidAt, params.SortBy)

			_, args := filter.GetWhereClause()
			assert.Equal(t, playerID, args[model.FieldPlayerID])

			return []model.Payment{{ID: "pay-1"}, {ID: "pay-2"}, {ID: "pay-3"}}, nil
		})

	res, err := f.svc.Mine(asPlayer(playerID), gDto.QueryParams{Page: 1, Limit: 10, SortBy: model.FieldPaidAt})

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalPage)
	assert.Len(t, res.Payments, 3)
}

func TestPaymentService_ClubEarnings(t *testing.T) {
	t.Run("aggregates per payable type", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "earnings:club-1", gomock.Any()).Return(errors.New("redis: nil"))
		f.cache.EXPECT().Save(gomock.Any(), "earnings:club-1", gomock.Any(), 60).Return(nil).AnyTimes()
		f.repo.EXPECT().Earnings(gomock.Any(), clubID).Return([]model.Earning{
			{
				PayableType: "accessory", Payments: 1,
				Gross: decimal.RequireFromString("30"), AdminFees: decimal.RequireFromString("4.5"), ClubEarnings: decimal.RequireFromString("25.5"),
			},
			{
				PayableType: "facility", Payments: 2,
				Gross: decimal.RequireFromString("180"), AdminFees: decimal.RequireFromString("27"), ClubEarnings: decimal.RequireFromString("153"),
			},
		}, nil)

		res, err := f.svc.ClubEarnings(asClub(clubID))

		require.NoError(t, err)
		assert.Equal(t, 3, res.Payments)
		assert.Equal(t, "210.00", res.Gross)
		assert.Equal(t, "31.50", res.AdminFees)
		assert.Equal(t, "178.50", res.ClubEarnings)
		require.Len(t, res.ByType, 2)
		assert.Equal(t, "4.50", res.ByType[0].AdminFees)
	})

	t.Run("player has no club", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ClubEarnings(asPlayer(playerID))

		assert.Equal(t, failure.ReasonNotOwner, failure.GetReason(err))
	})
}
