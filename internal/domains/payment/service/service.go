package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"sportshub/config"
	"sportshub/infras/kafka"
	"sportshub/infras/otel"
	"sportshub/infras/postgres"
	"sportshub/infras/s3"
	catalogRepo "sportshub/internal/domains/catalog/repository"
	"sportshub/internal/domains/payment/model"
	"sportshub/internal/domains/payment/model/dto"
	"sportshub/internal/domains/payment/repository"
	reservationModel "sportshub/internal/domains/reservation/model"
	reservationRepo "sportshub/internal/domains/reservation/repository"
	"sportshub/internal/engine/lifecycle"
	"sportshub/internal/engine/settlement"
	"sportshub/shared"
	"sportshub/shared/cache"
	"sportshub/shared/constant"
	gDto "sportshub/shared/dto"
	"sportshub/shared/failure"
	"sportshub/shared/timezone"
)

const receiptDirectory = "receipts"

var sortableColumns = []string{constant.FieldCreatedAt, model.FieldPaidAt, model.FieldAmount}

type Payment interface {
	Pay(ctx context.Context, req dto.PayRequest) (dto.PayResponse, error)
	Get(ctx context.Context, id string) (dto.PaymentResponse, error)
	Mine(ctx context.Context, params gDto.QueryParams) (dto.GetPaymentsResponse, error)
	ClubEarnings(ctx context.Context) (dto.EarningsResponse, error)
}

type serviceImpl struct {
	repo         repository.Payment
	reservations reservationRepo.Reservation
	catalog      catalogRepo.Catalog
	transactor   postgres.Transactor
	policy       settlement.Policy
	storage      s3.S3
	kafka        kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Payment,
	reservations reservationRepo.Reservation,
	catalog catalogRepo.Catalog,
	transactor postgres.Transactor,
	policy settlement.Policy,
	storage s3.S3,
	kafkaClient kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Payment {
	return &serviceImpl{
		repo:         repo,
		reservations: reservations,
		catalog:      catalog,
		transactor:   transactor,
		policy:       policy,
		storage:      storage,
		kafka:        kafkaClient,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Pay(ctx context.Context, req dto.PayRequest) (res dto.PayResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pay")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	requester := shared.RequesterFromContext(ctx)

	method := req.Method
	if method == "" {
		method = s.cfg.Engine.DefaultPaymentMethod
	}

	var (
		paid    reservationModel.Reservation
		payment model.Payment
	)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, found, err := s.reservations.GetForUpdateTx(ctx, tx, req.ReservationID)
		if err != nil {
			return fmt.Errorf("failed to lock reservation: %w", err)
		}

		if !found {
			return failure.NotFoundWithReason(failure.ReasonReservationNotFound, "reservation not found") // nolint:wrapcheck
		}

		if err := reservationModel.Authorize(requester, current.PlayerID, current.ClubID); err != nil {
			return err
		}

		next, err := lifecycle.Apply(current.Kind, current.Status, lifecycle.EventPay)
		if err != nil {
			return err
		}

		split, err := s.settle(ctx, tx, current)
		if err != nil {
			return err
		}

		now := timezone.Now()
		payment = model.New(uuid.NewString(), current, split, method, requester.ID, now)

		if err := s.repo.InsertTx(ctx, tx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		if err := s.reservations.UpdateStatusTx(ctx, tx, current.ID, next, requester.ID); err != nil {
			return fmt.Errorf("failed to update reservation status: %w", err)
		}

		current.Status = next
		current.ModifiedAt = now
		current.ModifiedBy = requester.ID
		paid = current

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("reservation_id", req.ReservationID).Msg("failed to pay reservation")

		return res, err
	}

	s.afterCommit(ctx, paid, payment, requester.ID)

	res.Reservation.FromModel(paid)
	res.Payment.FromModel(payment)

	return res, nil
}

// settle snapshots the club's commission rate and splits the reservation total.
func (s *serviceImpl) settle(ctx context.Context, tx *sqlx.Tx, r reservationModel.Reservation) (settlement.Split, error) {
	club, found, err := s.catalog.GetClubTx(ctx, tx, r.ClubID)
	if err != nil {
		return settlement.Split{}, fmt.Errorf("failed to get club: %w", err)
	}

	if !found {
		return settlement.Split{}, failure.NotFoundWithReason(failure.ReasonClubNotFound, "club not found") // nolint:wrapcheck
	}

	if !club.Approved {
		return settlement.Split{}, failure.ForbiddenWithReason(failure.ReasonClubNotApproved, "club is not approved") // nolint:wrapcheck
	}

	rate, err := s.policy.Resolve(club.Rate())
	if err != nil {
		return settlement.Split{}, err
	}

	return settlement.Settle(r.Total, rate)
}

// afterCommit archives the receipt, publishes reservation.paid and drops the
// club's cached earnings and the resource schedule. All of it is best effort.
func (s *serviceImpl) afterCommit(ctx context.Context, r reservationModel.Reservation, p model.Payment, actor string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache,
			shared.BuildCacheKey(constant.CachePrefixEarnings, p.ClubID),
			shared.BuildCacheKey(constant.CachePrefixSchedule, r.ResourceID),
		)

		event := dto.NewEvent(r, p, actor)

		if _, err := s.storage.PutJSON(c, receiptDirectory, p.ID+".json", event); err != nil {
			log.Error().Err(err).Str("payment_id", p.ID).Msg("failed to archive payment receipt")
		}

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Reservation, kafka.Message{
			Key:       r.ID,
			EventType: constant.EventReservationPaid,
			Value:     event,
		})
		if err != nil {
			log.Error().Err(err).Str("reservation_id", r.ID).Msg("failed to publish payment event")
		}
	}()
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payment, found, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if !found {
		return res, failure.NotFoundWithReason(failure.ReasonPaymentNotFound, "payment not found") // nolint:wrapcheck
	}

	if err = reservationModel.Authorize(shared.RequesterFromContext(ctx), payment.PlayerID, payment.ClubID); err != nil {
		return res, err
	}

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) Mine(ctx context.Context, params gDto.QueryParams) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MinePayments")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.And(gDto.Eq(model.FieldPlayerID, shared.RequesterFromContext(ctx).ID))

	params.Sanitize(sortableColumns...)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) ClubEarnings(ctx context.Context) (res dto.EarningsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ClubEarnings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	clubID := shared.RequesterFromContext(ctx).ClubID
	if clubID == "" {
		return res, failure.ForbiddenWithReason(failure.ReasonNotOwner, "requester does not manage a club") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(constant.CachePrefixEarnings, clubID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for club earnings")

		return res, nil
	}

	rows, err := s.repo.Earnings(ctx, clubID)
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate club earnings")

		return res, fmt.Errorf("failed to aggregate club earnings: %w", err)
	}

	res.FromModels(clubID, rows)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save club earnings to cache")
		}
	}()

	return res, nil
}
