package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"sportshub/config"
	"sportshub/infras/kafka"
	"sportshub/infras/otel"
	"sportshub/infras/postgres"
	catalogModel "sportshub/internal/domains/catalog/model"
	catalogRepo "sportshub/internal/domains/catalog/repository"
	"sportshub/internal/domains/reservation/model"
	"sportshub/internal/domains/reservation/model/dto"
	"sportshub/internal/domains/reservation/repository"
	"sportshub/internal/engine/capacity"
	"sportshub/internal/engine/conflict"
	"sportshub/internal/engine/lifecycle"
	"sportshub/internal/engine/pricing"
	"sportshub/internal/engine/timewindow"
	"sportshub/shared"
	"sportshub/shared/cache"
	"sportshub/shared/constant"
	gDto "sportshub/shared/dto"
	"sportshub/shared/failure"
	gModel "sportshub/shared/model"
	"sportshub/shared/timezone"
)

const maxScheduleWindow = 31 * 24 * time.Hour

var sortableColumns = []string{constant.FieldCreatedAt, model.FieldStartAt, model.FieldTotal, model.FieldStatus}

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id string) (dto.ReservationResponse, error)
	Return(ctx context.Context, id string) (dto.ReservationResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Mine(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (dto.GetReservationsResponse, error)
	Schedule(ctx context.Context, resourceID string, req dto.ScheduleRequest) (dto.ScheduleResponse, error)
}

type serviceImpl struct {
	repo       repository.Reservation
	catalog    catalogRepo.Catalog
	transactor postgres.Transactor
	pricing    *pricing.Calculator
	kafka      kafka.Client
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Reservation,
	catalog catalogRepo.Catalog,
	transactor postgres.Transactor,
	calculator *pricing.Calculator,
	kafkaClient kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:       repo,
		catalog:    catalog,
		transactor: transactor,
		pricing:    calculator,
		kafka:      kafkaClient,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) maxDuration(kind lifecycle.Kind) time.Duration {
	if kind == lifecycle.KindAccessoryRent {
		return time.Duration(s.cfg.Engine.MaxRentalHours) * time.Hour
	}

	return time.Duration(s.cfg.Engine.MaxBookingHours) * time.Hour
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	requester := shared.RequesterFromContext(ctx)

	draft, err := s.draft(req, requester)
	if err != nil {
		return res, err
	}

	scope.SetAttributes(map[string]any{
		"reservation.kind":     string(draft.Kind),
		"reservation.resource": draft.ResourceID,
	})

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		player, found, err := s.catalog.GetPlayerTx(ctx, tx, requester.ID)
		if err != nil {
			return fmt.Errorf("failed to get player: %w", err)
		}

		if !found {
			return failure.NotFoundWithReason(failure.ReasonPlayerNotFound, "player not found") // nolint:wrapcheck
		}

		if err := s.reserve(ctx, tx, &draft, player); err != nil {
			return err
		}

		if err := s.checkClub(ctx, tx, draft.ClubID); err != nil {
			return err
		}

		if err := s.repo.InsertTx(ctx, tx, draft); err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("kind", string(draft.Kind)).Str("resource_id", draft.ResourceID).Msg("failed to create reservation")

		return res, err
	}

	s.afterCommit(ctx, constant.EventReservationCreated, draft, requester.ID)

	res.FromModel(draft)

	return res, nil
}

// draft validates the request shape before any row is locked.
func (s *serviceImpl) draft(req dto.CreateReservationRequest, requester gModel.Requester) (model.Reservation, error) {
	kind, err := lifecycle.ParseKind(req.Kind)
	if err != nil {
		return model.Reservation{}, err
	}

	draft := model.Reservation{
		ID:         uuid.NewString(),
		Kind:       kind,
		ResourceID: req.ResourceID,
		PlayerID:   requester.ID,
		Quantity:   req.Qty(),
		Status:     lifecycle.StatusPending,
		Metadata:   gModel.NewMetadata(requester.ID, timezone.Now()),
	}

	if draft.Quantity <= 0 {
		return draft, failure.Validation(failure.ReasonInvalidQuantity, "quantity must be at least 1") // nolint:wrapcheck
	}

	if kind.TimeBounded() {
		interval, err := req.Interval()
		if err != nil {
			return draft, err
		}

		if err := conflict.CheckDuration(interval, s.maxDuration(kind)); err != nil {
			return draft, err
		}

		draft.SetInterval(interval)
		draft.Hours = interval.Hours()
	}

	if kind == lifecycle.KindFacility || kind == lifecycle.KindCoachPersonal {
		draft.Quantity = 1
	}

	if kind == lifecycle.KindCoachClass {
		if req.SessionID == "" {
			return draft, failure.Validation(failure.ReasonMissingField, "session_id is required for class bookings") // nolint:wrapcheck
		}

		sessionID := req.SessionID
		draft.SessionID = &sessionID
	}

	return draft, nil
}

func (s *serviceImpl) reserve(ctx context.Context, tx *sqlx.Tx, r *model.Reservation, player catalogModel.Player) error {
	switch r.Kind {
	case lifecycle.KindFacility:
		return s.reserveFacility(ctx, tx, r, player)
	case lifecycle.KindCoachPersonal:
		return s.reservePersonal(ctx, tx, r)
	case lifecycle.KindCoachClass:
		return s.reserveClass(ctx, tx, r)
	case lifecycle.KindAccessoryRent:
		return s.reserveRental(ctx, tx, r)
	case lifecycle.KindAccessoryBuy:
		return s.reservePurchase(ctx, tx, r)
	default:
		return failure.Validation(failure.ReasonInvalidKind, fmt.Sprintf("unknown reservation kind %q", r.Kind)) // nolint:wrapcheck
	}
}

func resourceNotFound(entity string) error {
	return failure.NotFoundWithReason(failure.ReasonResourceNotFound, entity+" not found")
}

func offeringDisabled(msg string) error {
	return failure.Validation(failure.ReasonOfferingDisabled, msg)
}

// checkSlot scans the held reservations of the resource. The caller holds the
// resource row lock.
func (s *serviceImpl) checkSlot(ctx context.Context, tx *sqlx.Tx, r *model.Reservation) error {
	interval, _ := r.Interval()

	existing, err := s.repo.ListHoldingTx(ctx, tx, r.ResourceID, r.Kind, interval.Start, interval.End)
	if err != nil {
		return fmt.Errorf("failed to list reservations of resource: %w", err)
	}

	return conflict.CheckConflict(interval, model.Slots(existing))
}

func (s *serviceImpl) reserveFacility(ctx context.Context, tx *sqlx.Tx, r *model.Reservation, player catalogModel.Player) error {
	facility, found, err := s.catalog.LockFacilityTx(ctx, tx, r.ResourceID)
	if err != nil {
		return fmt.Errorf("failed to lock facility: %w", err)
	}

	if !found {
		return resourceNotFound(catalogModel.EntityFacility)
	}

	if err := s.checkSlot(ctx, tx, r); err != nil {
		return err
	}

	price, err := s.pricing.Facility(facility.HourlyPrice, r.Hours, player.IsMember)
	if err != nil {
		return err
	}

	r.ClubID = facility.ClubID
	r.Sport = facility.Sport
	r.UnitPrice = facility.HourlyPrice
	r.SetPricing(price)

	return nil
}

func (s *serviceImpl) reservePersonal(ctx context.Context, tx *sqlx.Tx, r *model.Reservation) error {
	coach, found, err := s.catalog.LockCoachTx(ctx, tx, r.ResourceID)
	if err != nil {
		return fmt.Errorf("failed to lock coach: %w", err)
	}

	if !found {
		return resourceNotFound(catalogModel.EntityCoach)
	}

	if !coach.Active || !coach.PersonalEnabled {
		return offeringDisabled("coach does not take personal sessions")
	}

	windows, err := s.catalog.ListWindowsTx(ctx, tx, coach.ID)
	if err != nil {
		return fmt.Errorf("failed to list coach availability: %w", err)
	}

	interval, _ := r.Interval()
	if err := timewindow.FitsWithinWeeklyWindow(interval, catalogModel.Windows(windows), timezone.GetLocation()); err != nil {
		return err
	}

	if err := s.checkSlot(ctx, tx, r); err != nil {
		return err
	}

	price, err := s.pricing.Personal(coach.PersonalRate, r.Hours)
	if err != nil {
		return err
	}

	r.ClubID = coach.ClubID
	r.Sport = coach.Sport
	r.UnitPrice = coach.PersonalRate
	r.SetPricing(price)

	return nil
}

func (s *serviceImpl) reserveClass(ctx context.Context, tx *sqlx.Tx, r *model.Reservation) error {
	coach, found, err := s.catalog.GetCoachTx(ctx, tx, r.ResourceID)
	if err != nil {
		return fmt.Errorf("failed to get coach: %w", err)
	}

	if !found {
		return resourceNotFound(catalogModel.EntityCoach)
	}

	session, found, err := s.catalog.LockSessionTx(ctx, tx, *r.SessionID)
	if err != nil {
		return fmt.Errorf("failed to lock class session: %w", err)
	}

	if !found || session.CoachID != coach.ID {
		return resourceNotFound(catalogModel.EntityClassSession)
	}

	if !coach.Active || !coach.ClassEnabled || !session.Active {
		return offeringDisabled("class session is not open for booking")
	}

	price, err := s.pricing.Class(coach.ClassPrice, r.Quantity)
	if err != nil {
		return err
	}

	booked, err := capacity.ReserveSeats(session.BookedCount, session.MaxCapacity, r.Quantity)
	if err != nil {
		return err
	}

	if err := s.catalog.UpdateSessionBookedTx(ctx, tx, session.ID, booked, r.PlayerID); err != nil {
		return fmt.Errorf("failed to update class session: %w", err)
	}

	r.ClubID = coach.ClubID
	r.Sport = coach.Sport
	r.UnitPrice = coach.ClassPrice
	r.SetInterval(timewindow.Interval{Start: session.StartAt, End: session.EndAt})
	r.SetPricing(price)

	return nil
}

func (s *serviceImpl) lockAccessory(ctx context.Context, tx *sqlx.Tx, id string) (catalogModel.Accessory, error) {
	accessory, found, err := s.catalog.LockAccessoryTx(ctx, tx, id)
	if err != nil {
		return accessory, fmt.Errorf("failed to lock accessory: %w", err)
	}

	if !found {
		return accessory, resourceNotFound(catalogModel.EntityAccessory)
	}

	if !accessory.Active {
		return accessory, offeringDisabled("accessory is not available")
	}

	return accessory, nil
}

func (s *serviceImpl) reserveRental(ctx context.Context, tx *sqlx.Tx, r *model.Reservation) error {
	accessory, err := s.lockAccessory(ctx, tx, r.ResourceID)
	if err != nil {
		return err
	}

	if !accessory.RentEnabled {
		return offeringDisabled("accessory is not offered for rent")
	}

	interval, _ := r.Interval()

	active, err := s.repo.ListHoldingTx(ctx, tx, r.ResourceID, r.Kind, interval.Start, interval.End)
	if err != nil {
		return fmt.Errorf("failed to list active rentals: %w", err)
	}

	if err := capacity.ReserveRentalUnits(accessory.Stock, r.Quantity, interval, model.Slots(active)); err != nil {
		return err
	}

	price, err := s.pricing.AccessoryRent(accessory.RentHourlyRate, r.Hours, r.Quantity)
	if err != nil {
		return err
	}

	r.ClubID = accessory.ClubID
	r.Sport = accessory.Sport
	r.UnitPrice = accessory.RentHourlyRate
	r.SetPricing(price)

	return nil
}

func (s *serviceImpl) reservePurchase(ctx context.Context, tx *sqlx.Tx, r *model.Reservation) error {
	accessory, err := s.lockAccessory(ctx, tx, r.ResourceID)
	if err != nil {
		return err
	}

	if !accessory.BuyEnabled {
		return offeringDisabled("accessory is not offered for sale")
	}

	price, err := s.pricing.AccessoryBuy(accessory.BuyPrice, r.Quantity)
	if err != nil {
		return err
	}

	left, err := capacity.ReserveUnits(accessory.Stock, r.Quantity)
	if err != nil {
		return err
	}

	if err := s.catalog.UpdateAccessoryStockTx(ctx, tx, accessory.ID, left, r.PlayerID); err != nil {
		return fmt.Errorf("failed to update accessory stock: %w", err)
	}

	r.ClubID = accessory.ClubID
	r.Sport = accessory.Sport
	r.UnitPrice = accessory.BuyPrice
	r.SetPricing(price)

	return nil
}

func (s *serviceImpl) checkClub(ctx context.Context, tx *sqlx.Tx, clubID string) error {
	club, found, err := s.catalog.GetClubTx(ctx, tx, clubID)
	if err != nil {
		return fmt.Errorf("failed to get club: %w", err)
	}

	if !found {
		return failure.NotFoundWithReason(failure.ReasonClubNotFound, "club not found") // nolint:wrapcheck
	}

	if !club.Approved {
		return failure.ForbiddenWithReason(failure.ReasonClubNotApproved, "club is not approved") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	requester := shared.RequesterFromContext(ctx)

	updated, err := s.transition(ctx, id, lifecycle.EventCancel, func(r model.Reservation) error {
		return model.Authorize(requester, r.PlayerID, r.ClubID)
	})
	if err != nil {
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to cancel reservation")

		return res, err
	}

	s.afterCommit(ctx, constant.EventReservationCancelled, updated, requester.ID)

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Return(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Return")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	requester := shared.RequesterFromContext(ctx)

	updated, err := s.transition(ctx, id, lifecycle.EventReturn, func(r model.Reservation) error {
		return model.AuthorizeClub(requester, r.ClubID)
	})
	if err != nil {
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to return rental")

		return res, err
	}

	s.afterCommit(ctx, constant.EventReservationReturned, updated, requester.ID)

	res.FromModel(updated)

	return res, nil
}

// transition locks the reservation row, checks access, applies ev and
// releases held seats or stock on cancel, all in one transaction.
func (s *serviceImpl) transition(ctx context.Context, id string, ev lifecycle.Event, authorize func(model.Reservation) error) (model.Reservation, error) {
	requester := shared.RequesterFromContext(ctx)

	var updated model.Reservation

	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, found, err := s.repo.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to lock reservation: %w", err)
		}

		if !found {
			return failure.NotFoundWithReason(failure.ReasonReservationNotFound, "reservation not found") // nolint:wrapcheck
		}

		if err := authorize(current); err != nil {
			return err
		}

		next, err := lifecycle.Apply(current.Kind, current.Status, ev)
		if err != nil {
			return err
		}

		if ev == lifecycle.EventCancel {
			if err := s.release(ctx, tx, current, requester.ID); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateStatusTx(ctx, tx, current.ID, next, requester.ID); err != nil {
			return fmt.Errorf("failed to update reservation status: %w", err)
		}

		current.Status = next
		current.ModifiedAt = timezone.Now()
		current.ModifiedBy = requester.ID
		updated = current

		return nil
	})

	return updated, err
}

// release gives back class seats and purchased units. Time-bounded kinds free
// their slot by leaving the holding statuses.
func (s *serviceImpl) release(ctx context.Context, tx *sqlx.Tx, r model.Reservation, actor string) error {
	switch r.Kind {
	case lifecycle.KindCoachClass:
		if r.SessionID == nil {
			return nil
		}

		session, found, err := s.catalog.LockSessionTx(ctx, tx, *r.SessionID)
		if err != nil {
			return fmt.Errorf("failed to lock class session: %w", err)
		}

		if !found {
			log.Warn().Str("session_id", *r.SessionID).Msg("class session gone, no seats to release")

			return nil
		}

		booked := capacity.ReleaseSeats(session.BookedCount, r.Quantity)
		if err := s.catalog.UpdateSessionBookedTx(ctx, tx, session.ID, booked, actor); err != nil {
			return fmt.Errorf("failed to update class session: %w", err)
		}
	case lifecycle.KindAccessoryBuy:
		accessory, found, err := s.catalog.LockAccessoryTx(ctx, tx, r.ResourceID)
		if err != nil {
			return fmt.Errorf("failed to lock accessory: %w", err)
		}

		if !found {
			log.Warn().Str("accessory_id", r.ResourceID).Msg("accessory gone, no stock to restore")

			return nil
		}

		stock := capacity.ReleaseUnits(accessory.Stock, r.Quantity)
		if err := s.catalog.UpdateAccessoryStockTx(ctx, tx, accessory.ID, stock, actor); err != nil {
			return fmt.Errorf("failed to update accessory stock: %w", err)
		}
	}

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	requester := shared.RequesterFromContext(ctx)

	reservation, found, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if !found {
		return res, failure.NotFoundWithReason(failure.ReasonReservationNotFound, "reservation not found") // nolint:wrapcheck
	}

	if err = model.Authorize(requester, reservation.PlayerID, reservation.ClubID); err != nil {
		return res, err
	}

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Mine(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Mine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	requester := shared.RequesterFromContext(ctx)
	group := filter.Group(requester.ID)

	params.Sanitize(sortableColumns...)

	total, err := s.repo.Count(ctx, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Schedule(ctx context.Context, resourceID string, req dto.ScheduleRequest) (res dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Schedule")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	window, err := req.Interval()
	if err != nil {
		return res, err
	}

	if err = conflict.CheckDuration(window, maxScheduleWindow); err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKeyWithQuery(constant.CachePrefixSchedule, url.Values{
		constant.RequestParamFrom: {req.From},
		constant.RequestParamTo:   {req.To},
	}, resourceID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for schedule")

		return res, nil
	}

	models, err := s.repo.ListSchedule(ctx, resourceID, window.Start, window.End)
	if err != nil {
		log.Error().Err(err).Msg("failed to list schedule")

		return res, fmt.Errorf("failed to list schedule: %w", err)
	}

	res.FromModels(resourceID, window, models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedule to cache")
		}
	}()

	return res, nil
}

// afterCommit drops the cached schedule of the resource and publishes the
// event. Both are best effort.
func (s *serviceImpl) afterCommit(ctx context.Context, eventType string, r model.Reservation, actor string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CachePrefixSchedule, r.ResourceID))

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Reservation, kafka.Message{
			Key:       r.ID,
			EventType: eventType,
			Value:     dto.NewEvent(r, actor),
		})
		if err != nil {
			log.Error().Err(err).Str("event", eventType).Str("reservation_id", r.ID).Msg("failed to publish reservation event")
		}
	}()
}
