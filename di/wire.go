//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"sportshub/config"
	"sportshub/infras/jwt"
	"sportshub/infras/kafka"
	"sportshub/infras/otel"
	"sportshub/infras/postgres"
	"sportshub/infras/redis"
	"sportshub/infras/s3"
	catalogRepository "sportshub/internal/domains/catalog/repository"
	paymentRepository "sportshub/internal/domains/payment/repository"
	paymentService "sportshub/internal/domains/payment/service"
	reservationRepository "sportshub/internal/domains/reservation/repository"
	reservationService "sportshub/internal/domains/reservation/service"
	eventHandler "sportshub/internal/handlers/event"
	paymentHandler "sportshub/internal/handlers/payment"
	reservationHandler "sportshub/internal/handlers/reservation"
	"sportshub/permissions"
	"sportshub/shared/cache"
	"sportshub/transport/http"
	"sportshub/transport/http/middleware"
	"sportshub/transport/http/router"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var engine = wire.NewSet(
	providePricingCalculator,
	provideSettlementPolicy,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var domains = wire.NewSet(
	catalogDomain,
	reservationDomain,
	paymentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	reservationHandler.New,
	paymentHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		engine,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() eventHandler.Handler {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		engine,
		catalogDomain,
		reservationDomain,
		eventHandler.New,
	)

	return eventHandler.Handler{}
}
