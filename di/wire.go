//go:build wireinject
// +build wireinject

package di

import (
	"github.com/Jaxki97/lussoautostudio/config"
	"github.com/Jaxki97/lussoautostudio/infras/jwt"
	"github.com/Jaxki97/lussoautostudio/infras/kafka"
	"github.com/Jaxki97/lussoautostudio/infras/otel"
	"github.com/Jaxki97/lussoautostudio/infras/postgres"
	"github.com/Jaxki97/lussoautostudio/infras/redis"
	"github.com/Jaxki97/lussoautostudio/internal/notifier"
	"github.com/Jaxki97/lussoautostudio/internal/schedule"
	"github.com/Jaxki97/lussoautostudio/shared/cache"
	"github.com/Jaxki97/lussoautostudio/transport/http"
	"github.com/Jaxki97/lussoautostudio/transport/http/middleware"
	"github.com/Jaxki97/lussoautostudio/transport/http/router"

	authService "github.com/Jaxki97/lussoautostudio/internal/domains/auth/service"
	reservationRepository "github.com/Jaxki97/lussoautostudio/internal/domains/reservation/repository"
	reservationService "github.com/Jaxki97/lussoautostudio/internal/domains/reservation/service"
	authHandler "github.com/Jaxki97/lussoautostudio/internal/handlers/auth"
	reservationHandler "github.com/Jaxki97/lussoautostudio/internal/handlers/reservation"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	schedule.NewSystemClock,
	notifier.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	reservationDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	reservationHandler.New,
	authHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
