//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"locally/config"
	"locally/infras/jwt"
	"locally/infras/kafka"
	"locally/infras/otel"
	"locally/infras/postgres"
	"locally/infras/redis"
	"locally/infras/s3"
	authService "locally/internal/domains/auth/service"
	bookingRepository "locally/internal/domains/booking/repository"
	bookingService "locally/internal/domains/booking/service"
	profileRepository "locally/internal/domains/profile/repository"
	profileService "locally/internal/domains/profile/service"
	roleRepository "locally/internal/domains/role/repository"
	roleService "locally/internal/domains/role/service"
	spaceRepository "locally/internal/domains/space/repository"
	spaceService "locally/internal/domains/space/service"
	userRepository "locally/internal/domains/user/repository"
	authHandler "locally/internal/handlers/auth"
	bookingHandler "locally/internal/handlers/booking"
	dashboardHandler "locally/internal/handlers/dashboard"
	meHandler "locally/internal/handlers/me"
	spaceHandler "locally/internal/handlers/space"
	"locally/permissions"
	"locally/shared/cache"
	"locally/transport/http"
	"locally/transport/http/middleware"
	"locally/transport/http/router"
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
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roleDomain = wire.NewSet(
	roleRepository.New,
	roleService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var profileDomain = wire.NewSet(
	profileRepository.New,
	profileService.New,
)

var spaceDomain = wire.NewSet(
	spaceRepository.New,
	spaceService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewDetail,
	bookingService.New,
)

var domains = wire.NewSet(
	roleDomain,
	authDomain,
	profileDomain,
	spaceDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	meHandler.New,
	spaceHandler.New,
	bookingHandler.New,
	dashboardHandler.New,
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
