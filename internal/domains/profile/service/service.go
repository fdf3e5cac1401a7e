package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"locally/config"
	"locally/infras/otel"
	"locally/internal/domains/profile/model"
	"locally/internal/domains/profile/model/dto"
	"locally/internal/domains/profile/repository"
	"locally/internal/session"
	"locally/shared"
	"locally/shared/cache"
	"locally/shared/constant"
	gDto "locally/shared/dto"
	"locally/shared/failure"
)

const (
	cacheGetProfile = "profile:get"
)

type Reader interface {
	Me(ctx context.Context) (dto.MeResponse, error)
}

type serviceImpl struct {
	repo  repository.Profile
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Profile, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Reader {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Me describes the session owner. Users created before profiles existed get the default display name.
func (s *serviceImpl) Me(ctx context.Context) (res dto.MeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".profile.Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, ok := session.FromContext(ctx)
	if !ok {
		return res, failure.SignInRequired("Sign in required") //nolint:wrapcheck
	}

	res = dto.MeResponse{
		ID:          sess.UserID,
		Email:       sess.Email,
		Role:        sess.Role,
		Provisioned: sess.Provisioned(),
	}

	cacheKey := shared.BuildCacheKey(cacheGetProfile, sess.UserID)

	var fullName string
	if err = s.cache.Get(ctx, cacheKey, &fullName); err == nil {
		res.FullName = model.DisplayName(&fullName)

		return res, nil
	}

	profile, err := s.repo.Get(ctx, gDto.And(gDto.Eq(model.TableName, model.FieldID, sess.UserID)), model.FieldFullName)
	if err != nil {
		log.Error().Err(err).Str("user_id", sess.UserID).Msg("failed to get profile")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	res.FullName = model.DisplayName(&profile.FullName)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, profile.FullName, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profile to cache")
		}
	}()

	return res, nil
}
