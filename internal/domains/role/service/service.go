package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"locally/config"
	"locally/infras/otel"
	"locally/internal/domains/role/model"
	"locally/internal/domains/role/model/dto"
	"locally/internal/domains/role/repository"
	"locally/shared"
	"locally/shared/cache"
	"locally/shared/constant"
	gDto "locally/shared/dto"
	"locally/shared/failure"
)

const (
	cacheGetRole = "role:get"
)

var ErrRoleAssigned = errors.New("role already assigned")

// Resolver answers which role a user holds. A user without a record resolves to constant.RoleNone.
type Resolver interface {
	Resolve(ctx context.Context, userID string) (string, error)
	Assign(ctx context.Context, userID, role string) error
	Invalidate(ctx context.Context, userID string)
}

type serviceImpl struct {
	repo  repository.Role
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Role, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Resolver {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// IsValid reports whether role can be stored.
func IsValid(role string) bool {
	return role == constant.RoleOwner || role == constant.RoleTenant
}

func (s *serviceImpl) Resolve(ctx context.Context, userID string) (role string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".role.Resolve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRole, userID)

	if err = s.cache.Get(ctx, cacheKey, &role); err == nil {
		return role, nil
	}

	record, err := s.repo.Get(ctx, byUser(userID), model.FieldRole)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to resolve role")

		return constant.RoleNone, fmt.Errorf("failed to resolve role: %w", err)
	}

	role = record.Role

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, role, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save role to cache")
		}
	}()

	return role, nil
}

// Assign stores the one role a user may hold. A second assignment is a conflict.
func (s *serviceImpl) Assign(ctx context.Context, userID, role string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".role.Assign")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !IsValid(role) {
		return failure.BadRequestFromString("role must be one of owner tenant") //nolint:wrapcheck
	}

	existing, err := s.repo.Get(ctx, byUser(userID), model.FieldID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to check existing role")

		return fmt.Errorf("failed to check existing role: %w", err)
	}

	if existing.ID != constant.Empty {
		return failure.Conflict(ErrRoleAssigned.Error()) //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, dto.NewUserRole(userID, role, userID)); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to assign role")

		return fmt.Errorf("failed to assign role: %w", err)
	}

	s.Invalidate(ctx, userID)

	return nil
}

// Invalidate drops the cached role of userID in the background.
func (s *serviceImpl) Invalidate(ctx context.Context, userID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRole, userID)); err != nil {
			log.Error().Err(err).Msg("failed to delete role from cache")
		}
	}()
}

func byUser(userID string) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.TableName, model.FieldUserID, userID))
}
