package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"locally/config"
	"locally/infras/otel"
	"locally/infras/s3"
	"locally/internal/domains/space/catalog"
	"locally/internal/domains/space/model"
	"locally/internal/domains/space/model/dto"
	"locally/internal/domains/space/repository"
	"locally/internal/session"
	"locally/shared"
	"locally/shared/cache"
	"locally/shared/constant"
	gDto "locally/shared/dto"
	"locally/shared/failure"
)

const (
	cacheGetSpace    = "space:get"
	cacheActiveSpace = "space:active"
	cacheOwnerSpace  = "space:owner"
	cacheOwnerPage   = "space:owner:page"
	cacheOwnerCount  = "space:owner:count"

	msgSpaceNotFound = "space not found"
)

// Listing manages the spaces offered for rent.
type Listing interface {
	Create(ctx context.Context, req dto.CreateSpaceRequest) (dto.SpaceResponse, error)
	Search(ctx context.Context, filter catalog.Filter) (dto.SearchResponse, error)
	Get(ctx context.Context, id string) (dto.SpaceResponse, error)
	SetStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) error
	ListForOwner(ctx context.Context) ([]dto.SpaceResponse, error)
	ListMine(ctx context.Context, params gDto.QueryParams, active *bool) (dto.OwnerSpacesResponse, error)
}

// SortableFields are the columns an owner may order their listing by.
var SortableFields = []string{model.FieldCreatedAt, model.FieldTitle, model.FieldPricePerHour, model.FieldCapacity}

type serviceImpl struct {
	repo  repository.Space
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Space, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Listing {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

// Create stores a new active space for the signed-in owner. An uploaded image is removed again
// when the space cannot be stored.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSpaceRequest) (res dto.SpaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".space.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, ok := session.FromContext(ctx)
	if !ok {
		return res, failure.SignInRequired("Sign in required") //nolint:wrapcheck
	}

	req.Normalize()

	imageURL := constant.Empty

	if req.Image != nil && req.ImageFile != nil {
		fileName := uuid.NewString() + strings.ToLower(path.Ext(req.Image.Filename))

		imageURL, err = s.s3.UploadFile(ctx, model.EntityName, req.ImageFile, req.Image, fileName)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload space image")

			return res, fmt.Errorf("failed to upload image: %w", err)
		}
	}

	space := req.ToModel(sess.UserID, imageURL, s.cfg.Space.DefaultImageURL)

	if err = s.repo.Insert(ctx, space); err != nil {
		log.Error().Err(err).Str("owner_id", sess.UserID).Msg("failed to create space")

		if imageURL != constant.Empty {
			if err := s.s3.DeleteByURL(context.WithoutCancel(ctx), imageURL); err != nil {
				log.Warn().Err(err).Str("url", imageURL).Msg("failed to remove orphaned space image")
			}
		}

		return res, fmt.Errorf("failed to create space: %w", err)
	}

	s.invalidate(ctx, space)

	res.FromModel(space)

	return res, nil
}

// Search filters the active spaces, newest first. No match is an empty response, not an error.
func (s *serviceImpl) Search(ctx context.Context, filter catalog.Filter) (res dto.SearchResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".space.Search")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	active, err := s.activeSpaces(ctx)
	if err != nil {
		return res, err
	}

	res.FromModels(catalog.Search(active, filter))

	return res, nil
}

// activeSpaces returns every active space, newest first, from the cache when possible.
func (s *serviceImpl) activeSpaces(ctx context.Context) ([]model.Space, error) {
	var spaces []model.Space

	if err := s.cache.Get(ctx, cacheActiveSpace, &spaces); err == nil {
		return spaces, nil
	}

	filter := gDto.And(gDto.Eq(model.TableName, model.FieldStatus, model.StatusActive))

	spaces, err := s.repo.GetAll(ctx, gDto.NewestFirst(model.TableName), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get active spaces")

		return nil, fmt.Errorf("failed to get active spaces: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheActiveSpace, spaces, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save active spaces to cache")
		}
	}()

	return spaces, nil
}

// Get returns one space. Inactive spaces are visible to their owner only.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SpaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".space.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	space, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	sess, _ := session.FromContext(ctx)
	if !space.Active() && space.OwnerID != sess.UserID {
		return res, failure.NotFound(msgSpaceNotFound) //nolint:wrapcheck
	}

	res.FromModel(space)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (space model.Space, err error) {
	if _, err = uuid.Parse(id); err != nil {
		return space, failure.NotFound(msgSpaceNotFound) //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetSpace, id)

	if err = s.cache.Get(ctx, cacheKey, &space); err == nil {
		return space, nil
	}

	space, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("space_id", id).Msg("failed to get space")

		return space, fmt.Errorf("failed to get space: %w", err)
	}

	if space.ID == constant.Empty {
		return space, failure.NotFound(msgSpaceNotFound) //nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, space, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save space to cache")
		}
	}()

	return space, nil
}

// SetStatus lets an owner hide or show one of their spaces.
func (s *serviceImpl) SetStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".space.SetStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, ok := session.FromContext(ctx)
	if !ok {
		return failure.SignInRequired("Sign in required") //nolint:wrapcheck
	}

	space, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if space.OwnerID != sess.UserID {
		return failure.Forbidden("you can only change your own spaces") //nolint:wrapcheck
	}

	if space.Status == req.Status {
		return nil
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, sess.UserID), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("space_id", id).Msg("failed to update space status")

		return fmt.Errorf("failed to update space status: %w", err)
	}

	s.invalidate(ctx, space)

	return nil
}

// ListForOwner returns every space of the signed-in owner, newest first, whatever its status.
func (s *serviceImpl) ListForOwner(ctx context.Context) (res []dto.SpaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".space.ListForOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, ok := session.FromContext(ctx)
	if !ok {
		return res, failure.SignInRequired("Sign in required") //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheOwnerSpace, sess.UserID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	filter := gDto.And(gDto.Eq(model.TableName, model.FieldOwnerID, sess.UserID))

	spaces, err := s.repo.GetAll(ctx, gDto.NewestFirst(model.TableName), filter)
	if err != nil {
		log.Error().Err(err).Str("owner_id", sess.UserID).Msg("failed to get owner spaces")

		return res, fmt.Errorf("failed to get owner spaces: %w", err)
	}

	res = dto.FromModels(spaces)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save owner spaces to cache")
		}
	}()

	return res, nil
}

// ListMine pages through the signed-in owner's spaces. A nil active lists every status.
func (s *serviceImpl) ListMine(ctx context.Context, params gDto.QueryParams, active *bool) (res dto.OwnerSpacesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".space.ListMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, ok := session.FromContext(ctx)
	if !ok {
		return res, failure.SignInRequired("Sign in required") //nolint:wrapcheck
	}

	params.RestrictSort(model.TableName, SortableFields...)

	filter := gDto.And(gDto.Eq(model.TableName, model.FieldOwnerID, sess.UserID))
	if active != nil {
		status := model.StatusInactive
		if *active {
			status = model.StatusActive
		}

		filter.Filters = append(filter.Filters, gDto.Eq(model.TableName, model.FieldStatus, status))
	}

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheOwnerPage, sess.UserID), params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.count(ctx, sess.UserID, params, filter)
	if err != nil {
		return res, err
	}

	spaces, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Str("owner_id", sess.UserID).Msg("failed to get owner spaces page")

		return res, fmt.Errorf("failed to get owner spaces: %w", err)
	}

	res.FromModels(spaces, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save owner spaces page to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, owner string, params gDto.QueryParams, filter gDto.FilterGroup) (int, error) {
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheOwnerCount, owner), params, filter)

	var total int
	if err := s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("owner_id", owner).Msg("failed to count owner spaces")

		return 0, fmt.Errorf("failed to count owner spaces: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save owner spaces count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, space model.Space) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSpace, space.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete space from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheOwnerSpace, space.OwnerID)); err != nil {
			log.Error().Err(err).Msg("failed to delete owner spaces from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheActiveSpace)
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheOwnerPage, space.OwnerID))
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheOwnerCount, space.OwnerID))
	}()
}
