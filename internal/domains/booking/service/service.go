package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"locally/config"
	"locally/infras/kafka"
	"locally/infras/otel"
	"locally/internal/domains/booking/model"
	"locally/internal/domains/booking/model/dto"
	"locally/internal/domains/booking/pricing"
	"locally/internal/domains/booking/repository"
	spaceModel "locally/internal/domains/space/model"
	spaceRepo "locally/internal/domains/space/repository"
	"locally/internal/session"
	"locally/shared"
	"locally/shared/cache"
	"locally/shared/constant"
	gDto "locally/shared/dto"
	"locally/shared/failure"
)

const (
	cacheOwnerBooking  = "booking:owner"
	cacheTenantBooking = "booking:tenant"

	msgSpaceNotFound    = "space not found"
	msgSpaceUnavailable = "space is not available for booking"
)

// Intake quotes and records booking requests and lists them for both sides.
type Intake interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	ListForOwner(ctx context.Context) ([]dto.OwnerBookingResponse, error)
	ListForTenant(ctx context.Context) (dto.TenantBookingsResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	detailRepo repository.Detail
	spaceRepo  spaceRepo.Space
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	kafka      kafka.Client
}

func New(
	repo repository.Booking,
	detailRepo repository.Detail,
	spaceRepo spaceRepo.Space,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafka kafka.Client,
) Intake {
	return &serviceImpl{
		repo:       repo,
		detailRepo: detailRepo,
		spaceRepo:  spaceRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		kafka:      kafka,
	}
}

// Quote prices a request without storing it.
func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	space, err := s.bookableSpace(ctx, req.SpaceID)
	if err != nil {
		return res, err
	}

	_, quote, err := pricing.Price(space.PricePerHour, space.Capacity, req.GuestCount, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	res.FromQuote(space.ID, space.PricePerHour.StringFixed(2), quote)

	return res, nil
}

// Create stores a pending booking priced at creation time. Overlapping bookings are accepted.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, ok := session.FromContext(ctx)
	if !ok {
		return res, failure.SignInRequired("Sign in required") //nolint:wrapcheck
	}

	space, err := s.bookableSpace(ctx, req.SpaceID)
	if err != nil {
		return res, err
	}

	window, quote, err := pricing.Price(space.PricePerHour, space.Capacity, req.GuestCount, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	booking := req.ToModel(sess.UserID, window, quote)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Str("space_id", space.ID).Str("tenant_id", sess.UserID).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheTenantBooking, booking.TenantID)); err != nil {
			log.Error().Err(err).Msg("failed to delete tenant bookings from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheOwnerBooking, space.OwnerID)); err != nil {
			log.Error().Err(err).Msg("failed to delete owner bookings from cache")
		}

		s.publish(c, booking, space.OwnerID)
	}()

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) publish(ctx context.Context, booking model.Booking, ownerID string) {
	message := kafka.Message{
		Key:   booking.SpaceID,
		Value: dto.NewBookingEvent(booking, ownerID),
	}

	if err := s.kafka.SendMessages(ctx, s.cfg.Booking.EventTopic, message); err != nil {
		log.Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking event")
	}
}

// bookableSpace loads the space of a request and checks that it takes bookings.
func (s *serviceImpl) bookableSpace(ctx context.Context, id string) (spaceModel.Space, error) {
	space, err := s.spaceRepo.Get(ctx, shared.FilterByID(id, spaceModel.FieldID, spaceModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("space_id", id).Msg("failed to get space")

		return space, fmt.Errorf("failed to get space: %w", err)
	}

	if space.ID == constant.Empty {
		return space, failure.NotFound(msgSpaceNotFound) //nolint:wrapcheck
	}

	if !space.Active() {
		return space, failure.BadRequestFromString(msgSpaceUnavailable) //nolint:wrapcheck
	}

	return space, nil
}

// ListForOwner returns the bookings made against the signed-in owner's spaces, newest first.
func (s *serviceImpl) ListForOwner(ctx context.Context) (res []dto.OwnerBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListForOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, ok := session.FromContext(ctx)
	if !ok {
		return res, failure.SignInRequired("Sign in required") //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheOwnerBooking, sess.UserID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	details, err := s.details(ctx, gDto.Eq(spaceModel.TableName, spaceModel.FieldOwnerID, sess.UserID))
	if err != nil {
		return res, err
	}

	res = dto.FromOwnerDetails(details)

	s.save(ctx, cacheKey, res)

	return res, nil
}

// ListForTenant returns the signed-in tenant's bookings split into active and past.
func (s *serviceImpl) ListForTenant(ctx context.Context) (res dto.TenantBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListForTenant")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, ok := session.FromContext(ctx)
	if !ok {
		return res, failure.SignInRequired("Sign in required") //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheTenantBooking, sess.UserID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	details, err := s.details(ctx, gDto.Eq(model.TableName, model.FieldTenantID, sess.UserID))
	if err != nil {
		return res, err
	}

	res.FromDetails(details)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) details(ctx context.Context, filter gDto.Filter) ([]model.Detail, error) {
	details, err := s.detailRepo.GetAll(ctx, gDto.NewestFirst(model.TableName), gDto.And(filter))
	if err != nil {
		// an abandoned request is not worth an error log
		if !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("failed to get bookings")
		}

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return details, nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to save bookings to cache")
		}
	}()
}
