package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"locally/config"
	"locally/infras/kafka"
	kafkaMocks "locally/infras/kafka/mocks"
	otelMocks "locally/infras/otel/mocks"
	bookingMocks "locally/internal/domains/booking/mocks"
	"locally/internal/domains/booking/model"
	"locally/internal/domains/booking/model/dto"
	"locally/internal/domains/booking/pricing"
	"locally/internal/domains/booking/service"
	spaceMocks "locally/internal/domains/space/mocks"
	spaceModel "locally/internal/domains/space/model"
	"locally/internal/session"
	"locally/shared/cache"
	cacheMocks "locally/shared/cache/mocks"
	"locally/shared/constant"
	"locally/shared/failure"
)

type fixture struct {
	repo    *bookingMocks.MockBooking
	details *bookingMocks.MockDetail
	spaces  *spaceMocks.MockSpace
	cache   *cacheMocks.MockRedisCache
	kafka   *kafkaMocks.MockClient
	svc     service.Intake
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Booking.EventTopic = "booking.requested"

	f := fixture{
		repo:    bookingMocks.NewMockBooking(ctrl),
		details: bookingMocks.NewMockDetail(ctrl),
		spaces:  spaceMocks.NewMockSpace(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
		kafka:   kafkaMocks.NewMockClient(ctrl),
	}
	f.svc = service.New(f.repo, f.details, f.spaces, cfg, f.cache, otelMocks.NewOtel(), f.kafka)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

var spaceID = uuid.NewString()

func studio() spaceModel.Space {
	return spaceModel.Space{
		ID:           spaceID,
		OwnerID:      "owner-1",
		Title:        "Estudio Fotográfico",
		PricePerHour: decimal.RequireFromString("450"),
		Capacity:     15,
		Status:       spaceModel.StatusActive,
	}
}

func tenantCtx() context.Context {
	return session.WithSession(context.Background(), session.Session{UserID: "tenant-1", Role: constant.RoleTenant, TokenID: "t-1"})
}

func quoteRequest(guests int, start, end string) dto.QuoteRequest {
	return dto.QuoteRequest{SpaceID: spaceID, Date: "2025-03-14", StartTime: start, EndTime: end, GuestCount: guests}
}

func TestQuote(t *testing.T) {
	inactive := studio()
	inactive.Status = spaceModel.StatusInactive

	tests := []struct {
		name     string
		req      dto.QuoteRequest
		space    spaceModel.Space
		want     dto.QuoteResponse
		wantErr  error
		wantCode int
	}{
		{
			name:  "one hour at 450",
			req:   quoteRequest(4, "10:00", "11:00"),
			space: studio(),
			want:  dto.QuoteResponse{SpaceID: spaceID, PricePerHour: "450.00", Hours: "1.00", Subtotal: "450.00", ServiceFee: "45.00", Total: "495.00"},
		},
		{
			name:     "over capacity",
			req:      quoteRequest(16, "10:00", "11:00"),
			space:    studio(),
			wantCode: http.StatusBadRequest,
			wantErr:  pricing.ErrCapacityExceeded,
		},
		{
			name:     "reversed range",
			req:      quoteRequest(4, "14:00", "13:00"),
			space:    studio(),
			wantCode: http.StatusBadRequest,
			wantErr:  pricing.ErrInvalidTimeRange,
		},
		{
			name:     "inactive space",
			req:      quoteRequest(4, "10:00", "11:00"),
			space:    inactive,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing space",
			req:      quoteRequest(4, "10:00", "11:00"),
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.spaces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.space, nil)

			res, err := f.svc.Quote(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantErr != nil {
					assert.Equal(t, tt.wantErr.Error(), err.Error())
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestCreate(t *testing.T) {
	t.Run("stores a pending booking with the computed total", func(t *testing.T) {
		f := newFixture(t)

		f.spaces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(studio(), nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b model.Booking) error {
				assert.Equal(t, spaceID, b.SpaceID)
				assert.Equal(t, "tenant-1", b.TenantID)
				assert.Equal(t, model.StatusPending, b.Status)
				assert.Equal(t, 15, b.GuestCount)
				assert.True(t, decimal.RequireFromString("495").Equal(b.TotalPrice))
				assert.Equal(t, "10:00", b.StartDate.Format("15:04"))
				assert.Equal(t, "11:00", b.EndDate.Format("15:04"))
				require.NotNil(t, b.Message)
				assert.Equal(t, "Sesión de fotos", *b.Message)

				return nil
			})

		req := dto.CreateBookingRequest{QuoteRequest: quoteRequest(15, "10:00", "11:00"), Message: "Sesión de fotos"}

		res, err := f.svc.Create(tenantCtx(), req)
		require.NoError(t, err)
		assert.Equal(t, "495.00", res.TotalPrice)
		assert.Equal(t, model.StatusPending, res.Status)
	})

	t.Run("over capacity never reaches the store", func(t *testing.T) {
		f := newFixture(t)

		f.spaces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(studio(), nil)

		_, err := f.svc.Create(tenantCtx(), dto.CreateBookingRequest{QuoteRequest: quoteRequest(16, "10:00", "11:00")})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, pricing.ErrCapacityExceeded.Error(), err.Error())
	})

	t.Run("reversed range never reaches the store", func(t *testing.T) {
		f := newFixture(t)

		f.spaces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(studio(), nil)

		_, err := f.svc.Create(tenantCtx(), dto.CreateBookingRequest{QuoteRequest: quoteRequest(2, "14:00", "13:00")})
		require.Error(t, err)
		assert.Equal(t, pricing.ErrInvalidTimeRange.Error(), err.Error())
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		f := newFixture(t)

		f.spaces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(studio(), nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := f.svc.Create(tenantCtx(), dto.CreateBookingRequest{QuoteRequest: quoteRequest(2, "13:00", "14:00")})
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("requires a session", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(), dto.CreateBookingRequest{QuoteRequest: quoteRequest(2, "13:00", "14:00")})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestCreatePublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Booking.EventTopic = "booking.requested"

	repo := bookingMocks.NewMockBooking(ctrl)
	spaces := spaceMocks.NewMockSpace(ctrl)
	c := cacheMocks.NewMockRedisCache(ctrl)
	k := kafkaMocks.NewMockClient(ctrl)

	c.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	spaces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(studio(), nil)
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	published := make(chan kafka.Message, 1)

	k.EXPECT().SendMessages(gomock.Any(), "booking.requested", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			published <- messages[0]

			return errors.New("broker down")
		})

	svc := service.New(repo, bookingMocks.NewMockDetail(ctrl), spaces, cfg, c, otelMocks.NewOtel(), k)

	_, err := svc.Create(tenantCtx(), dto.CreateBookingRequest{QuoteRequest: quoteRequest(2, "10:00", "11:00")})
	require.NoError(t, err)

	message := <-published
	event, ok := message.Value.(dto.BookingEvent)
	require.True(t, ok)
	assert.Equal(t, spaceID, message.Key)
	assert.Equal(t, "owner-1", event.OwnerID)
	assert.Equal(t, "495.00", event.TotalPrice)
}

func TestListForTenant(t *testing.T) {
	f := newFixture(t)

	name := "Ana"
	details := []model.Detail{
		{ID: "b1", Status: model.StatusPending, SpaceTitle: "Estudio", TotalPrice: decimal.NewFromInt(495), TenantName: &name},
		{ID: "b2", Status: model.StatusCompleted, SpaceTitle: "Sala"},
		{ID: "b3", Status: model.StatusConfirmed, SpaceTitle: "Oficina"},
		{ID: "b4", Status: model.StatusCancelled, SpaceTitle: "Terraza"},
	}

	f.cache.EXPECT().Get(gomock.Any(), "booking:tenant:tenant-1", gomock.Any()).Return(cache.Nil)
	f.details.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(details, nil)

	res, err := f.svc.ListForTenant(tenantCtx())
	require.NoError(t, err)

	require.Len(t, res.Active, 2)
	require.Len(t, res.Past, 2)
	assert.Equal(t, "b1", res.Active[0].ID)
	assert.Equal(t, "b3", res.Active[1].ID)
	assert.Equal(t, "b2", res.Past[0].ID)
	assert.Equal(t, "b4", res.Past[1].ID)
	assert.Equal(t, "495.00", res.Active[0].TotalPrice)
}

func TestListForOwner(t *testing.T) {
	f := newFixture(t)

	name := "Ana Rojas"
	details := []model.Detail{
		{ID: "b1", Status: model.StatusPending, SpaceTitle: "Estudio", TenantName: &name},
		{ID: "b2", Status: model.StatusPending, SpaceTitle: "Estudio"},
	}

	ctx := session.WithSession(context.Background(), session.Session{UserID: "owner-1", Role: constant.RoleOwner, TokenID: "t-2"})

	f.cache.EXPECT().Get(gomock.Any(), "booking:owner:owner-1", gomock.Any()).Return(cache.Nil)
	f.details.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(details, nil)

	res, err := f.svc.ListForOwner(ctx)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Ana Rojas", res[0].TenantName)
	assert.Equal(t, "User", res[1].TenantName)
	assert.Equal(t, "Estudio", res[0].SpaceTitle)
}
