package booking_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "locally/infras/otel/mocks"
	"locally/internal/domains/booking/mocks"
	"locally/internal/domains/booking/model/dto"
	"locally/internal/domains/booking/pricing"
	"locally/internal/handlers/booking"
	"locally/shared/failure"
)

const spaceID = "5b0f6c1e-8a43-4c55-9a57-2f0f1a3e4b21"

func newRouter(t *testing.T) (*mocks.MockIntake, chi.Router) {
	t.Helper()

	intake := mocks.NewMockIntake(gomock.NewController(t))
	handler := booking.New(intake, otelMocks.NewOtel())

	r := chi.NewRouter()
	handler.Router(r)

	return intake, r
}

func post(r chi.Router, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func validBody() string {
	return `{"space_id":"` + spaceID + `","date":"2026-11-02","start_time":"09:00","end_time":"12:00","guest_count":4,"message":"team offsite"}`
}

type echoBody struct {
	Error string                   `json:"error"`
	Input dto.CreateBookingRequest `json:"input"`
}

func TestCreateBooking(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		intake, r := newRouter(t)

		intake.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
				assert.Equal(t, spaceID, req.SpaceID)
				assert.Equal(t, 4, req.GuestCount)

				return dto.BookingResponse{ID: "booking-1", TotalPrice: "495.00", Status: "pending"}, nil
			})

		rec := post(r, "/bookings", validBody())

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total_price":"495.00"`)
	})

	t.Run("validation failure echoes the input", func(t *testing.T) {
		_, r := newRouter(t)

		rec := post(r, "/bookings", `{"space_id":"`+spaceID+`","date":"2026-11-02","start_time":"9am","end_time":"12:00","guest_count":4}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body echoBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "9am", body.Input.StartTime)
		assert.Equal(t, spaceID, body.Input.SpaceID)
	})

	t.Run("persistence failure keeps the input", func(t *testing.T) {
		intake, r := newRouter(t)

		intake.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, errors.New("failed to create booking: connection reset"))

		rec := post(r, "/bookings", validBody())

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body echoBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "team offsite", body.Input.Message)
		assert.Equal(t, "2026-11-02", body.Input.Date)
	})

	t.Run("capacity exceeded", func(t *testing.T) {
		intake, r := newRouter(t)

		intake.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, failure.BadRequest(pricing.ErrCapacityExceeded))

		rec := post(r, "/bookings", validBody())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), pricing.ErrCapacityExceeded.Error())
	})
}

func TestQuoteBooking(t *testing.T) {
	intake, r := newRouter(t)

	intake.EXPECT().Quote(gomock.Any(), gomock.Any()).Return(dto.QuoteResponse{
		SpaceID:      spaceID,
		PricePerHour: "150.00",
		Hours:        "3.00",
		Subtotal:     "450.00",
		ServiceFee:   "45.00",
		Total:        "495.00",
	}, nil)

	rec := post(r, "/bookings/quote", `{"space_id":"`+spaceID+`","date":"2026-11-02","start_time":"09:00","end_time":"12:00","guest_count":4}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data dto.QuoteResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "450.00", body.Data.Subtotal)
	assert.Equal(t, "45.00", body.Data.ServiceFee)
	assert.Equal(t, "495.00", body.Data.Total)
}
