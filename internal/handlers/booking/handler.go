package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"locally/infras/otel"
	"locally/internal/domains/booking/model/dto"
	"locally/internal/domains/booking/service"
	"locally/shared/constant"
	"locally/shared/validator"
	"locally/transport/http/response"
)

type Handler struct {
	service service.Intake
	otel    otel.Otel
}

func New(service service.Intake, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Post("/quote", handler.QuoteBooking)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Request a booking
// @Description Tenants request a space for one day between two clock times. The price is fixed at request time.
// @Description On failure the submitted input is returned so the form can be refilled.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithErrorInput(writer, err, req)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("space_id", req.SpaceID).Msg("failed to create booking")

		response.WithErrorInput(writer, err, req)

		return
	}

	scope.AddEvent("Booking created successfully by user " + res.TenantID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// QuoteBooking prices a booking request without storing it.
// @Summary Quote a booking
// @Description Subtotal is the hourly price times the hours booked; a 10% service fee is added on top.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Quote Request"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Price breakdown"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/quote [post]
func (handler *Handler) QuoteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".QuoteBooking")
	defer scope.End()

	req := dto.QuoteRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("space_id", req.SpaceID).Msg("failed to quote booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
