// Package dashboard serves the role-specific landing views.
package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"locally/infras/otel"
	bookingDto "locally/internal/domains/booking/model/dto"
	bookingService "locally/internal/domains/booking/service"
	spaceDto "locally/internal/domains/space/model/dto"
	spaceService "locally/internal/domains/space/service"
	"locally/shared/constant"
	"locally/transport/http/response"
)

// OwnerDashboard lists an owner's spaces and the bookings made against them.
type OwnerDashboard struct {
	Spaces   []spaceDto.SpaceResponse          `json:"spaces"`
	Bookings []bookingDto.OwnerBookingResponse `json:"bookings"`
}

type Handler struct {
	listing spaceService.Listing
	intake  bookingService.Intake
	otel    otel.Otel
}

func New(listing spaceService.Listing, intake bookingService.Intake, otel otel.Otel) Handler {
	return Handler{
		listing: listing,
		intake:  intake,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/owner", handler.GetOwnerDashboard)
		r.Get("/tenant", handler.GetTenantDashboard)
	})
}

// GetOwnerDashboard returns the owner's spaces and incoming bookings, newest first.
// @Summary Owner dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[OwnerDashboard]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/owner [get]
// @Security BearerAuth
func (handler *Handler) GetOwnerDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnerDashboard")
	defer scope.End()

	var res OwnerDashboard

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		res.Spaces, err = handler.listing.ListForOwner(groupCtx)

		return err
	})

	group.Go(func() (err error) {
		res.Bookings, err = handler.intake.ListForOwner(groupCtx)

		return err
	})

	if err := group.Wait(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load owner dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetTenantDashboard returns the tenant's bookings split into active and past.
// @Summary Tenant dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[bookingDto.TenantBookingsResponse]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/tenant [get]
// @Security BearerAuth
func (handler *Handler) GetTenantDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTenantDashboard")
	defer scope.End()

	res, err := handler.intake.ListForTenant(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load tenant dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
