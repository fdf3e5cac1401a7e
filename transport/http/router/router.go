package router

import (
	"github.com/go-chi/chi/v5"

	"locally/internal/handlers/auth"
	"locally/internal/handlers/booking"
	"locally/internal/handlers/dashboard"
	"locally/internal/handlers/me"
	"locally/internal/handlers/space"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Me        me.Handler
	Space     space.Handler
	Booking   booking.Handler
	Dashboard dashboard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Me.Router(routerGroup)
		r.DomainHandlers.Space.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
