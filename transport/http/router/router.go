package router

import (
	"github.com/go-chi/chi/v5"

	"sportshub/internal/handlers/payment"
	"sportshub/internal/handlers/reservation"
)

type DomainHandlers struct {
	Reservation reservation.Handler
	Payment     payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
