package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withMetrics, h.withGzip, h.withCORS())

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.root)
		r.Get("/healthz", h.healthz)
		r.Get("/version", h.getServerVersion)
		r.Handle("/metrics", promhttp.Handler())
	})

	router.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.signup)
		r.Post("/login", h.login)
		r.Get("/refresh_token", h.refreshToken)
		r.Get("/confirmed_email/{token}", h.confirmedEmail)
		r.Post("/request_email", h.requestEmail)
	})

	router.Route("/api/users", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/me", h.me)
		r.Patch("/avatar", h.updateAvatar)
	})

	router.Route("/contacts", func(r chi.Router) {
		r.Use(h.auth)
		r.With(h.withRateLimit("create_contact")).Post("/", h.createContact)
		r.With(h.withRateLimit("read_contacts")).Get("/", h.listContacts)
		r.With(h.withRateLimit("search_contacts")).Get("/search", h.searchContacts)
		r.With(h.withRateLimit("birthdays")).Get("/birthdays/{days}", h.upcomingBirthdays)
		r.With(h.withRateLimit("read_contact")).Get("/{id}", h.getContact)
		r.With(h.withRateLimit("update_contact")).Put("/{id}", h.updateContact)
		r.With(h.withRateLimit("delete_contact")).Delete("/{id}", h.deleteContact)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
