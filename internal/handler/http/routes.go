package http

import (
	"net/http"

	"github.com/MKhiriev/go-collab-forms/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsPath = "/metrics"

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, h.withMetrics, withGZip, middleware.Recoverer)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	// routes without a session
	router.Group(func(r chi.Router) {
		r.Get("/login", h.loginPage)
		r.Post("/login", h.login)
		r.Get("/register", h.registerPage)
		r.Post("/register", h.register)
		r.Post("/logout", h.logout)

		r.Get("/api/version/", h.getServerVersion)
		r.Method(http.MethodGet, metricsPath, promhttp.Handler())

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			utils.SeeOther(w, r, "/dashboard")
		})
	})

	// the fill page reports a missing session itself
	router.Group(func(r chi.Router) {
		r.Use(h.withSession)
		r.Get("/forms/{formID}", h.fillPage)
		r.Post("/forms/{formID}", h.submitForm)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.requireSession)

		r.Get("/dashboard", h.dashboard)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/dashboard", h.adminDashboard)
			r.Post("/forms", h.createForm)
			r.Get("/forms/{formID}", h.editorPage)
			r.Post("/forms/{formID}/fields", h.addField)
			r.Post("/forms/{formID}/fields/{fieldID}/delete", h.removeField)
			r.Post("/forms/{formID}/fields/{fieldID}/options", h.setFieldOptions)
		})
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
