package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/stackfield/crmd/internal/auth"
	"github.com/stackfield/crmd/internal/http/assistant"
	"github.com/stackfield/crmd/internal/http/billing"
	"github.com/stackfield/crmd/internal/http/contact"
	"github.com/stackfield/crmd/internal/http/dashboard"
	"github.com/stackfield/crmd/internal/http/email"
	"github.com/stackfield/crmd/internal/http/importcsv"
	"github.com/stackfield/crmd/internal/http/lead"
	"github.com/stackfield/crmd/internal/http/legalcase"
	"github.com/stackfield/crmd/internal/http/media"
	"github.com/stackfield/crmd/internal/http/opportunity"
	"github.com/stackfield/crmd/internal/http/task"
)

type Handlers struct {
	Leads         *lead.Handler
	Contacts      *contact.Handler
	Opportunities *opportunity.Handler
	Cases         *legalcase.Handler
	Tasks         *task.Handler
	Billing       *billing.Handler
	Dashboard     *dashboard.Handler
	Assistant     *assistant.Handler
	Import        *importcsv.Handler
	Media         *media.Handler
	Email         *email.Handler
}

func New(jwtSecret string, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/leads", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Leads.Routes(r)
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Contacts.Routes(r)
		})

		r.Route("/opportunities", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Opportunities.Routes(r)
		})

		r.Route("/cases", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Cases.Routes(r)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Tasks.Routes(r)
		})

		r.Route("/billing", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Billing.Routes(r)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Dashboard.Routes(r)
		})

		r.Route("/assistant", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Assistant.Routes(r)
		})

		// Multipart upload, no content type restriction.
		r.Route("/import", h.Import.Routes)

		r.Route("/media", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Media.Routes(r)
		})

		r.Route("/email", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Email.Routes(r)
		})
	})

	return router
}
