package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-crm/internal/infra/auth"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
)

const LoginPath = "/login"

type Handlers struct {
	Contacts  *handlers.ContactHandler
	Leads     *handlers.LeadHandler
	Analytics *handlers.AnalyticsHandler
	Sessions  *handlers.SessionHandler
	Health    *handlers.HealthHandler
	Settings  *handlers.SettingsHandler
}

// New builds the route table. Everything outside the public group sits
// behind the auth gate, unknown paths included.
func New(h Handlers, authn auth.Authenticator, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Públicas
	r.Get(LoginPath, h.Sessions.Form)
	r.Post(LoginPath, h.Sessions.Login)
	r.Post("/logout", h.Sessions.Logout)
	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// Qualquer outra rota também passa pelo gate.
	gate := middleware.RequireAuth(authn, LoginPath)
	r.NotFound(gate(http.HandlerFunc(handlers.NotFound)).ServeHTTP)

	// Protegidas
	r.Group(func(r chi.Router) {
		r.Use(gate)

		r.Get("/", h.Analytics.Dashboard)
		r.Get("/analytics", h.Analytics.Analytics)
		r.Get("/settings", h.Settings.Get)

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", h.Contacts.List)
			r.Post("/", h.Contacts.Create)
			r.Patch("/{id}", h.Contacts.Update)
			r.Delete("/{id}", h.Contacts.Delete)
			r.Get("/{id}/leads", h.Contacts.Leads)
		})

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", h.Leads.List)
			r.Post("/", h.Leads.Create)
			r.Patch("/{id}", h.Leads.Update)
			r.Delete("/{id}", h.Leads.Delete)
		})
	})

	return r
}
