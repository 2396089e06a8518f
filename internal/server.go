package internal

import (
	"html/template"
	"net/http"

	"asset-dashboard/internal/api"
	"asset-dashboard/internal/config"
	"asset-dashboard/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the presentation layer: route guards, view handlers, and the
// wiring between them and the backend API client. It holds no business
// state of its own.
type Server struct {
	Router    *chi.Mux
	API       *api.Client
	Sessions  *session.Store
	Metrics   *Metrics
	templates map[string]*template.Template
}

func NewServer(cfg *config.Config) *Server {
	metrics := NewMetrics()

	s := &Server{
		Router:    chi.NewRouter(),
		API:       api.New(cfg.BackendURL, cfg.RequestTimeout, metrics),
		Sessions:  session.NewStore(cfg.CookieSecure),
		Metrics:   metrics,
		templates: parseTemplates(),
	}

	s.Router.Use(middleware.Recoverer)
	s.Router.Use(RequestLogger)
	if cfg.EnableMetrics {
		s.Router.Use(s.Metrics.Middleware())
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}

	// Public routes: no session required.
	s.Router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	s.Router.Get("/", s.handleHome)
	s.Router.Get("/login", s.handleLoginPage)
	s.Router.Post("/login", s.handleLogin)
	s.Router.Get("/register", s.handleRegisterPage)
	s.Router.Post("/register", s.handleRegister)
	s.Router.Get("/unauthorized", s.handleUnauthorized)

	// Routes shared by both roles.
	s.Router.Group(func(r chi.Router) {
		r.Use(session.RequireRole(s.Sessions, session.RoleAdmin, session.RoleUser))

		r.Get("/dashboard", s.handleDashboard)
		r.Post("/logout", s.handleLogout)
		r.Post("/prefs/dark", s.handleDarkMode)
	})

	// Admin-only routes.
	s.Router.Group(func(r chi.Router) {
		r.Use(session.RequireRole(s.Sessions, session.RoleAdmin))

		r.Get("/assets/new", s.handleNewAsset)
		r.Post("/assets/new", s.handleCreateAsset)
		r.Get("/assets/{id}/edit", s.handleEditAsset)
		r.Post("/assets/{id}/edit", s.handleUpdateAsset)
		r.Post("/assets/{id}/delete", s.handleDeleteAsset)

		r.Get("/users", s.handleUsers)

		r.Get("/settings", s.handleSettings)
		r.Post("/settings/categories", s.handleCreateCategory)
		r.Post("/settings/categories/{id}", s.handleUpdateCategory)
		r.Post("/settings/categories/{id}/delete", s.handleDeleteCategory)
		r.Post("/settings/statuses", s.handleCreateStatus)
		r.Post("/settings/statuses/{id}", s.handleUpdateStatus)
		r.Post("/settings/statuses/{id}/delete", s.handleDeleteStatus)
	})

	return s
}
