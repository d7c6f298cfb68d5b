// Package router sets up all HTTP routes and middleware chains for the
// NutriPress content API. Routes are grouped by the auth level they need:
// login only, session, session plus completed 2FA, and admin role.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nutripress/internal/handlers"
	"nutripress/internal/middleware"
	"nutripress/internal/session"
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Auth       *handlers.Auth
	Blogs      *handlers.Blogs
	Categories *handlers.Categories
	AutoBlog   *handlers.AutoBlog
	Products   *handlers.Products
	Providers  *handlers.Providers
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LoadSession(sessionStore))

		// Login is the only endpoint open without a session.
		r.Post("/auth/login", h.Auth.Login)

		// Session required but 2FA not yet completed: the enrollment and
		// verification endpoints themselves.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/permissions", h.Auth.Permissions)
			r.Get("/auth/2fa/qr", h.Auth.TwoFAQR)
			r.Post("/auth/2fa/verify", h.Auth.TwoFAVerify)
		})

		// Everything content-facing needs a fully verified session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Route("/blogs", func(r chi.Router) {
				r.Get("/", h.Blogs.List)
				r.Post("/", h.Blogs.Create)

				// Auto-generation pipeline, registered before {id} so the
				// literal segment wins.
				r.Route("/auto-generate", func(r chi.Router) {
					r.Post("/titles/{productID}", h.AutoBlog.GenerateTitles)
					r.Post("/product/{productID}", h.AutoBlog.GenerateProduct)
					r.Post("/batch", h.AutoBlog.GenerateBatch)
					r.Get("/status/{productID}", h.AutoBlog.Status)
					r.Get("/statistics", h.AutoBlog.Statistics)
				})

				r.Get("/{id}", h.Blogs.Get)
				r.Put("/{id}", h.Blogs.Update)
				r.Delete("/{id}", h.Blogs.Delete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.Categories.List)
				r.Post("/", h.Categories.Create)
				r.Get("/{id}", h.Categories.Get)
				r.Put("/{id}", h.Categories.Update)
				r.Delete("/{id}", h.Categories.Delete)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.Products.List)
				r.Post("/sync", h.Products.TriggerSync)
				r.Get("/sync/status", h.Products.SyncStatus)
				r.Get("/sync/logs", h.Products.SyncLogs)
			})

			// Provider configs carry API keys — admin only.
			r.Route("/providers", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.Providers.List)
				r.Put("/", h.Providers.Upsert)
				r.Post("/test", h.Providers.Test)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
