/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/users/*            User management and acting-user selection
  /api/sources/*          Acquisition sources (add-only)
  /api/locations/*        Dealership sites
  /api/vehicles/*         Inventory
  /api/stock-entries/*    Device pairing log
  /api/desklog/*          Sales transactions

SECURITY NOTE:
  No authentication. The acting user is a locally selected identity;
  capability checks happen in the state controller.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Get("/current", h.GetCurrentUser)
			r.Post("/current", h.SetCurrentUser)
			r.Put("/{id}", h.UpdateUser)
			r.Delete("/{id}", h.DeleteUser)
		})

		r.Route("/sources", func(r chi.Router) {
			r.Get("/", h.ListSources)
			r.Post("/", h.CreateSource)
		})

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", h.ListLocations)
			r.Post("/", h.CreateLocation)
			r.Put("/{id}", h.UpdateLocation)
			r.Delete("/{id}", h.DeleteLocation)
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", h.ListVehicles)
			r.Post("/", h.CreateVehicle)
			r.Put("/{id}", h.UpdateVehicle)
			r.Delete("/{id}", h.DeleteVehicle)
		})

		r.Route("/stock-entries", func(r chi.Router) {
			r.Get("/", h.ListStockEntries)
			r.Post("/", h.CreateStockEntry)
		})

		r.Route("/desklog", func(r chi.Router) {
			r.Get("/", h.ListDesklogEntries)
			r.Post("/", h.CreateDesklogEntry)
			r.Put("/{id}", h.UpdateDesklogEntry)
			r.Delete("/{id}", h.DeleteDesklogEntry)
		})
	})

	// Minimal landing page pointing at the API.
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Dealdesk</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Dealdesk API</h1>
<ul>
<li><a href="/api/users">/api/users</a> - Users</li>
<li><a href="/api/vehicles">/api/vehicles</a> - Vehicle inventory</li>
<li><a href="/api/desklog">/api/desklog</a> - Desklog</li>
</ul>
</body>
</html>`))
	})

	return r
}
