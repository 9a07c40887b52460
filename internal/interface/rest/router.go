package rest

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/blood-requests", func(r chi.Router) {
		r.Post("/", h.CreateBloodRequest)
		r.Get("/", h.ListBloodRequests)
		r.Get("/{id}", h.GetBloodRequest)
		r.Patch("/{id}", h.ApplyBloodRequestAction)
		r.Put("/{id}", h.EditBloodRequest)
		r.Delete("/{id}", h.DeleteBloodRequest)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.RegisterUser)
		r.Get("/", h.ListUsers)
		r.Get("/{email}", h.GetUser)
		r.Patch("/{email}", h.UpdateUser)
	})

	r.Route("/messages", func(r chi.Router) {
		r.Post("/", h.CreateMessage)
		r.Get("/", h.ListMessages)
	})

	r.Route("/blogs", func(r chi.Router) {
		r.Post("/", h.CreateBlogPost)
		r.Get("/", h.ListBlogPosts)
		r.Get("/{id}", h.GetBlogPost)
		r.Delete("/{id}", h.DeleteBlogPost)
	})

	r.Route("/locations", func(r chi.Router) {
		r.Get("/divisions", h.ListDivisions)
		r.Get("/districts", h.ListDistricts)
		r.Get("/upazilas", h.ListUpazilas)
	})

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
