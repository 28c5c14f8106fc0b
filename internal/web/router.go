package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter регистрирует все маршруты API
func NewRouter(h *Handler, metrics *Metrics) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)
	mux.Use(metrics.Middleware)

	mux.Get("/health", h.Health)
	mux.Method(http.MethodGet, "/metrics", metrics.Handler())

	mux.Route("/api", func(r chi.Router) {
		r.Get("/calendar", h.CalendarAPI)

		r.Post("/events", h.CreateEvent)
		r.Get("/events/{id}", h.GetEvent)
		r.Put("/events/{id}", h.UpdateEvent)
		r.Delete("/events/{id}", h.DeleteEvent)

		r.Get("/members", h.ListMembers)
		r.Post("/members", h.RegisterMember)
		r.Get("/members/export.xlsx", h.ExportMembers)
		r.Get("/members/{id}", h.GetMember)
		r.Put("/members/{id}", h.UpdateMember)
		r.Delete("/members/{id}", h.DeleteMember)
		r.Patch("/members/{id}/status", h.UpdateMemberStatus)
		r.Get("/members/{id}/attendances", h.ListAttendance)
		r.Post("/members/{id}/attendances", h.SeedAttendance)
		r.Put("/members/{id}/attendances/{date}", h.MarkAttendance)
		r.Delete("/members/{id}/attendances/{date}", h.UnmarkAttendance)

		r.Get("/awards", h.Awards)
		r.Get("/awards/export.xlsx", h.ExportAwards)
	})

	return mux
}
