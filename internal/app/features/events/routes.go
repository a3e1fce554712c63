package events

import (
	"github.com/go-chi/chi/v5"

	"github.com/communitycare/carehub/internal/app/system/auth"
	"github.com/communitycare/carehub/internal/domain/models"
)

func Routes(r chi.Router, h *Handler) {
	r.Route("/events", func(r chi.Router) {
		r.Use(auth.RequireSignedIn)

		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleOrganizer, models.RoleAdmin, models.RoleSuperAdmin))
			r.Post("/", h.Create)
			r.Get("/mine", h.Mine)
			r.Patch("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Get("/{id}/registrations", h.Attendees)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
			r.Get("/pending", h.Pending)
			r.Post("/{id}/approve", h.Approve)
			r.Post("/{id}/reject", h.Reject)
		})
	})
}
