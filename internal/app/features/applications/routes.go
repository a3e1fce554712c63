package applications

import (
	"github.com/go-chi/chi/v5"

	"github.com/communitycare/carehub/internal/app/system/auth"
	"github.com/communitycare/carehub/internal/domain/models"
)

func Routes(r chi.Router, h *Handler) {
	r.Route("/applications", func(r chi.Router) {
		r.Use(auth.RequireSignedIn)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleVolunteer))
			r.Post("/", h.Apply)
			r.Get("/mine", h.Mine)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleOrganizer, models.RoleAdmin, models.RoleSuperAdmin))
			r.Patch("/{id}/status", h.SetStatus)
			r.Patch("/{id}/attendance", h.SetAttendance)
		})
	})
}
