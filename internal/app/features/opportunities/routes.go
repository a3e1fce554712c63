package opportunities

import (
	"github.com/go-chi/chi/v5"

	"github.com/communitycare/carehub/internal/app/system/auth"
	"github.com/communitycare/carehub/internal/domain/models"
)

func Routes(r chi.Router, h *Handler) {
	r.Route("/opportunities", func(r chi.Router) {
		r.Use(auth.RequireSignedIn)

		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Get("/by-event/{eventID}", h.ByEvent)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleOrganizer, models.RoleAdmin, models.RoleSuperAdmin))
			r.Post("/", h.Create)
			r.Patch("/{id}", h.Update)
			r.Get("/{id}/applications", h.Applications)
		})
	})
}
