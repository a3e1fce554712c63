package adminusers

import (
	"github.com/go-chi/chi/v5"

	"github.com/communitycare/carehub/internal/app/system/auth"
	"github.com/communitycare/carehub/internal/domain/models"
)

func Routes(r chi.Router, h *Handler) {
	r.Route("/admin/users", func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Use(auth.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))

		r.Get("/pending", h.Pending)
		r.Get("/approved", h.Approved)
		r.Post("/{id}/approve", h.Approve)
		r.Post("/{id}/reject", h.Reject)
		r.Post("/{id}/role", h.SetRole)
	})
}
