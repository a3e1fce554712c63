package journal

import (
	"github.com/go-chi/chi/v5"

	"github.com/communitycare/carehub/internal/app/system/auth"
)

func Routes(r chi.Router, h *Handler) {
	r.Route("/journal", func(r chi.Router) {
		r.Use(auth.RequireSignedIn)

		r.Get("/", h.Mine)
		r.Post("/", h.Create)
		r.Delete("/{id}", h.Delete)
	})
}
