package recommendations

import (
	"github.com/go-chi/chi/v5"

	"github.com/communitycare/carehub/internal/app/system/auth"
)

func Routes(r chi.Router, h *Handler) {
	r.Route("/recommendations", func(r chi.Router) {
		r.Use(auth.RequireSignedIn)

		r.Get("/", h.List)
		r.Post("/recompute", h.Recompute)
	})
}
